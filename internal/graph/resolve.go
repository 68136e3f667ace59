package graph

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"excel_trade_tracker/internal/excel"
	"excel_trade_tracker/internal/retry"

	"github.com/rs/zerolog/log"
)

// resolveCacheTTL bounds how long resolved document coordinates are reused.
const resolveCacheTTL = time.Hour

// Document holds the stable coordinates a human-facing document link resolves
// to, plus item metadata for diagnostics.
type Document struct {
	SiteID       string `json:"site_id,omitempty"`
	DriveID      string `json:"drive_id"`
	ItemID       string `json:"item_id"`
	WebURL       string `json:"web_url,omitempty"`
	Size         int64  `json:"size,omitempty"`
	LastModified string `json:"last_modified,omitempty"`
}

// Ref converts the resolved document into the coordinates the range store
// operates on.
func (d *Document) Ref() excel.DocumentRef {
	return excel.DocumentRef{SiteID: d.SiteID, DriveID: d.DriveID, ItemID: d.ItemID}
}

type cachedDocument struct {
	doc       *Document
	timestamp time.Time
}

// ResolveDocument translates a SharePoint/OneDrive link plus a file name into
// site, drive and item IDs. The lookups are idempotent metadata reads, so
// they go through the retry helper, and results are cached for an hour.
func (c *Client) ResolveDocument(ctx context.Context, rawURL, fileName string) (*Document, error) {
	cacheKey := rawURL + "|" + fileName
	if cached, ok := c.resolveCache.Load(cacheKey); ok {
		entry := cached.(cachedDocument)
		if time.Since(entry.timestamp) < resolveCacheTTL {
			return entry.doc, nil
		}
	}

	siteID, err := c.resolveSite(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve site for %s: %w", rawURL, err)
	}

	driveID, err := c.resolveDrive(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve drive for site %s: %w", siteID, err)
	}

	doc, err := c.resolveItem(ctx, siteID, driveID, fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve file %q: %w", fileName, err)
	}

	log.Debug().
		Str("site_id", doc.SiteID).
		Str("drive_id", doc.DriveID).
		Str("item_id", doc.ItemID).
		Str("file", fileName).
		Msg("Resolved document")

	c.resolveCache.Store(cacheKey, cachedDocument{doc: doc, timestamp: time.Now()})
	return doc, nil
}

// resolveSite maps the link's hostname and optional /sites/<name> path
// segment to a Graph site ID.
func (c *Client) resolveSite(ctx context.Context, rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return "", &excel.CallerError{Reason: fmt.Sprintf("invalid document URL %q", rawURL)}
	}

	requestURL := fmt.Sprintf("%s/sites/%s", c.baseURL, parsed.Host)
	if sitePath := extractSitePath(parsed.Path); sitePath != "" {
		requestURL = fmt.Sprintf("%s/sites/%s:%s", c.baseURL, parsed.Host, sitePath)
	}

	return retry.Do(ctx, retry.Lookups, func(ctx context.Context) (string, error) {
		var site struct {
			ID string `json:"id"`
		}
		if err := c.doJSON(ctx, http.MethodGet, requestURL, nil, &site); err != nil {
			return "", err
		}
		return site.ID, nil
	})
}

// extractSitePath returns the "/sites/<name>" prefix of a SharePoint URL
// path, or empty for the root site.
func extractSitePath(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) >= 2 && strings.EqualFold(segments[0], "sites") {
		return "/sites/" + segments[1]
	}
	return ""
}

// resolveDrive returns the site's default document library.
func (c *Client) resolveDrive(ctx context.Context, siteID string) (string, error) {
	requestURL := fmt.Sprintf("%s/sites/%s/drive", c.baseURL, siteID)

	return retry.Do(ctx, retry.Lookups, func(ctx context.Context) (string, error) {
		var drive struct {
			ID string `json:"id"`
		}
		if err := c.doJSON(ctx, http.MethodGet, requestURL, nil, &drive); err != nil {
			return "", err
		}
		return drive.ID, nil
	})
}

// resolveItem looks the file up by name in the drive root.
func (c *Client) resolveItem(ctx context.Context, siteID, driveID, fileName string) (*Document, error) {
	requestURL := fmt.Sprintf("%s/drives/%s/root:/%s", c.baseURL, driveID, url.PathEscape(fileName))

	return retry.Do(ctx, retry.Lookups, func(ctx context.Context) (*Document, error) {
		var item struct {
			ID                   string `json:"id"`
			WebURL               string `json:"webUrl"`
			Size                 int64  `json:"size"`
			LastModifiedDateTime string `json:"lastModifiedDateTime"`
		}
		if err := c.doJSON(ctx, http.MethodGet, requestURL, nil, &item); err != nil {
			return nil, err
		}
		return &Document{
			SiteID:       siteID,
			DriveID:      driveID,
			ItemID:       item.ID,
			WebURL:       item.WebURL,
			Size:         item.Size,
			LastModified: item.LastModifiedDateTime,
		}, nil
	})
}
