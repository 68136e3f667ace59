package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"excel_trade_tracker/internal/excel"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const graphBaseURL = "https://graph.microsoft.com/v1.0"

// Client talks to the Microsoft Graph workbook endpoints and implements
// excel.RangeStore. Workbook reads and writes run once with a bounded timeout
// and are never retried here.
type Client struct {
	httpClient   *http.Client
	tokens       oauth2.TokenSource
	baseURL      string
	resolveCache sync.Map
	apiCallCount int64
	apiCallMutex sync.Mutex
}

func NewClient(tokens oauth2.TokenSource) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		tokens:  tokens,
		baseURL: graphBaseURL,
	}
}

// incrementAPICall safely increments the API call counter.
func (c *Client) incrementAPICall() {
	c.apiCallMutex.Lock()
	c.apiCallCount++
	c.apiCallMutex.Unlock()
}

// APICallCount returns the number of Graph requests issued so far.
func (c *Client) APICallCount() int64 {
	c.apiCallMutex.Lock()
	defer c.apiCallMutex.Unlock()
	return c.apiCallCount
}

// workbookURL builds the base URL for workbook operations on a resolved
// document. SharePoint-hosted files carry a site segment.
func (c *Client) workbookURL(ref excel.DocumentRef) string {
	if ref.SiteID != "" {
		return fmt.Sprintf("%s/sites/%s/drives/%s/items/%s/workbook", c.baseURL, ref.SiteID, ref.DriveID, ref.ItemID)
	}
	return fmt.Sprintf("%s/drives/%s/items/%s/workbook", c.baseURL, ref.DriveID, ref.ItemID)
}

// rangeURL addresses a worksheet range such as "C1:C50".
func (c *Client) rangeURL(ref excel.DocumentRef, sheet, address string) string {
	return fmt.Sprintf("%s/worksheets/%s/range(address='%s')",
		c.workbookURL(ref), url.PathEscape(sheet), address)
}

// doJSON issues one authenticated Graph request and decodes the JSON
// response into out (when non-nil). Non-2xx responses come back as
// *excel.StoreError with the Graph error message passed through verbatim.
func (c *Client) doJSON(ctx context.Context, method, requestURL string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	token, err := c.tokens.Token()
	if err != nil {
		return fmt.Errorf("failed to acquire access token: %w", err)
	}
	token.SetAuthHeader(req)
	req.Header.Set("Content-Type", "application/json")

	c.incrementAPICall()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &excel.StoreError{
			StatusCode: resp.StatusCode,
			Message:    readGraphError(resp.Body),
		}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// readGraphError extracts the message from a Graph error envelope, falling
// back to the raw body.
func readGraphError(body io.Reader) string {
	raw, _ := io.ReadAll(body)
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	return string(raw)
}

// GetUsedExtent queries the populated size of a worksheet.
func (c *Client) GetUsedExtent(ctx context.Context, ref excel.DocumentRef, sheet string) (excel.Extent, error) {
	requestURL := fmt.Sprintf("%s/worksheets/%s/usedRange?$select=rowCount,columnCount",
		c.workbookURL(ref), url.PathEscape(sheet))

	var result struct {
		RowCount    int `json:"rowCount"`
		ColumnCount int `json:"columnCount"`
	}
	if err := c.doJSON(ctx, http.MethodGet, requestURL, nil, &result); err != nil {
		return excel.Extent{}, err
	}

	log.Debug().
		Str("sheet", sheet).
		Int("rows", result.RowCount).
		Int("columns", result.ColumnCount).
		Msg("Retrieved used extent")
	return excel.Extent{RowCount: result.RowCount, ColumnCount: result.ColumnCount}, nil
}

// ReadRange reads a rectangular range as row-major cell values.
func (c *Client) ReadRange(ctx context.Context, ref excel.DocumentRef, sheet, address string) ([][]excel.CellValue, error) {
	requestURL := c.rangeURL(ref, sheet, address) + "?$select=values"

	var result struct {
		Values [][]excel.CellValue `json:"values"`
	}
	if err := c.doJSON(ctx, http.MethodGet, requestURL, nil, &result); err != nil {
		return nil, err
	}

	log.Debug().
		Str("sheet", sheet).
		Str("address", address).
		Int("rows", len(result.Values)).
		Msg("Read range")
	return result.Values, nil
}

// WriteRange patches a rectangular range with the given values.
func (c *Client) WriteRange(ctx context.Context, ref excel.DocumentRef, sheet, address string, values [][]excel.CellValue) (excel.WriteResult, error) {
	body := map[string]interface{}{"values": values}

	var result struct {
		Address     string `json:"address"`
		RowCount    int    `json:"rowCount"`
		ColumnCount int    `json:"columnCount"`
	}
	if err := c.doJSON(ctx, http.MethodPatch, c.rangeURL(ref, sheet, address), body, &result); err != nil {
		return excel.WriteResult{}, err
	}

	log.Debug().
		Str("sheet", sheet).
		Str("address", address).
		Msg("Wrote range")
	return excel.WriteResult{
		Address:     result.Address,
		RowCount:    result.RowCount,
		ColumnCount: result.ColumnCount,
	}, nil
}

// AppendTableRows appends rows to a named workbook table and returns the
// index the table reports for the first appended row.
func (c *Client) AppendTableRows(ctx context.Context, ref excel.DocumentRef, tableName string, rows [][]excel.CellValue) (int, error) {
	requestURL := fmt.Sprintf("%s/tables/%s/rows", c.workbookURL(ref), url.PathEscape(tableName))
	body := map[string]interface{}{"values": rows}

	var result struct {
		Index int `json:"index"`
	}
	if err := c.doJSON(ctx, http.MethodPost, requestURL, body, &result); err != nil {
		return 0, err
	}

	log.Debug().
		Str("table", tableName).
		Int("rows", len(rows)).
		Msg("Appended table rows")
	return result.Index, nil
}
