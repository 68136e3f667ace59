package notifications

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Client sends ntfy push notifications summarizing trade batches. Disabled
// clients are no-ops so callers never need to branch.
type Client struct {
	httpClient *http.Client
	baseURL    string
	topic      string
	enabled    bool
}

func NewClient(baseURL, topic string, enabled bool) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
		topic:   topic,
		enabled: enabled,
	}
}

// NotifyBatch publishes a one-line summary of a completed logTrades batch.
// Notification failures are logged and swallowed; they never affect the tool
// result.
func (c *Client) NotifyBatch(ctx context.Context, sheet, status string, logged, failed int) {
	if c == nil || !c.enabled {
		return
	}

	message := fmt.Sprintf("%d trades logged to %s", logged, sheet)
	if failed > 0 {
		message = fmt.Sprintf("%d trades logged, %d failed (%s)", logged, failed, sheet)
	}

	url := fmt.Sprintf("%s/%s", strings.TrimRight(c.baseURL, "/"), c.topic)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(message))
	if err != nil {
		log.Warn().Err(err).Msg("Failed to create notification request")
		return
	}
	req.Header.Set("Title", "Trade tracker batch "+status)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to send batch notification")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Warn().Int("status", resp.StatusCode).Msg("Batch notification rejected")
		return
	}
	log.Debug().Str("topic", c.topic).Msg("Sent batch notification")
}
