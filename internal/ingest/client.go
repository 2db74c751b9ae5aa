package ingest

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/AngelCh415/adreport-proxy/internal/models"
)

const maxErrorBody = 1024

// UpstreamError is returned when the reporting API answers with a non-2xx
// status, an unreadable body, or cannot be reached at all.
type UpstreamError struct {
	Status int
	Body   string
	Err    error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Err != nil && e.Status == 0:
		return fmt.Sprintf("upstream request failed: %v", e.Err)
	case e.Err != nil:
		return fmt.Sprintf("upstream status %d: %v", e.Status, e.Err)
	default:
		return fmt.Sprintf("upstream status %d: %s", e.Status, e.Body)
	}
}

func (e *UpstreamError) Unwrap() error { return e.Err }

var ErrInvalidPayload = errors.New("upstream payload is not a JSON array")

// Client fetches raw reports from the advertising reporting API. Requests are
// never retried.
type Client struct {
	rc      *resty.Client
	baseURL string
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	rc := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	if token != "" {
		rc.SetAuthToken(token)
	}
	return &Client{rc: rc, baseURL: baseURL}
}

// FetchReport asks upstream for the last days days of the advertiser's report.
func (c *Client) FetchReport(ctx context.Context, advertiserID string, days int) ([]models.RawRecord, error) {
	if c.baseURL == "" {
		return nil, &UpstreamError{Err: errors.New("empty url")}
	}
	resp, err := c.rc.R().
		SetContext(ctx).
		SetQueryParam("advertiser_id", advertiserID).
		SetQueryParam("days", strconv.Itoa(days)).
		Get(c.baseURL)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}
	body := resp.Body()
	if !resp.IsSuccess() {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, &UpstreamError{Status: resp.StatusCode(), Body: string(body)}
	}
	recs, err := DecodeRecords(body)
	if err != nil {
		return nil, &UpstreamError{Status: resp.StatusCode(), Err: err}
	}
	return recs, nil
}
