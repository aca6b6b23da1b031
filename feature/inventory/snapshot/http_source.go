package snapshot

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
)

// HTTPSource fetches snapshots directly from the scraper service.
type HTTPSource struct {
	client *resty.Client
}

// NewHTTPSource creates a snapshot source for the scraper at baseURL.
func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	client.JSONMarshal = json.Marshal
	client.JSONUnmarshal = json.Unmarshal

	return &HTTPSource{client: client}
}

// Fetch GETs <base>/snapshots/<location>/<unit>.
func (s *HTTPSource) Fetch(ctx context.Context, scope Scope) (*Raw, error) {
	path := fmt.Sprintf("/snapshots/%s/%s", url.PathEscape(scope.LocationID), url.PathEscape(scope.Unit))

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("company", scope.CompanyID).
		Get(path)
	if err != nil {
		return nil, &FetchError{Scope: scope, Err: err}
	}
	if resp.StatusCode() != 200 {
		return nil, &FetchError{Scope: scope, Err: fmt.Errorf("unexpected status %d: %s", resp.StatusCode(), resp.String())}
	}

	var raw Raw
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		return nil, &FetchError{Scope: scope, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return &raw, nil
}
