package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// HTTPFetcher reads the snapshot store through a remote /api/data endpoint.
type HTTPFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	Limiter *rate.Limiter
}

// NewHTTPFetcher creates a fetcher paced at rps requests per second.
func NewHTTPFetcher(baseURL, apiKey string, rps float64) *HTTPFetcher {
	return &HTTPFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 30 * time.Second},
		Limiter: rate.NewLimiter(rate.Limit(rps), 10),
	}
}

func (f *HTTPFetcher) Name() string { return "http" }

type listResponse struct {
	Files []string `json:"files"`
}

func (f *HTTPFetcher) List(ctx context.Context) ([]string, error) {
	body, err := f.get(ctx, f.BaseURL+"/api/data/")
	if err != nil {
		return nil, err
	}
	var resp listResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode listing: %w: %v", ErrTransport, err)
	}
	files := append([]string{}, resp.Files...)
	sort.Strings(files)
	return files, nil
}

func (f *HTTPFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	clean, ok := cleanName(name)
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	segs := strings.Split(clean, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return f.get(ctx, f.BaseURL+"/api/data/"+strings.Join(segs, "/"))
}

func (f *HTTPFetcher) get(ctx context.Context, endpoint string) ([]byte, error) {
	if f.Limiter != nil {
		if err := f.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w: %v", endpoint, ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %v", endpoint, ErrTransport, err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("GET %s: %w", endpoint, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("GET %s: %w: status %d", endpoint, ErrTransport, resp.StatusCode)
	}
	return body, nil
}
