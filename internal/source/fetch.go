package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/verte-zerg/drawstat/internal/model"
)

// DefaultURL is the NY Open Data export of Powerball results.
const DefaultURL = "https://data.ny.gov/api/views/d6yy-54nr/rows.csv?accessType=DOWNLOAD"

const fetchTimeout = 60 * time.Second

// Fetch downloads and parses a draw CSV. Nothing is cached.
func Fetch(ctx context.Context, url string) (model.DrawTable, error) {
	resp, err := httpRequest(ctx, url)
	if err != nil {
		return model.DrawTable{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return model.DrawTable{}, fmt.Errorf("unexpected status fetching draws: %s", resp.Status)
	}
	table, err := ParseCSV(resp.Body)
	if err != nil {
		return model.DrawTable{}, fmt.Errorf("failed to parse draws from %s: %w", url, err)
	}
	return table, nil
}

func httpRequest(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")
	client := &http.Client{Timeout: fetchTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}
