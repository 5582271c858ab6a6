// Package tracker pulls epics from the external issue tracker and folds
// their estimates into the planning data.
package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// RemoteEpic is the tracker's wire representation of an epic.
type RemoteEpic struct {
	Key            string   `json:"key"`
	Summary        string   `json:"summary"`
	Status         string   `json:"status"`
	Department     string   `json:"department"`
	Team           string   `json:"team"`
	Labels         []string `json:"labels"`
	EstimatedHours int      `json:"estimated_hours"`
}

type epicsResponse struct {
	Epics   []RemoteEpic `json:"epics"`
	HasMore bool         `json:"has_more"`
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ListEpics fetches one page of epics. Pages are 1-based.
func (c *Client) ListEpics(ctx context.Context, page, pageSize int) ([]RemoteEpic, bool, error) {
	endpoint, err := url.Parse(c.baseURL + "/api/epics")
	if err != nil {
		return nil, false, err
	}

	query := endpoint.Query()
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(pageSize))
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("tracker request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("tracker returned status %d", resp.StatusCode)
	}

	var payload epicsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, false, fmt.Errorf("failed to decode tracker response: %w", err)
	}
	return payload.Epics, payload.HasMore, nil
}
