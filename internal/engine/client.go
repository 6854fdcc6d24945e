// Package engine talks to the remote damage-computation service. The service
// owns all game math; this client only ships normalized parties over and
// decodes the per-member results.
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ushigai/LuckyDefense-tools/internal/party"
)

type Client struct {
	base string
	hc   *http.Client
}

// New builds a client for the engine at baseURL (scheme://host[:port]).
func New(baseURL string) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		hc:   &http.Client{Timeout: 25 * time.Second},
	}
}

type apiError struct {
	Error string `json:"error"`
}

// Calc submits one party and returns the engine's damage breakdown.
func (c *Client) Calc(ctx context.Context, req party.CalcRequest) (party.CalcResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return party.CalcResult{}, fmt.Errorf("encode calc request: %w", err)
	}

	url := c.base + "/api/calc"
	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return party.CalcResult{}, err
	}
	hreq.Header.Set("Content-Type", "application/json")
	hreq.Header.Set("Accept", "application/json")
	hreq.Header.Set("User-Agent", "LuckyDefense-tools calc client")

	resp, err := c.hc.Do(hreq)
	if err != nil {
		return party.CalcResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return party.CalcResult{}, fmt.Errorf("engine status %d: %s", resp.StatusCode, apiErr.Error)
		}
		return party.CalcResult{}, fmt.Errorf("engine status %d", resp.StatusCode)
	}

	var out party.CalcResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return party.CalcResult{}, fmt.Errorf("decode calc response: %w", err)
	}
	return out, nil
}
