package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"mlbtrack/ingestion/internal/metrics"

	"github.com/rs/zerolog/log"
)

// ESPNClient is the ESPN site API client for one tracked team.
type ESPNClient struct {
	baseURL     string
	teamID      string
	httpClient  *http.Client
	rateLimiter chan struct{} // Rate limiting semaphore
	maxRetries  int
	retryDelay  time.Duration
}

// NewESPNClient creates a new ESPN API client with pooled transport
func NewESPNClient(baseURL, teamID string, timeout time.Duration) *ESPNClient {
	// Rate limiter (max 10 concurrent requests)
	rateLimiter := make(chan struct{}, 10)
	for i := 0; i < 10; i++ {
		rateLimiter <- struct{}{}
	}

	return &ESPNClient{
		baseURL:     baseURL,
		teamID:      teamID,
		rateLimiter: rateLimiter,
		maxRetries:  3,
		retryDelay:  1 * time.Second,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// get performs a GET request with retry logic and rate limiting
func (c *ESPNClient) get(ctx context.Context, path string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, path)

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 1s, 2s, 4s
			backoff := c.retryDelay * time.Duration(1<<uint(attempt-1))
			log.Info().
				Str("url", url).
				Int("attempt", attempt).
				Dur("backoff", backoff).
				Msg("Retrying API request after backoff")

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		body, retryable, err := c.doRequest(ctx, url, attempt)
		if err == nil {
			return body, nil
		}

		lastErr = err
		if !retryable || attempt == c.maxRetries {
			return nil, lastErr
		}
	}

	return nil, lastErr
}

// doRequest performs a single attempt and reports whether a failure is
// retryable.
func (c *ESPNClient) doRequest(ctx context.Context, url string, attempt int) ([]byte, bool, error) {
	// Rate limiting: acquire semaphore
	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case <-c.rateLimiter:
	}
	defer func() { c.rateLimiter <- struct{}{} }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "mlbtrack/1.0")

	log.Debug().
		Str("url", url).
		Int("attempt", attempt+1).
		Msg("Making API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("failed to read response body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		log.Debug().
			Str("url", url).
			Int("status", resp.StatusCode).
			Int("size", len(body)).
			Msg("API request successful")
		return body, false, nil

	case http.StatusTooManyRequests, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		log.Warn().
			Str("url", url).
			Int("status", resp.StatusCode).
			Int("attempt", attempt+1).
			Msg("Received retryable error")
		return nil, true, fmt.Errorf("API returned retryable status %d: %s", resp.StatusCode, string(body))

	default:
		return nil, false, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}
}

// FetchSchedule fetches the tracked team's season schedule listing
func (c *ESPNClient) FetchSchedule(ctx context.Context) ([]Event, error) {
	start := time.Now()
	path := fmt.Sprintf("teams/%s/schedule", c.teamID)
	body, err := c.get(ctx, path)
	if err != nil {
		metrics.RecordAPICall("schedule", "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}

	var schedule ScheduleResponse
	if err := json.Unmarshal(body, &schedule); err != nil {
		metrics.RecordAPICall("schedule", "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("failed to unmarshal schedule: %w", err)
	}

	metrics.RecordAPICall("schedule", "success", time.Since(start).Seconds())
	return schedule.Events, nil
}

// FetchScoreboard fetches the current league scoreboard
func (c *ESPNClient) FetchScoreboard(ctx context.Context) ([]Event, error) {
	start := time.Now()
	body, err := c.get(ctx, "scoreboard")
	if err != nil {
		metrics.RecordAPICall("scoreboard", "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("failed to fetch scoreboard: %w", err)
	}

	var scoreboard ScoreboardResponse
	if err := json.Unmarshal(body, &scoreboard); err != nil {
		metrics.RecordAPICall("scoreboard", "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("failed to unmarshal scoreboard: %w", err)
	}

	metrics.RecordAPICall("scoreboard", "success", time.Since(start).Seconds())
	return scoreboard.Events, nil
}
