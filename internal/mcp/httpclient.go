package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/meltforce/tacticalfit/internal/app"
)

// HTTPClient implements DataSource by calling the TacticalFit REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("httpclient: encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("httpclient: create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, apiError(data))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

// apiError extracts the message from an {"error": ...} body.
func apiError(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return e.Error
	}
	return strings.TrimSpace(string(body))
}

func dayPath(date string) string {
	if date == "" {
		return "/api/v1/today"
	}
	return "/api/v1/days/" + url.PathEscape(date)
}

func (c *HTTPClient) Daily(ctx context.Context, date string) (*app.DailyView, error) {
	var v app.DailyView
	if err := c.do(ctx, http.MethodGet, dayPath(date), nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *HTTPClient) ToggleExercise(ctx context.Context, date, exercise string) (*ToggleResult, error) {
	if date == "" {
		day, err := c.Daily(ctx, "")
		if err != nil {
			return nil, err
		}
		date = day.Date
	}

	var res ToggleResult
	in := map[string]string{"exercise": exercise}
	if err := c.do(ctx, http.MethodPost, dayPath(date)+"/toggle", in, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Schedule(ctx context.Context) (*app.ScheduleView, error) {
	var v app.ScheduleView
	if err := c.do(ctx, http.MethodGet, "/api/v1/schedule", nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *HTTPClient) Week(ctx context.Context, week int) (*app.ScheduleWeek, error) {
	var w app.ScheduleWeek
	if err := c.do(ctx, http.MethodGet, "/api/v1/weeks/"+strconv.Itoa(week), nil, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (c *HTTPClient) SetStartDate(ctx context.Context, date string) (*app.SettingsView, error) {
	var v app.SettingsView
	in := map[string]string{"start_date": date}
	if err := c.do(ctx, http.MethodPut, "/api/v1/settings/start-date", in, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *HTTPClient) Program(ctx context.Context) (*ProgramCatalog, error) {
	var pc ProgramCatalog
	if err := c.do(ctx, http.MethodGet, "/api/v1/plans", nil, &pc); err != nil {
		return nil, err
	}
	return &pc, nil
}
