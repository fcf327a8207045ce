// Package bridge implements the HTTP client for the two remote endpoints:
// the relational bridge (whole-table pull/push) and the file bridge
// (list/upload/delete). Every call is authenticated with the shared key; no
// session state exists on either side.
//
// Remote failures are classified into three distinct error classes so the
// engine can report them separately: transport failures (common.ErrorNetwork),
// bad HTTP statuses (common.ErrorProtocol, or common.ErrorAuth on 403) and
// success statuses with malformed bodies (common.ErrorProtocol carrying a
// snippet of the raw body — the remote side is a minimal script with no
// stable error schema, so the raw text is the diagnostic).
package bridge

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/pitwall/paddockpress/internal/common"
)

// Config carries the endpoints and the shared secret. It is process-wide
// state, mutated only through UpdateConfig.
type Config struct {
	DBEndpoint    string
	FilesEndpoint string
	APIKey        string
}

// Client talks to the remote bridge. Safe for concurrent use.
type Client struct {
	mu   sync.RWMutex
	cfg  Config
	http *http.Client
}

// New returns a client over the given configuration.
func New(cfg Config) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// UpdateConfig replaces the endpoints and key for all subsequent calls.
func (c *Client) UpdateConfig(cfg Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg = cfg
}

// Configured reports whether the relational endpoint and key are set.
func (c *Client) Configured() bool {
	cfg := c.config()
	return cfg.DBEndpoint != "" && cfg.APIKey != ""
}

func (c *Client) config() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg
}

// authToken builds the auth query value: base64 of a JSON payload embedding
// the shared key and client parameters.
func authToken(key string) string {
	payload, _ := json.Marshal(map[string]any{
		"key":    key,
		"client": "paddockpress",
		"v":      1,
	})
	return base64.StdEncoding.EncodeToString(payload)
}

// PullTables fetches the full remote table snapshot. A well-formed, non-empty
// mapping of table name to row array is returned as-is; {"status":"empty"}
// and empty mappings yield common.ErrorNoData.
func (c *Client) PullTables(ctx context.Context) (map[string][]json.RawMessage, error) {
	cfg := c.config()
	u := fmt.Sprintf("%s?auth=%s&action=pull", cfg.DBEndpoint, url.QueryEscape(authToken(cfg.APIKey)))

	body, err := c.do(ctx, http.MethodGet, u, "", nil)
	if err != nil {
		return nil, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: pull returned non-JSON body: %s", common.ErrorProtocol, snippet(body))
	}
	if errMsg, ok := raw["error"]; ok {
		return nil, fmt.Errorf("%w: remote error: %s", common.ErrorProtocol, string(errMsg))
	}
	if status, ok := raw["status"]; ok && strings.Trim(string(status), `"`) == "empty" {
		return nil, common.ErrorNoData
	}
	if len(raw) == 0 {
		return nil, common.ErrorNoData
	}

	tables := make(map[string][]json.RawMessage, len(raw))
	for name, rowsRaw := range raw {
		var rows []json.RawMessage
		if err := json.Unmarshal(rowsRaw, &rows); err != nil {
			return nil, fmt.Errorf("%w: table %q is not a row array: %s", common.ErrorProtocol, name, snippet(rowsRaw))
		}
		tables[name] = rows
	}
	return tables, nil
}

// PushTables posts the full snapshot of every tracked table in one request.
func (c *Client) PushTables(ctx context.Context, tables map[string][]json.RawMessage) error {
	cfg := c.config()
	u := fmt.Sprintf("%s?auth=%s&action=push", cfg.DBEndpoint, url.QueryEscape(authToken(cfg.APIKey)))

	payload, err := json.Marshal(tables)
	if err != nil {
		return fmt.Errorf("encode push payload: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, u, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}

	var ack struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &ack); err != nil {
		return fmt.Errorf("%w: push returned non-JSON body: %s", common.ErrorProtocol, snippet(body))
	}
	if !ack.Success {
		return fmt.Errorf("%w: push not acknowledged: %s", common.ErrorProtocol, firstNonEmpty(ack.Error, snippet(body)))
	}
	return nil
}

// Health probes the relational endpoint.
func (c *Client) Health(ctx context.Context) error {
	cfg := c.config()
	u := fmt.Sprintf("%s?auth=%s&test=1", cfg.DBEndpoint, url.QueryEscape(authToken(cfg.APIKey)))

	body, err := c.do(ctx, http.MethodGet, u, "", nil)
	if err != nil {
		return err
	}

	var status struct {
		DBStatus string `json:"db_status"`
	}
	if err := json.Unmarshal(body, &status); err != nil {
		return fmt.Errorf("%w: health returned non-JSON body: %s", common.ErrorProtocol, snippet(body))
	}
	if status.DBStatus != "connected" {
		return fmt.Errorf("%w: db_status %q", common.ErrorProtocol, status.DBStatus)
	}
	return nil
}

// do performs one HTTP call and returns the body of a 2xx response. The
// error classes are the ones documented on the package.
func (c *Client) do(ctx context.Context, method, u, contentType string, payload io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, payload)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", common.ErrorNetwork, err)
	}

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: key rejected (%s)", common.ErrorAuth, snippet(body))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: %s: %s", common.ErrorProtocol, resp.Status, snippet(body))
	}
	return body, nil
}

// snippet trims a raw body for inclusion in error messages.
func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	if s == "" {
		return "(empty body)"
	}
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
