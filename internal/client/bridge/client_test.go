package bridge

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pitwall/paddockpress/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := New(Config{
		DBEndpoint:    srv.URL + "/db",
		FilesEndpoint: srv.URL + "/files",
		APIKey:        "sekrit",
	})
	return c, srv
}

func TestAuthToken_EmbedsKey(t *testing.T) {
	raw, err := base64.StdEncoding.DecodeString(authToken("sekrit"))
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, "sekrit", payload["key"])
	assert.Equal(t, "paddockpress", payload["client"])
}

func TestPullTables_WellFormed(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pull", r.URL.Query().Get("action"))
		assert.NotEmpty(t, r.URL.Query().Get("auth"))
		_, _ = w.Write([]byte(`{"posts":[{"id":"p1"}],"teams":[]}`))
	})
	defer srv.Close()

	tables, err := c.PullTables(context.Background())
	require.NoError(t, err)
	require.Len(t, tables["posts"], 1)
	assert.Empty(t, tables["teams"])
}

func TestPullTables_EmptyStatus(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"empty"}`))
	})
	defer srv.Close()

	_, err := c.PullTables(context.Background())
	require.ErrorIs(t, err, common.ErrorNoData)
}

func TestPullTables_RemoteError(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"no such database"}`))
	})
	defer srv.Close()

	_, err := c.PullTables(context.Background())
	require.ErrorIs(t, err, common.ErrorProtocol)
	assert.Contains(t, err.Error(), "no such database")
}

func TestPullTables_NonJSONBody(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>Fatal error on line 3</html>`))
	})
	defer srv.Close()

	_, err := c.PullTables(context.Background())
	require.ErrorIs(t, err, common.ErrorProtocol)
	assert.Contains(t, err.Error(), "Fatal error", "raw body snippet must surface")
}

func TestPullTables_TableNotArray(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"posts":{"id":"p1"}}`))
	})
	defer srv.Close()

	_, err := c.PullTables(context.Background())
	require.ErrorIs(t, err, common.ErrorProtocol)
}

func TestPullTables_AuthRejected(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"bad key"}`))
	})
	defer srv.Close()

	_, err := c.PullTables(context.Background())
	require.ErrorIs(t, err, common.ErrorAuth)
}

func TestPullTables_NetworkFailure(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {})
	srv.Close() // connection refused from here on

	_, err := c.PullTables(context.Background())
	require.ErrorIs(t, err, common.ErrorNetwork)
}

func TestPushTables_SendsFullPayload(t *testing.T) {
	var got map[string][]json.RawMessage
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "push", r.URL.Query().Get("action"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	defer srv.Close()

	err := c.PushTables(context.Background(), map[string][]json.RawMessage{
		"posts": {json.RawMessage(`{"id":"p1"}`)},
		"teams": {},
	})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestPushTables_NotAcknowledged(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":"disk full"}`))
	})
	defer srv.Close()

	err := c.PushTables(context.Background(), map[string][]json.RawMessage{})
	require.ErrorIs(t, err, common.ErrorProtocol)
	assert.Contains(t, err.Error(), "disk full")
}

func TestHealth(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("test"))
		_, _ = w.Write([]byte(`{"db_status":"connected"}`))
	})
	defer srv.Close()

	require.NoError(t, c.Health(context.Background()))
}

func TestHealth_NotConnected(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"db_status":"down"}`))
	})
	defer srv.Close()

	require.ErrorIs(t, c.Health(context.Background()), common.ErrorProtocol)
}

func TestUpdateConfig_TakesEffect(t *testing.T) {
	c := New(Config{})
	assert.False(t, c.Configured())

	c.UpdateConfig(Config{DBEndpoint: "http://x", APIKey: "k"})
	assert.True(t, c.Configured())
}
