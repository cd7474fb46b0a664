package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"seat-status-probe/internal/auth"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	session, err := auth.NewSession(nil, "probe-agent")
	require.NoError(t, err)
	return New(session, rate.Inf, 1)
}

func TestFetch_ReturnsEnvelopeData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "probe-agent", r.Header.Get("User-Agent"))
		w.Write([]byte(`{"status":1,"data":{"list":[{"id":7}]}}`))
	}))
	defer server.Close()

	data, err := newTestClient(t).Fetch(context.Background(), server.URL, nil)
	require.NoError(t, err)

	var payload struct {
		List []struct {
			ID int `json:"id"`
		} `json:"list"`
	}
	require.NoError(t, json.Unmarshal(data, &payload))
	require.Len(t, payload.List, 1)
	assert.Equal(t, 7, payload.List[0].ID)
}

func TestFetch_EncodesQueryParams(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"status":1,"data":{}}`))
	}))
	defer server.Close()

	params := url.Values{}
	params.Set("area", "12")
	params.Set("startTime", "14:30")

	_, err := newTestClient(t).Fetch(context.Background(), server.URL, params)
	require.NoError(t, err)
	assert.Equal(t, "12", gotQuery.Get("area"))
	assert.Equal(t, "14:30", gotQuery.Get("startTime"))
}

func TestFetch_Non200IsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway timeout", http.StatusGatewayTimeout)
	}))
	defer server.Close()

	_, err := newTestClient(t).Fetch(context.Background(), server.URL, nil)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusGatewayTimeout, transportErr.StatusCode)
}

func TestFetch_UndecodableBodyIsProtocolError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>login expired</html>"))
	}))
	defer server.Close()

	_, err := newTestClient(t).Fetch(context.Background(), server.URL, nil)

	var protocolErr *ProtocolError
	require.ErrorAs(t, err, &protocolErr)
	assert.Error(t, protocolErr.Err)
}

func TestFetch_EnvelopeFailureIsProtocolError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":0,"data":null}`))
	}))
	defer server.Close()

	_, err := newTestClient(t).Fetch(context.Background(), server.URL, nil)

	var protocolErr *ProtocolError
	require.ErrorAs(t, err, &protocolErr)
	assert.NoError(t, protocolErr.Err)
	assert.Equal(t, 0, protocolErr.Status)
}

func TestFetch_FollowsRedirects(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":1,"data":{"ok":true}}`))
	}))
	defer target.Close()

	hop := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target.URL, http.StatusFound)
	}))
	defer hop.Close()

	data, err := newTestClient(t).Fetch(context.Background(), hop.URL, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(data))
}

func TestFetch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(t).Fetch(ctx, "http://127.0.0.1:0/unreachable", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
