package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fw-panel/internal/models"
)

func TestClient_ListFirewalls(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/firewalls", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"firewalls":[
			{"id":"fw-1","name":"edge","status":"running","management_ip":"10.0.0.1","subnet":"192.168.1.0/24","vcpu":2,"ram":4,"security_policy":"web"},
			{"id":"fw-2","name":"lab","status":"stopped"}
		]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	firewalls, err := c.ListFirewalls(context.Background())
	require.NoError(t, err)

	require.Len(t, firewalls, 2)
	assert.Equal(t, "edge", firewalls[0].Name)
	assert.Equal(t, "running", firewalls[0].Status)
	assert.Equal(t, 2, firewalls[0].VCPU)
	assert.Equal(t, "fw-2", firewalls[1].ID)
}

func TestClient_ListLogs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/logs", r.URL.Path)
		w.Write([]byte(`{"success":true,"logs":["[INFO] 2026-01-01 10:00:00 - up"]}`))
	}))
	defer srv.Close()

	logs, err := New(srv.URL).ListLogs(context.Background())
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "[INFO] 2026-01-01 10:00:00 - up", logs[0])
}

func TestClient_Deploy_PostsTypedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/firewalls/deploy", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "edge-fw", payload["name"])
		// integers stay integers on the wire
		assert.Equal(t, float64(2), payload["vcpu"])
		assert.Equal(t, float64(4), payload["ram"])
		assert.Equal(t, "netconf", payload["config_method"])

		w.Write([]byte(`{"success":true,"firewall_id":"fw-1700000000","message":"Firewall deployed successfully"}`))
	}))
	defer srv.Close()

	id, err := New(srv.URL).Deploy(context.Background(), models.DeployRequest{
		Name:           "edge-fw",
		ManagementIP:   "10.0.0.2",
		Subnet:         "192.168.10.0/24",
		VCPU:           2,
		RAM:            4,
		SecurityPolicy: "web",
		ConfigMethod:   "netconf",
	})
	require.NoError(t, err)
	assert.Equal(t, "fw-1700000000", id)
}

func TestClient_Deploy_ServerRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"error":"IP conflict"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Deploy(context.Background(), models.DeployRequest{Name: "edge-fw"})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "IP conflict", apiErr.Message)
}

func TestClient_LifecycleRoutes(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	ctx := context.Background()

	require.NoError(t, c.Start(ctx, "fw-1"))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/firewalls/fw-1/start", gotPath)

	require.NoError(t, c.Stop(ctx, "fw-1"))
	assert.Equal(t, "/firewalls/fw-1/stop", gotPath)

	require.NoError(t, c.Delete(ctx, "fw-1"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/firewalls/fw-1", gotPath)

	require.NoError(t, c.Configure(ctx, "fw-1", "database"))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/firewalls/fw-1/configure", gotPath)
}

func TestClient_Statistics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/statistics", r.URL.Path)
		w.Write([]byte(`{"success":true,"statistics":{
			"total_firewalls":3,"running_firewalls":2,"stopped_firewalls":1,
			"system_uptime":"99.8%","total_logs":12
		}}`))
	}))
	defer srv.Close()

	stats, err := New(srv.URL).Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalFirewalls)
	assert.Equal(t, 2, stats.RunningFirewalls)
	assert.Equal(t, "99.8%", stats.SystemUptime)
}

func TestClient_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway error</html>`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListFirewalls(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "parse failures are transport errors, not API errors")
}

func TestClient_TransportError(t *testing.T) {
	c := New("http://127.0.0.1:1") // nothing listens here
	_, err := c.ListFirewalls(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GET /firewalls")
}
