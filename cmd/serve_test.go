package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/playbook-cli/internal/model"
	"github.com/sells-group/playbook-cli/internal/store"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "serve.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return newRouter(st, nil, 0, []string{"chrome-extension://*"})
}

func acmeRequestBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(model.CustomerContext{
		CustomerName:  "Acme",
		ContactName:   "Jane",
		ContactRole:   "VP Ops",
		AccountValue:  "$120,000",
		CurrentHealth: model.HealthCritical,
		Scenario:      model.ScenarioRenewalRisk,
		CustomSignal:  "threatening to leave",
	})
	require.NoError(t, err)
	return body
}

func serve(h http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRouter_Health(t *testing.T) {
	rr := serve(newTestRouter(t), http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestRouter_Scenarios(t *testing.T) {
	rr := serve(newTestRouter(t), http.MethodGet, "/scenarios", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var body []scenarioInfo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body, len(model.AllScenarios()))
	for _, s := range body {
		assert.NotEmpty(t, s.Label, s.Key)
		assert.True(t, s.Tone.Valid(), s.Key)
	}
}

func TestRouter_GenerateThenLast(t *testing.T) {
	h := newTestRouter(t)

	rr := serve(h, http.MethodPost, "/playbooks", acmeRequestBody(t))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var pb model.CSPlaybook
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &pb))
	assert.Equal(t, "Acme", pb.CustomerName)
	assert.Equal(t, model.ScenarioRenewalRisk, pb.ScenarioType)
	assert.NotEmpty(t, pb.ActionPlan)

	rr = serve(h, http.MethodGet, "/playbooks/last", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var entry store.CachedPlaybook
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entry))
	assert.Equal(t, store.LastPlaybookKey, entry.Key)
	assert.Equal(t, pb.SignalSummary, entry.Playbook.SignalSummary)

	rr = serve(h, http.MethodGet, "/playbooks/last/sections/summary", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/plain")
	assert.Equal(t, pb.SignalSummary, rr.Body.String())
}

func TestRouter_LastEmpty(t *testing.T) {
	h := newTestRouter(t)

	rr := serve(h, http.MethodGet, "/playbooks/last", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "no recent playbook")

	rr = serve(h, http.MethodGet, "/playbooks/last/sections/email", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouter_UnknownSection(t *testing.T) {
	h := newTestRouter(t)
	require.Equal(t, http.StatusOK, serve(h, http.MethodPost, "/playbooks", acmeRequestBody(t)).Code)

	rr := serve(h, http.MethodGet, "/playbooks/last/sections/appendix", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouter_GenerateBadRequests(t *testing.T) {
	tests := []struct {
		name     string
		body     []byte
		contains string
	}{
		{"malformed json", []byte(`{"customerName":`), "invalid request body"},
		{"missing names", []byte(`{"currentHealth":"healthy","scenario":"usage_decline"}`), "customerName is required"},
		{"bad health", []byte(`{"customerName":"A","contactName":"B","contactRole":"C","currentHealth":"fine","scenario":"usage_decline"}`), "currentHealth"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(newTestRouter(t), http.MethodPost, "/playbooks", tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.contains)
		})
	}
}

func TestRouter_GenerateMetricsWithoutTimeline(t *testing.T) {
	body := []byte(`{"customerName":"Acme","contactName":"Jane","contactRole":"VP Ops",` +
		`"currentHealth":"at-risk","scenario":"usage_decline","metrics":{"loginRate":10,"assignedUsers":40}}`)

	rr := serve(newTestRouter(t), http.MethodPost, "/playbooks", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var pb model.CSPlaybook
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &pb))
	require.NotNil(t, pb.AccountSnapshot)
	assert.Equal(t, model.RenewalMidTerm, pb.AccountSnapshot.Metrics.RenewalTimeline)
}

func TestRouter_NilStore(t *testing.T) {
	h := newRouter(nil, nil, 0, nil)

	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/health", nil).Code)
	assert.Equal(t, http.StatusOK, serve(h, http.MethodPost, "/playbooks", acmeRequestBody(t)).Code)
	assert.Equal(t, http.StatusServiceUnavailable, serve(h, http.MethodGet, "/playbooks/last", nil).Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/playbooks", nil)
	req.Header.Set("Origin", "chrome-extension://abcdef")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "chrome-extension://abcdef", rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/playbooks", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}
