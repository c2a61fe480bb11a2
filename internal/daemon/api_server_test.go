package daemon

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"slate/internal/api"
	"slate/internal/logging"
	"slate/internal/roles"
	"slate/internal/testsupport"
)

func newTestDaemon(t *testing.T, opts ...testsupport.ConfigOption) *Daemon {
	t.Helper()
	cfg := testsupport.NewConfig(t, opts...)
	testsupport.SeedCatalog(t, cfg)

	store := testsupport.MustOpenCatalog(t, cfg)
	policy, err := roles.NewPolicy(cfg)
	if err != nil {
		t.Fatalf("NewPolicy: %v", err)
	}
	led := testsupport.MustOpenLedger(t, cfg)

	d, err := New(cfg, store, policy, led, logging.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d
}

func serve(t *testing.T, d *Daemon, method, target string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	w := httptest.NewRecorder()
	d.api.server.Handler.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var payload T
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return payload
}

func TestHealthEndpoint(t *testing.T) {
	d := newTestDaemon(t)

	w := serve(t, d, http.MethodGet, "/api/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if payload := decode[api.HealthResponse](t, w); payload.Status != "ok" {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestBearerTokenRequired(t *testing.T) {
	d := newTestDaemon(t, testsupport.WithAPIToken("sesame"))

	if w := serve(t, d, http.MethodGet, "/api/titles", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing token status = %d", w.Code)
	}
	wrong := http.Header{"Authorization": {"Bearer wrong"}}
	if w := serve(t, d, http.MethodGet, "/api/titles", wrong); w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong token status = %d", w.Code)
	}
	good := http.Header{"Authorization": {"Bearer sesame"}}
	if w := serve(t, d, http.MethodGet, "/api/titles", good); w.Code != http.StatusOK {
		t.Fatalf("valid token status = %d", w.Code)
	}
	// Health stays reachable for probes that cannot carry credentials.
	if w := serve(t, d, http.MethodGet, "/api/health", nil); w.Code != http.StatusOK {
		t.Fatalf("health status = %d", w.Code)
	}
}

func TestListTitlesEndpoint(t *testing.T) {
	d := newTestDaemon(t)

	w := serve(t, d, http.MethodGet, "/api/titles?role=Sales&search=sky&pageSize=10", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	payload := decode[api.TitleListResponse](t, w)
	if payload.Role != "Sales" || payload.Total != 1 || payload.PageSize != 10 {
		t.Fatalf("payload = %+v", payload)
	}
	if payload.Results[0].Name != "Skybound" {
		t.Fatalf("results = %+v", payload.Results)
	}
}

func TestListTitlesCoercesBadParams(t *testing.T) {
	d := newTestDaemon(t)

	w := serve(t, d, http.MethodGet, "/api/titles?page=banana&pageSize=-4&sort=nonsense&hasAssets=yes", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	payload := decode[api.TitleListResponse](t, w)
	if payload.Page != 1 || payload.PageSize != 1 {
		t.Fatalf("paging = %d/%d", payload.Page, payload.PageSize)
	}
	// hasAssets=yes is not the literal "true", so no filter applies.
	if payload.Total != 5 {
		t.Fatalf("total = %d", payload.Total)
	}
}

func TestTitleDetailEndpoint(t *testing.T) {
	d := newTestDaemon(t)

	w := serve(t, d, http.MethodGet, "/api/titles/t-001?role=Viewer", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if body := w.Body.String(); strings.Contains(body, "budget_million") {
		t.Fatalf("viewer response leaked investment: %s", body)
	}
	payload := decode[api.TitleDetail](t, w)
	if payload.ID != "t-001" || payload.Investment != nil {
		t.Fatalf("payload = %+v", payload)
	}

	if w := serve(t, d, http.MethodGet, "/api/titles/t-404", nil); w.Code != http.StatusNotFound {
		t.Fatalf("unknown title status = %d", w.Code)
	}
}

func TestPublishEndpoints(t *testing.T) {
	d := newTestDaemon(t)

	if w := serve(t, d, http.MethodPost, "/api/titles/t-001/publish?role=Viewer", nil); w.Code != http.StatusForbidden {
		t.Fatalf("viewer publish status = %d", w.Code)
	}
	if w := serve(t, d, http.MethodPost, "/api/titles/t-404/publish?role=Admin", nil); w.Code != http.StatusNotFound {
		t.Fatalf("unknown title publish status = %d", w.Code)
	}

	w := serve(t, d, http.MethodPost, "/api/titles/t-001/publish?role=Admin", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("publish status = %d body = %s", w.Code, w.Body.String())
	}
	published := decode[api.PublishResponse](t, w)
	if !published.Success || !published.Published || !strings.HasSuffix(published.SalesURL, "/skybound") {
		t.Fatalf("publish payload = %+v", published)
	}

	w = serve(t, d, http.MethodPost, "/api/titles/t-001/unpublish?role=Admin", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("unpublish status = %d", w.Code)
	}
	unpublished := decode[api.UnpublishResponse](t, w)
	if !unpublished.Success || unpublished.Published {
		t.Fatalf("unpublish payload = %+v", unpublished)
	}
}

func TestMethodAndPathValidation(t *testing.T) {
	d := newTestDaemon(t)

	tests := []struct {
		method string
		target string
		want   int
	}{
		{http.MethodPost, "/api/titles", http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/titles/t-001/publish", http.StatusMethodNotAllowed},
		{http.MethodPost, "/api/titles/t-001", http.StatusMethodNotAllowed},
		{http.MethodPost, "/api/titles/t-001/publish/extra", http.StatusNotFound},
		{http.MethodGet, "/api/titles/t-001/promote", http.StatusNotFound},
		{http.MethodDelete, "/api/roles", http.StatusMethodNotAllowed},
	}
	for _, tc := range tests {
		if w := serve(t, d, tc.method, tc.target, nil); w.Code != tc.want {
			t.Fatalf("%s %s = %d, want %d", tc.method, tc.target, w.Code, tc.want)
		}
	}
}

func TestRolesEndpoint(t *testing.T) {
	d := newTestDaemon(t)

	w := serve(t, d, http.MethodGet, "/api/roles", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	payload := decode[[]api.RoleInfo](t, w)
	if len(payload) != 4 || payload[0].Role != "Admin" {
		t.Fatalf("roles = %+v", payload)
	}
}

func TestRequestIDEchoed(t *testing.T) {
	d := newTestDaemon(t)

	w := serve(t, d, http.MethodGet, "/api/health", nil)
	if w.Header().Get(requestIDHeader) == "" {
		t.Fatal("expected a generated request id")
	}

	supplied := http.Header{requestIDHeader: {"req-42"}}
	w = serve(t, d, http.MethodGet, "/api/health", supplied)
	if got := w.Header().Get(requestIDHeader); got != "req-42" {
		t.Fatalf("request id = %q, want caller's", got)
	}
}

func TestStatusEndpoint(t *testing.T) {
	d := newTestDaemon(t)

	if w := serve(t, d, http.MethodPost, "/api/titles/t-002/publish?role=Admin", nil); w.Code != http.StatusOK {
		t.Fatalf("publish status = %d", w.Code)
	}

	w := serve(t, d, http.MethodGet, "/api/status", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	payload := decode[api.DaemonStatus](t, w)
	if payload.TitleCount != 5 || payload.PublishedCount != 1 || payload.DefaultRole != "Viewer" {
		t.Fatalf("payload = %+v", payload)
	}
	if payload.Running {
		t.Fatal("daemon not started, running must be false")
	}
}
