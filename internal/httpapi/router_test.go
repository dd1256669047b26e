package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloodcamp/internal/admin"
	adminstore "bloodcamp/internal/admin/store"
	"bloodcamp/internal/camp"
	campmodels "bloodcamp/internal/camp/models"
	campstore "bloodcamp/internal/camp/store"
	"bloodcamp/internal/donor"
	donorstore "bloodcamp/internal/donor/store"
	"bloodcamp/internal/notify"
	"bloodcamp/internal/platform/ratelimit"
	"bloodcamp/internal/registration"
	registrationhandler "bloodcamp/internal/registration/handler"
)

type testEnv struct {
	router     http.Handler
	campStore  *campstore.InMemory
	donorStore *donorstore.InMemory
	adminSvc   *admin.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	campStore := campstore.NewInMemory()
	donorStore := donorstore.NewInMemory()
	campSvc := camp.NewService(campStore, logger)
	donorSvc := donor.NewService(donorStore, logger)

	tokens := admin.NewTokenService("test-signing-key", time.Hour)
	adminSvc := admin.NewService(adminstore.NewInMemory(), tokens, logger)
	require.NoError(t, adminSvc.Bootstrap(context.Background(), admin.BootstrapConfig{
		Email:    "admin@bloodcamp.org",
		Password: "s3cret-pass",
	}))

	dispatcher := notify.NewDispatcher(nil, 8, logger)
	coord := registration.NewCoordinator(campSvc, donorStore, dispatcher, nil, logger)

	router := New(Deps{
		Registration: registrationhandler.New(coord, logger),
		Camps:        camp.NewHandler(campSvc, logger),
		Donors:       donor.NewHandler(donorSvc, logger),
		Admin:        admin.NewHandler(adminSvc, logger),
		Tokens:       tokens,
		Limiter:      ratelimit.New(ratelimit.NewMemoryStore(), 100, time.Minute, logger),
		Logger:       logger,
	})
	return &testEnv{router: router, campStore: campStore, donorStore: donorStore, adminSvc: adminSvc}
}

func (e *testEnv) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/admin/login", `{"email": "admin@bloodcamp.org", "password": "s3cret-pass"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp["token"]
}

func (e *testEnv) seedCamp(t *testing.T, name string) *campmodels.Camp {
	t.Helper()
	date := time.Now().AddDate(0, 0, 14)
	c := &campmodels.Camp{ID: uuid.New(), Name: name, Location: "Town Hall", Date: &date}
	require.NoError(t, e.campStore.CreateIfNameAvailable(context.Background(), c))
	return c
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsExposed(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/admin/camps"},
		{http.MethodGet, "/api/admin/camps"},
		{http.MethodGet, "/api/donors/camp/" + uuid.NewString()},
		{http.MethodDelete, "/api/donors/" + uuid.NewString()},
	}
	for _, p := range paths {
		w := env.do(t, p.method, p.path, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", p.method, p.path)
	}
}

func TestPublicCampListNoToken(t *testing.T) {
	env := newTestEnv(t)
	env.seedCamp(t, "City Hall Drive")

	w := env.do(t, http.MethodGet, "/api/camps", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var camps []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &camps))
	assert.Len(t, camps, 1)
}

func TestRegistrationThroughRouter(t *testing.T) {
	env := newTestEnv(t)
	c := env.seedCamp(t, "City Hall Drive")

	body := `{
		"name": "Asha Verma",
		"dob": "1998-02-10",
		"weight": 63.5,
		"bloodGroup": "O+",
		"phone": "5550123",
		"address": "12 Mill Lane",
		"camp": "` + c.ID.String() + `"
	}`
	w := env.do(t, http.MethodPost, "/api/donors", body, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	// The admin can now see the donor on the camp roster.
	token := env.login(t)
	roster := env.do(t, http.MethodGet, "/api/donors/camp/"+c.ID.String(), "", token)
	assert.Equal(t, http.StatusOK, roster.Code)
	var donors []map[string]any
	require.NoError(t, json.Unmarshal(roster.Body.Bytes(), &donors))
	require.Len(t, donors, 1)
	assert.Equal(t, "Asha Verma", donors[0]["name"])
}

func TestAdminCampLifecycleThroughRouter(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	created := env.do(t, http.MethodPost, "/api/admin/camps", `{"name": "New Drive", "location": "School", "date": "2030-01-15"}`, token)
	require.Equal(t, http.StatusCreated, created.Code)
	var c map[string]any
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &c))
	campID := c["id"].(string)

	updated := env.do(t, http.MethodPut, "/api/admin/camps/"+campID, `{"name": "Renamed Drive"}`, token)
	assert.Equal(t, http.StatusOK, updated.Code)

	deleted := env.do(t, http.MethodDelete, "/api/admin/camps/"+campID, "", token)
	assert.Equal(t, http.StatusOK, deleted.Code)
}

func TestRegistrationRateLimited(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	env := newTestEnv(t)
	c := env.seedCamp(t, "City Hall Drive")

	// Rebuild with a tiny limit to trip quickly.
	campSvc := camp.NewService(env.campStore, logger)
	donorSvc := donor.NewService(env.donorStore, logger)
	tokens := admin.NewTokenService("test-signing-key", time.Hour)
	coord := registration.NewCoordinator(campSvc, env.donorStore, notify.NewDispatcher(nil, 8, logger), nil, logger)
	router := New(Deps{
		Registration: registrationhandler.New(coord, logger),
		Camps:        camp.NewHandler(campSvc, logger),
		Donors:       donor.NewHandler(donorSvc, logger),
		Admin:        admin.NewHandler(env.adminSvc, logger),
		Tokens:       tokens,
		Limiter:      ratelimit.New(ratelimit.NewMemoryStore(), 1, time.Minute, logger),
		Logger:       logger,
	})

	body := `{"name": "A", "camp": "` + c.ID.String() + `"}`
	first := httptest.NewRequest(http.MethodPost, "/api/donors", strings.NewReader(body))
	w1 := httptest.NewRecorder()
	router.ServeHTTP(w1, first)

	second := httptest.NewRequest(http.MethodPost, "/api/donors", strings.NewReader(body))
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, second)

	assert.Equal(t, http.StatusTooManyRequests, w2.Code)
	assert.NotEmpty(t, w2.Header().Get("Retry-After"))
}
