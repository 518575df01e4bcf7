package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.storegate.dev/internal/common/repository"
	"go.storegate.dev/internal/platform/auth"
	"go.storegate.dev/internal/platform/authz"
	"go.storegate.dev/internal/platform/envelope"
	"go.storegate.dev/internal/platform/messages"
	"go.storegate.dev/internal/platform/pipeline"
	"go.storegate.dev/internal/platform/principal"
	"go.storegate.dev/internal/platform/staff"
	"go.storegate.dev/internal/platform/staff/operations"
	"go.storegate.dev/internal/platform/txn"
	"go.storegate.dev/internal/platform/txn/txntest"
)

// fakeStaffRepo keeps staff members in memory for handler tests.
type fakeStaffRepo struct {
	mu      sync.Mutex
	members map[string]*staff.StaffMember
}

func newFakeStaffRepo(seed ...*staff.StaffMember) *fakeStaffRepo {
	r := &fakeStaffRepo{members: make(map[string]*staff.StaffMember)}
	for _, m := range seed {
		r.members[m.ID] = m
	}
	return r
}

func (r *fakeStaffRepo) FindByID(ctx context.Context, id string) (*staff.StaffMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return m, nil
}

func (r *fakeStaffRepo) FindByStore(ctx context.Context, storeID string) ([]*staff.StaffMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*staff.StaffMember
	for _, m := range r.members {
		if m.StoreID == storeID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeStaffRepo) ExistsInStore(ctx context.Context, storeID, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.members {
		if m.StoreID == storeID && m.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeStaffRepo) Insert(ctx context.Context, m *staff.StaffMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[m.ID] = m
	return nil
}

func (r *fakeStaffRepo) Update(ctx context.Context, m *staff.StaffMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[m.ID]; !ok {
		return repository.ErrNotFound
	}
	r.members[m.ID] = m
	return nil
}

type serverFixture struct {
	server *httptest.Server
	tokens *auth.TokenService
	repo   *fakeStaffRepo
}

func newServerFixture(t *testing.T, seed ...*staff.StaffMember) *serverFixture {
	t.Helper()

	catalog := messages.MustLoad()
	registry := authz.NewRegistry(nil)
	operations.RegisterActions(registry)

	pl := pipeline.New(
		authz.NewEngine(registry, authz.DefaultRoleGrants(), nil),
		txn.NewCoordinator(txntest.NewProvider(), nil),
		envelope.NewNormalizer(catalog),
		envelope.NewTranslator(catalog, false, nil),
		messages.LanguageEN,
		nil,
	)

	tokens := auth.NewTokenService(auth.TokenServiceConfig{
		Secret: "api-test-secret-0123456789abcdef!!",
		Issuer: "storegate-test",
		Expiry: time.Hour,
	})

	repo := newFakeStaffRepo(seed...)
	router := NewRouter(RouterConfig{
		Auth:        NewAuthMiddleware(tokens, nil, nil),
		AuthHandler: NewAuthHandler(tokens, nil),
		Staff:       NewStaffHandler(pl, repo),
		CORSOrigins: []string{"*"},
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &serverFixture{server: srv, tokens: tokens, repo: repo}
}

func (f *serverFixture) token(t *testing.T, role principal.Role) string {
	t.Helper()
	raw, err := f.tokens.Issue(&principal.Principal{
		ID:      "p-1",
		Name:    "Owner",
		Email:   "owner@example.com",
		Role:    role,
		StoreID: "st-1",
	})
	require.NoError(t, err)
	return raw
}

func (f *serverFixture) request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, f.server.URL+path, &buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealthEndpoint(t *testing.T) {
	f := newServerFixture(t)

	resp := f.request(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "UP", decodeBody(t, resp)["status"])
}

func TestCreateStaffEndpoint(t *testing.T) {
	t.Run("owner creates staff", func(t *testing.T) {
		f := newServerFixture(t)

		resp := f.request(t, http.MethodPost, "/api/v1/stores/st-1/staff", f.token(t, principal.RoleOwner),
			map[string]any{"name": "Ada", "email": "ada@example.com"})

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		out := decodeBody(t, resp)
		assert.Equal(t, true, out["success"])
		assert.Equal(t, envelope.CodeStaffCreated, out["code"])
		assert.NotEmpty(t, out["staffId"])
	})

	t.Run("no token is 401 with taxonomy code", func(t *testing.T) {
		f := newServerFixture(t)

		resp := f.request(t, http.MethodPost, "/api/v1/stores/st-1/staff", "",
			map[string]any{"name": "Ada", "email": "ada@example.com"})

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, envelope.CodeUnauthenticated, decodeBody(t, resp)["errorCode"])
	})

	t.Run("cashier is 403", func(t *testing.T) {
		f := newServerFixture(t)

		resp := f.request(t, http.MethodPost, "/api/v1/stores/st-1/staff", f.token(t, principal.RoleCashier),
			map[string]any{"name": "Ada", "email": "ada@example.com"})

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, envelope.CodeInsufficientPermission, decodeBody(t, resp)["errorCode"])
	})

	t.Run("missing field is 400", func(t *testing.T) {
		f := newServerFixture(t)

		resp := f.request(t, http.MethodPost, "/api/v1/stores/st-1/staff", f.token(t, principal.RoleOwner),
			map[string]any{"name": "Ada"})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		out := decodeBody(t, resp)
		assert.Equal(t, envelope.CodeMissingRequiredField, out["errorCode"])
		assert.Equal(t, "email", out["field"])
	})

	t.Run("foreign store is 403", func(t *testing.T) {
		f := newServerFixture(t)

		resp := f.request(t, http.MethodPost, "/api/v1/stores/st-2/staff", f.token(t, principal.RoleOwner),
			map[string]any{"name": "Ada", "email": "ada@example.com"})

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, envelope.CodeTenantAccessDenied, decodeBody(t, resp)["errorCode"])
	})

	t.Run("localized error message", func(t *testing.T) {
		f := newServerFixture(t)

		req, err := http.NewRequest(http.MethodPost, f.server.URL+"/api/v1/stores/st-1/staff",
			bytes.NewBufferString(`{"name":"Ada"}`))
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+f.token(t, principal.RoleOwner))
		req.Header.Set("Accept-Language", "fr-CA,fr;q=0.9")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)

		enResp := f.request(t, http.MethodPost, "/api/v1/stores/st-1/staff", f.token(t, principal.RoleOwner),
			map[string]any{"name": "Ada"})

		assert.NotEqual(t, decodeBody(t, enResp)["message"], decodeBody(t, resp)["message"])
	})
}

func TestListStaffEndpoint(t *testing.T) {
	f := newServerFixture(t,
		&staff.StaffMember{ID: "stf-1", StoreID: "st-1", Name: "A", Email: "a@example.com", Role: principal.RoleCashier, Active: true},
		&staff.StaffMember{ID: "stf-2", StoreID: "st-2", Name: "B", Email: "b@example.com", Role: principal.RoleCashier, Active: true},
	)

	resp := f.request(t, http.MethodGet, "/api/v1/stores/st-1/staff", f.token(t, principal.RoleOwner), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	defer resp.Body.Close()
	var members []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&members))
	assert.Len(t, members, 1)
	assert.Equal(t, "stf-1", members[0]["id"])
}

func TestGetStaffEndpoint(t *testing.T) {
	f := newServerFixture(t,
		&staff.StaffMember{ID: "stf-1", StoreID: "st-1", Name: "A", Email: "a@example.com", Role: principal.RoleCashier, Active: true},
	)

	t.Run("found", func(t *testing.T) {
		resp := f.request(t, http.MethodGet, "/api/v1/stores/st-1/staff/stf-1", f.token(t, principal.RoleOwner), nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "stf-1", decodeBody(t, resp)["id"])
	})

	t.Run("unknown is 404", func(t *testing.T) {
		resp := f.request(t, http.MethodGet, "/api/v1/stores/st-1/staff/stf-404", f.token(t, principal.RoleOwner), nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, envelope.CodeStaffNotFound, decodeBody(t, resp)["errorCode"])
	})
}

func TestMeEndpoint(t *testing.T) {
	f := newServerFixture(t)

	t.Run("with token", func(t *testing.T) {
		resp := f.request(t, http.MethodGet, "/auth/me", f.token(t, principal.RoleOwner), nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "p-1", decodeBody(t, resp)["id"])
	})

	t.Run("without token", func(t *testing.T) {
		resp := f.request(t, http.MethodGet, "/auth/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestStatusForCode(t *testing.T) {
	cases := map[string]int{
		envelope.CodeUnauthenticated:        http.StatusUnauthorized,
		envelope.CodeTokenExpired:           http.StatusUnauthorized,
		envelope.CodeUnauthorized:           http.StatusForbidden,
		envelope.CodeInsufficientPermission: http.StatusForbidden,
		envelope.CodeTenantAccessDenied:     http.StatusForbidden,
		envelope.CodeMissingRequiredField:   http.StatusBadRequest,
		envelope.CodeValidationFailed:       http.StatusBadRequest,
		envelope.CodeDuplicateRecord:        http.StatusConflict,
		envelope.CodeDuplicateStaffEmail:    http.StatusConflict,
		envelope.CodeStaffNotFound:          http.StatusNotFound,
		envelope.CodeSystemError:            http.StatusInternalServerError,
		"X9999":                             http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, statusForCode(code), code)
	}
}

func TestPrimaryLanguage(t *testing.T) {
	cases := map[string]string{
		"fr":                      "fr",
		"fr-CA,fr;q=0.9,en;q=0.5": "fr",
		"en-US,en;q=0.9":          "en",
		"de-DE,de;q=0.9":          "",
		"":                        "",
	}
	for header, want := range cases {
		assert.Equal(t, want, primaryLanguage(header), header)
	}
}
