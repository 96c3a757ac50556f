package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaggymission/adoption-web/internal/api/middleware"
	"github.com/shaggymission/adoption-web/internal/api/view"
	"github.com/shaggymission/adoption-web/internal/core/service"
	"github.com/shaggymission/adoption-web/internal/infrastructure/db/memory"
	"github.com/shaggymission/adoption-web/internal/infrastructure/gateway"
	"github.com/shaggymission/adoption-web/internal/pkg/config"
)

// fakeBackend stands in for the remote services. Users are keyed by email.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	ids := map[string]string{"admin@example.com": "u1", "contrib@example.com": "u2", "nobody@example.com": "u3"}
	roles := map[string]string{"u1": "Admin", "u2": "Contributor"}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&body)
		id, ok := ids[body.Email]
		if !ok || body.Password == "bad" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"message":"Invalid credentials"}`)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "auth", Value: "tok-" + id})
		_, _ = io.WriteString(w, `{"userId":"`+id+`"}`)
	})
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /roles/user-role/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"role":"`+roles[r.PathValue("id")]+`"}`)
	})
	mux.HandleFunc("GET /pets/list", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"pets":[{"_id":"p1","name":"Rex","breed":"Beagle","age":3,"healthStatus":"Good","location":"Lima","images":[]}],"currentPage":1,"totalPages":1}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type testApp struct {
	srv    *httptest.Server
	client *http.Client
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	backend := fakeBackend(t).URL
	log := zerolog.Nop()

	gw := gateway.New(config.GatewayConfig{
		Timeout:       2 * time.Second,
		LoginURL:      backend + "/auth/login",
		LogoutURL:     backend + "/auth/logout",
		RoleLookupURL: backend + "/roles/user-role",
		ListPetsURL:   backend + "/pets/list",
	}, log)
	guard := memory.NewSubmitGuard(0)
	renderer, err := view.New()
	require.NoError(t, err)

	e := NewRouter(Dependencies{
		Log:           log,
		Metrics:       prometheus.NewRegistry(),
		Renderer:      renderer,
		Session:       middleware.SessionConfig{Secret: "test-secret", TTL: time.Hour},
		Sessions:      service.NewSessionManager(memory.NewStorage(0), gw, log),
		Auth:          service.NewAuthService(gw, gw, guard, log),
		Dashboard:     service.NewDashboardService(gw, gw, gw, gateway.NewNoopDecisionSubmitter(log), guard, log),
		Collaborators: service.NewCollaboratorService(gw, log),
	})
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testApp{
		srv: srv,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (a *testApp) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := a.client.Get(a.srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

// post submits a form with the CSRF token the server handed out earlier.
func (a *testApp) post(t *testing.T, path string, values url.Values) (*http.Response, string) {
	t.Helper()
	if values == nil {
		values = url.Values{}
	}
	values.Set("_csrf", a.csrf(t))
	resp, err := a.client.PostForm(a.srv.URL+path, values)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func (a *testApp) csrf(t *testing.T) string {
	t.Helper()
	u, _ := url.Parse(a.srv.URL)
	for _, c := range a.client.Jar.Cookies(u) {
		if c.Name == "_csrf" {
			return c.Value
		}
	}
	a.get(t, "/login")
	for _, c := range a.client.Jar.Cookies(u) {
		if c.Name == "_csrf" {
			return c.Value
		}
	}
	t.Fatalf("no csrf cookie issued")
	return ""
}

func (a *testApp) login(t *testing.T, email string) {
	t.Helper()
	resp, _ := a.post(t, "/login", url.Values{"email": {email}, "password": {"secret"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

func TestRouter_Health(t *testing.T) {
	app := newTestApp(t)
	resp, _ := app.get(t, "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = app.get(t, "/health/ready")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_GuardsBeforeContent(t *testing.T) {
	app := newTestApp(t)

	resp, body := app.get(t, "/dashboard")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	assert.Empty(t, body)

	resp, _ = app.get(t, "/collaborator")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	resp, body = app.get(t, "/api/v1/session")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, `{"error":"authentication required"}`, body)
}

func TestRouter_AdminFlow(t *testing.T) {
	app := newTestApp(t)
	app.login(t, "admin@example.com")

	resp, body := app.get(t, "/dashboard")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, ">Manage Users</a>")
	assert.Contains(t, body, ">Adoption Requests</a>")

	resp, _ = app.get(t, "/dashboard/pets")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	_, body = app.get(t, "/dashboard")
	assert.Contains(t, body, "Rex")
	assert.Contains(t, body, "/dashboard/pets/p1/edit")

	resp, body = app.get(t, "/api/v1/session")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var session struct {
		Role     string   `json:"role"`
		Sections []string `json:"sections"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &session))
	assert.Equal(t, "Admin", session.Role)
	assert.Len(t, session.Sections, 6)
}

func TestRouter_ContributorIsFenced(t *testing.T) {
	app := newTestApp(t)
	app.login(t, "contrib@example.com")

	_, body := app.get(t, "/dashboard")
	assert.Contains(t, body, ">Donate</a>")
	assert.NotContains(t, body, "Manage Users")

	resp, _ := app.get(t, "/dashboard/users")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = app.post(t, "/dashboard/users/u9/delete", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = app.get(t, "/dashboard/nowhere")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_NoRole(t *testing.T) {
	app := newTestApp(t)
	app.login(t, "nobody@example.com")

	_, body := app.get(t, "/dashboard")
	assert.Contains(t, body, "No Role Assigned")

	resp, _ := app.get(t, "/dashboard/pets")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouter_LoginFailureShowsServerMessage(t *testing.T) {
	app := newTestApp(t)

	resp, body := app.post(t, "/login", url.Values{"email": {"admin@example.com"}, "password": {"bad"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Invalid credentials")
}

func TestRouter_LogoutClearsSession(t *testing.T) {
	app := newTestApp(t)
	app.login(t, "admin@example.com")

	resp, _ := app.post(t, "/logout", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	resp, _ = app.get(t, "/dashboard")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestRouter_RejectsPostWithoutCSRFToken(t *testing.T) {
	app := newTestApp(t)
	app.get(t, "/login")

	resp, err := app.client.PostForm(app.srv.URL+"/login", url.Values{"email": {"admin@example.com"}, "password": {"secret"}})
	require.NoError(t, err)
	resp.Body.Close()
	assert.True(t, resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusForbidden,
		"unexpected status %d", resp.StatusCode)
	assert.False(t, strings.HasPrefix(resp.Header.Get("Location"), "/dashboard"))
}
