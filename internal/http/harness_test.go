package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"artspace/internal/api"
	"artspace/internal/domain"
	"artspace/internal/http/handlers"
	"artspace/internal/repos"
)

// backendHit is one request the fake backend received.
type backendHit struct {
	Method, Path, Query, Auth, Body string
}

type harness struct {
	app   *fiber.App
	store repos.Store

	mu     sync.Mutex
	hits   []backendHit
	routes map[string]http.HandlerFunc
}

func newHarness(t *testing.T, opt handlers.Options) *harness {
	t.Helper()
	return newHarnessWith(t, opt, repos.NewMemStore())
}

func newHarnessWith(t *testing.T, opt handlers.Options, store repos.Store) *harness {
	t.Helper()
	h := &harness{store: store, routes: map[string]http.HandlerFunc{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		path := strings.TrimPrefix(r.URL.Path, "/api")
		h.mu.Lock()
		h.hits = append(h.hits, backendHit{r.Method, path, r.URL.RawQuery, r.Header.Get("Authorization"), string(body)})
		fn := h.routes[r.Method+" "+path]
		h.mu.Unlock()
		if fn == nil {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not found"}`))
			return
		}
		r.Body = io.NopCloser(strings.NewReader(string(body)))
		fn(w, r)
	}))
	t.Cleanup(srv.Close)

	if opt.TemplatesDir == "" {
		opt.TemplatesDir = "../../web/templates"
	}
	client := api.New(srv.URL+"/api", 2*time.Second)
	deps := handlers.NewDeps(h.store, client, 1600, false)
	h.app = handlers.NewApp(deps, opt)
	return h
}

// on answers route ("METHOD /path", without /api) with v encoded as JSON.
func (h *harness) on(route string, status int, v any) {
	h.handle(route, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	})
}

func (h *harness) handle(route string, fn http.HandlerFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes[route] = fn
}

func (h *harness) backendCalls() []backendHit {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]backendHit(nil), h.hits...)
}

// signIn stores a session for sid the way a successful login would.
func (h *harness) signIn(t *testing.T, sid string, roles ...string) {
	t.Helper()
	payload, _ := json.Marshal(domain.Session{Token: "tok-" + sid, Username: "mai", Email: "mai@example.com", Roles: roles})
	if err := h.store.Set(context.Background(), sid, repos.SessionKey, string(payload)); err != nil {
		t.Fatal(err)
	}
}

func (h *harness) putCart(t *testing.T, sid string, items ...domain.Product) {
	t.Helper()
	if err := repos.NewCartRepo(h.store).Save(context.Background(), sid, items); err != nil {
		t.Fatal(err)
	}
}

func (h *harness) cart(t *testing.T, sid string) []domain.Product {
	t.Helper()
	items, err := repos.NewCartRepo(h.store).Load(context.Background(), sid)
	if err != nil {
		t.Fatal(err)
	}
	return items
}

// notices reads queued notices without consuming them.
func (h *harness) notices(t *testing.T, sid string) []string {
	t.Helper()
	raw, ok, err := h.store.Get(context.Background(), sid, repos.NoticeKey)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		return nil
	}
	var list []domain.Notice
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		t.Fatal(err)
	}
	var out []string
	for _, n := range list {
		out = append(out, n.Text)
	}
	return out
}

func (h *harness) get(t *testing.T, path, sid string) *http.Response {
	t.Helper()
	return h.send(t, httptest.NewRequest(http.MethodGet, path, nil), sid)
}

func (h *harness) post(t *testing.T, path string, form url.Values, sid string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return h.send(t, req, sid)
}

func (h *harness) send(t *testing.T, req *http.Request, sid string) *http.Response {
	t.Helper()
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := h.app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s: %v", req.Method, req.URL.Path, err)
	}
	return resp
}

func bodyOf(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func expectRedirect(t *testing.T, resp *http.Response, to string) {
	t.Helper()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect to %s, got %d", to, resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != to {
		t.Fatalf("expected Location %s, got %s", to, loc)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func cookieValue(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

var sunset = map[string]any{
	"id": "p1", "title": "Sunset over Lake", "artist": "Lan", "price": 2500000,
	"category": "Landscape", "imageUrl": "/uploads/p1.jpg", "status": "available",
}
