package services_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"artspace/internal/api"
)

// hit is one request seen by the fake backend.
type hit struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   string
}

type backend struct {
	mu     sync.Mutex
	hits   []hit
	routes map[string]func(w http.ResponseWriter, r *http.Request)
}

// newBackend starts a fake API; routes are keyed "METHOD /path" without the
// /api prefix. Unknown routes answer 404 with a backend-style message.
func newBackend(t *testing.T) (*backend, *api.Client) {
	t.Helper()
	b := &backend{routes: map[string]func(http.ResponseWriter, *http.Request){}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))
		b.mu.Lock()
		b.hits = append(b.hits, hit{r.Method, r.URL.Path, r.URL.RawQuery, r.Header.Get("Authorization"), string(body)})
		h := b.routes[r.Method+" "+r.URL.Path[len("/api"):]]
		b.mu.Unlock()
		if h == nil {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not found"}`))
			return
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return b, api.New(srv.URL+"/api", 2*time.Second)
}

func (b *backend) on(route string, status int, v any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[route] = func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
}

func (b *backend) calls() []hit {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]hit(nil), b.hits...)
}
