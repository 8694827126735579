package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"

	"artspace/internal/domain"
	"artspace/internal/http/handlers"
	applog "artspace/internal/log"
	"artspace/internal/repos"
)

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	User   string         `json:"user"`
	Fields map[string]any `json:"fields"`
}

type lockedWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.buf.Write(p)
}

// captureLogs routes the structured log to a buffer while fn runs.
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	w := &lockedWriter{}
	applog.SetOutput(w)
	defer applog.SetOutput(os.Stdout)

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(w.buf.String()), "\n") {
		var e logEntry
		if json.Unmarshal([]byte(line), &e) == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findAction(entries []logEntry, action string) *logEntry {
	for i := range entries {
		if entries[i].Action == action {
			return &entries[i]
		}
	}
	return nil
}

func TestAuthLogging(t *testing.T) {
	h := newHarness(t, handlers.Options{LoginMax: 100})
	h.on("POST /auth/signin", 401, map[string]string{"message": "Bad credentials"})

	fail := captureLogs(t, func() {
		_ = h.post(t, "/login", url.Values{"username": {"mai"}, "password": {"bad"}}, "s1")
	})
	e := findAction(fail, "auth.login.fail")
	if e == nil {
		t.Fatal("auth.login.fail log not found")
	}
	if e.Level != "warn" || e.Fields["username"] != "mai" {
		t.Fatalf("bad fail entry: %+v", e)
	}
	if _, leaked := e.Fields["password"]; leaked {
		t.Fatal("password must never be logged")
	}

	h.on("POST /auth/signin", 200, map[string]any{"token": "tok", "username": "mai"})
	ok := captureLogs(t, func() {
		_ = h.post(t, "/login", url.Values{"username": {"mai"}, "password": {"secret1"}}, "s1")
	})
	if e := findAction(ok, "auth.login.success"); e == nil || e.Level != "audit" {
		t.Fatalf("auth.login.success log not found: %+v", ok)
	}
}

func TestAdminActionsAreAudited(t *testing.T) {
	h := newHarness(t, handlers.Options{})
	h.signIn(t, "admin", domain.RoleAdmin)
	h.signIn(t, "user", "ROLE_USER")
	h.on("DELETE /products/p1", 200, map[string]string{})

	entries := captureLogs(t, func() {
		_ = h.post(t, "/admin/products/p1/delete", nil, "admin")
		_ = h.get(t, "/admin", "user")
	})
	del := findAction(entries, "admin.product.delete")
	if del == nil || del.User != "mai" || del.Fields["product"] != "p1" {
		t.Fatalf("delete audit missing or incomplete: %+v", del)
	}
	if findAction(entries, "access.denied.admin") == nil {
		t.Fatal("denied admin access not logged")
	}
}

func TestCorruptCartIsLogged(t *testing.T) {
	h := newHarness(t, handlers.Options{})
	if err := h.store.Set(t.Context(), "s1", "cart", "{oops"); err != nil {
		t.Fatal(err)
	}
	entries := captureLogs(t, func() {
		resp := h.get(t, "/cart", "s1")
		if !strings.Contains(bodyOf(t, resp), "Your cart is empty.") {
			t.Error("corrupt cart should read as empty")
		}
	})
	if findAction(entries, "cart.decode.fail") == nil {
		t.Fatal("corrupt cart not logged")
	}
}

func TestLoginWithoutTokenIsAFailure(t *testing.T) {
	h := newHarness(t, handlers.Options{})
	h.on("POST /auth/signin", 200, map[string]any{"username": "mai", "roles": []string{"ROLE_USER"}})

	var status int
	var body string
	entries := captureLogs(t, func() {
		resp := h.post(t, "/login", url.Values{"username": {"mai"}, "password": {"secret1"}}, "s1")
		status = resp.StatusCode
		body = bodyOf(t, resp)
	})
	if status != 401 {
		t.Fatalf("expected the login page again, got %d", status)
	}
	if !strings.Contains(body, "no session token") {
		t.Fatal("missing token error not shown")
	}
	if findAction(entries, "auth.login.success") != nil {
		t.Fatal("tokenless sign-in audited as success")
	}
	if findAction(entries, "auth.login.fail") == nil {
		t.Fatal("tokenless sign-in not logged as a failure")
	}
	if _, ok, _ := h.store.Get(context.Background(), "s1", repos.SessionKey); ok {
		t.Fatal("session persisted without a token")
	}
}
