package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBank struct {
	mu    sync.Mutex
	token string
	hits  map[string]int
}

func (f *fakeBank) hit(path string) {
	f.mu.Lock()
	f.hits[path]++
	f.mu.Unlock()
}

func (f *fakeBank) authorized(w http.ResponseWriter, r *http.Request) bool {
	f.hit(r.URL.Path)
	if r.Header.Get("Authorization") != "Bearer "+f.token {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Could not validate user"}`))
		return false
	}
	return true
}

func newFakeBank(t *testing.T) (*fakeBank, *httptest.Server) {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "alice",
		"id":   7,
		"role": "user",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	f := &fakeBank{token: token, hits: map[string]int{}}
	r := chi.NewRouter()
	r.Post("/auth/token", func(w http.ResponseWriter, req *http.Request) {
		f.hit(req.URL.Path)
		_, _ = w.Write([]byte(`{"access_token":"` + f.token + `","token_type":"bearer"}`))
	})
	r.Get("/api/account/me", func(w http.ResponseWriter, req *http.Request) {
		if f.authorized(w, req) {
			_, _ = w.Write([]byte(`{"account_id":3,"balance":150}`))
		}
	})
	r.Get("/transactions/me", func(w http.ResponseWriter, req *http.Request) {
		if f.authorized(w, req) {
			_, _ = w.Write([]byte(`[{"id":1,"type":"deposit","amount":50,"created_at":"2025-01-01T00:00:00"}]`))
		}
	})
	r.Post("/api/account/deposit", func(w http.ResponseWriter, req *http.Request) {
		if f.authorized(w, req) {
			_, _ = w.Write([]byte(`{"account_id":3,"new_balance":200}`))
		}
	})
	r.Post("/api/account/withdraw", func(w http.ResponseWriter, req *http.Request) {
		if f.authorized(w, req) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"detail":"Insufficient funds"}`))
		}
	})
	r.Get("/admin/see_All_transactions", func(w http.ResponseWriter, req *http.Request) {
		if f.authorized(w, req) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"detail":"Admin access only"}`))
		}
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return f, srv
}

func setupEnv(t *testing.T, apiURL string) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("BANKCTL_CONFIG", "")
	t.Setenv("BANKCTL_API_URL", apiURL)
	t.Setenv("BANKCTL_TOKEN_BACKEND", "file")
	t.Setenv("BANKCTL_TOKEN_FILE", filepath.Join(t.TempDir(), "storage.json"))
	t.Setenv("BANKCTL_REGISTER_REDIRECT_DELAY", "0s")
	t.Setenv("BANKCTL_LOGIN_REDIRECT_DELAY", "0s")
	t.Setenv("BANKCTL_LOGOUT_REDIRECT_DELAY", "0s")
	t.Setenv("LOG_LEVEL", "error")
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--plain"))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestProtectedCommandWithoutLogin(t *testing.T) {
	bank, srv := newFakeBank(t)
	setupEnv(t, srv.URL)

	out, errOut, err := run(t, "account")
	require.ErrorIs(t, err, errActionFailed)
	assert.Contains(t, out, "-> next: bankctl login")
	assert.Contains(t, out, "Logged in:  No")
	assert.Empty(t, errOut)
	assert.Zero(t, bank.hits["/api/account/me"])
}

func TestSessionFlow(t *testing.T) {
	bank, srv := newFakeBank(t)
	setupEnv(t, srv.URL)

	out, _, err := run(t, "login", "-u", "alice", "-p", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "[success] Login successful! Redirecting...")
	assert.Contains(t, out, "-> next: bankctl account")

	out, _, err = run(t, "account")
	require.NoError(t, err)
	assert.Contains(t, out, "Account:    3")
	assert.Contains(t, out, "Balance:    150")

	out, _, err = run(t, "transactions")
	require.NoError(t, err)
	assert.Contains(t, out, "deposit")
	assert.Contains(t, out, "2025-01-01T00:00:00")

	out, _, err = run(t, "deposit", "50")
	require.NoError(t, err)
	assert.Contains(t, out, "[success] Deposit successful.")
	assert.Contains(t, out, "Balance:    150")
	assert.Equal(t, 1, bank.hits["/api/account/deposit"])

	_, errOut, err := run(t, "withdraw", "5000")
	require.ErrorIs(t, err, errActionFailed)
	assert.Contains(t, errOut, "[danger] Insufficient funds")

	_, errOut, err = run(t, "deposit", "lots")
	require.ErrorIs(t, err, errActionFailed)
	assert.Contains(t, errOut, "[danger] amount must be a number")
	assert.Equal(t, 1, bank.hits["/api/account/deposit"])

	_, errOut, err = run(t, "admin", "transactions")
	require.ErrorIs(t, err, errActionFailed)
	assert.Contains(t, errOut, "[danger] Admin access only")

	out, _, err = run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in:  Yes")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "user")

	out, _, err = run(t, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "[info] Logged out.")
	assert.Contains(t, out, "-> next: bankctl login")

	out, _, err = run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in:  No")
	assert.NotContains(t, out, "alice")
}

func TestEphemeralLoginDoesNotPersist(t *testing.T) {
	_, srv := newFakeBank(t)
	setupEnv(t, srv.URL)

	_, _, err := run(t, "login", "-u", "alice", "-p", "secret", "--ephemeral")
	require.NoError(t, err)

	_, _, err = run(t, "account")
	assert.ErrorIs(t, err, errActionFailed)
}

func TestArgumentValidation(t *testing.T) {
	_, srv := newFakeBank(t)
	setupEnv(t, srv.URL)

	_, _, err := run(t, "transfer", "2")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, errActionFailed)
}

func TestVersionShort(t *testing.T) {
	out, _, err := run(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}
