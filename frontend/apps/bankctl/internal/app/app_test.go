package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bankportal/frontend/apps/bankctl/internal/config"
	"bankportal/frontend/apps/bankctl/internal/session"
	"bankportal/frontend/apps/bankctl/internal/ui"
)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Post("/auth/token", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(`{"access_token":"tok-1","token_type":"bearer"}`))
	})
	r.Get("/api/account/me", func(w http.ResponseWriter, req *http.Request) {
		if req.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Could not validate user"}`))
			return
		}
		_, _ = w.Write([]byte(`{"account_id":9,"balance":42.5}`))
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(baseURL string) *config.Config {
	cfg := config.Default()
	cfg.API.BaseURL = baseURL
	cfg.Token.Backend = config.BackendMemory
	cfg.UI.LoginRedirectDelay = 0
	return cfg
}

func TestNew_LoginThenAccount(t *testing.T) {
	ctx := context.Background()
	srv := newBackend(t)
	var out, errOut bytes.Buffer

	a, err := New(ctx, testConfig(srv.URL), zap.NewNop(), Options{
		Out:      &out,
		ErrOut:   &errOut,
		Commands: map[string]string{"/account": "bankctl account"},
		Plain:    true,
	})
	require.NoError(t, err)
	defer a.Close()

	require.NoError(t, a.Binder.Submit(ctx, ui.LoginPage, ui.FormLogin, url.Values{"username": {"alice"}, "password": {"pw"}}))
	assert.Equal(t, []string{"/account"}, a.Display.Redirects())
	assert.True(t, a.Session.LoggedIn(ctx))

	assert.False(t, a.Binder.Ready(ctx, ui.AccountPage))
	a.Binder.Load(ctx, ui.AccountPage)
	require.NoError(t, a.Display.Flush())

	assert.Contains(t, out.String(), "-> next: bankctl account")
	assert.Contains(t, out.String(), "Account:    9")
	assert.Contains(t, out.String(), "Balance:    42.5")
	assert.Empty(t, errOut.String())
}

func TestNew_FileBackendPersistsAcrossApps(t *testing.T) {
	ctx := context.Background()
	srv := newBackend(t)
	cfg := testConfig(srv.URL)
	cfg.Token.Backend = config.BackendFile
	cfg.Token.File = filepath.Join(t.TempDir(), "storage.json")

	first, err := New(ctx, cfg, nil, Options{Out: &bytes.Buffer{}, ErrOut: &bytes.Buffer{}})
	require.NoError(t, err)
	_, err = first.Bank.Login(ctx, "alice", "pw")
	require.NoError(t, err)
	first.Close()

	second, err := New(ctx, cfg, nil, Options{Out: &bytes.Buffer{}, ErrOut: &bytes.Buffer{}})
	require.NoError(t, err)
	defer second.Close()

	view, err := second.Bank.Account(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(9), view.AccountID)
}

func TestNew_EphemeralOverridesBackend(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.Token.Backend = config.BackendRedis
	cfg.Redis.Addr = ""

	a, err := New(context.Background(), cfg, nil, Options{Ephemeral: true})
	require.NoError(t, err)
	a.Close()
}

func TestNew_UnknownBackend(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.Token.Backend = "floppy"

	_, err := New(context.Background(), cfg, nil, Options{})
	assert.ErrorIs(t, err, session.ErrUnknownBackend)
}

func TestNew_RedisUnavailable(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.Token.Backend = config.BackendRedis
	cfg.Redis.Addr = ""

	_, err := New(context.Background(), cfg, nil, Options{})
	assert.ErrorContains(t, err, "connect redis")
}
