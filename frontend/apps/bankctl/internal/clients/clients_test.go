package clients

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bankportal/frontend/apps/bankctl/internal/models"
)

func readJSON(t *testing.T, req *http.Request) map[string]interface{} {
	t.Helper()
	body, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestAuthClient(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/auth/register", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, map[string]interface{}{
			"username":   "alice",
			"email":      "a@test.com",
			"first_name": "Alice",
			"last_name":  "User",
			"password":   "Pass123!",
		}, readJSON(t, req))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":1,"username":"alice","email":"a@test.com","account_id":5,"balance":0}`))
	})
	r.Post("/auth/token", func(w http.ResponseWriter, req *http.Request) {
		require.NoError(t, req.ParseForm())
		assert.Equal(t, "alice", req.PostForm.Get("username"))
		assert.Equal(t, "Pass123!", req.PostForm.Get("password"))
		_, _ = w.Write([]byte(`{"access_token":"abc","token_type":"bearer"}`))
	})
	srv := newTestServer(t, r)
	auth := NewAuthClient(NewBaseClient(srv.URL, srv.Client(), nil, nil))

	reg, err := auth.Register(context.Background(), models.RegisterRequest{
		Username: "alice", Email: "a@test.com", FirstName: "Alice", LastName: "User", Password: "Pass123!",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), reg.AccountID)

	login, err := auth.Token(context.Background(), "alice", "Pass123!")
	require.NoError(t, err)
	assert.Equal(t, "abc", login.AccessToken)
	assert.Equal(t, "bearer", login.TokenType)
}

func TestAuthClient_TokenOddBodies(t *testing.T) {
	for _, body := range []string{`OK`, `"OK"`, `[]`, `null`, `{"access_token":7}`} {
		r := chi.NewRouter()
		r.Post("/auth/token", func(w http.ResponseWriter, req *http.Request) {
			_, _ = w.Write([]byte(body))
		})
		srv := newTestServer(t, r)
		auth := NewAuthClient(NewBaseClient(srv.URL, srv.Client(), nil, nil))

		login, err := auth.Token(context.Background(), "alice", "pw")
		require.NoError(t, err, body)
		assert.Empty(t, login.AccessToken, body)
	}
}

func TestAuthClient_TokenRejected(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/auth/token", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Incorrect username or password"}`))
	})
	srv := newTestServer(t, r)
	auth := NewAuthClient(NewBaseClient(srv.URL, srv.Client(), nil, nil))

	_, err := auth.Token(context.Background(), "alice", "bad")
	require.Error(t, err)
	assert.Equal(t, "Incorrect username or password", err.Error())
}

func TestAccountClient(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/account/me", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "Bearer abc", req.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"account_id":3,"balance":150}`))
	})
	r.Post("/api/account/deposit", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, map[string]interface{}{"amount": float64(50)}, readJSON(t, req))
		_, _ = w.Write([]byte(`{"account_id":3,"new_balance":200}`))
	})
	r.Post("/api/account/withdraw", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"Insufficient funds"}`))
	})
	srv := newTestServer(t, r)
	account := NewAccountClient(NewBaseClient(srv.URL, srv.Client(), staticTokens{token: "abc"}, nil))
	ctx := context.Background()

	view, err := account.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), view.AccountID)
	assert.True(t, view.Balance.Equal(decimal.NewFromInt(150)))

	change, err := account.Deposit(ctx, models.MoneyFromInt(50))
	require.NoError(t, err)
	assert.Equal(t, "200", change.NewBalance.String())

	_, err = account.Withdraw(ctx, models.MoneyFromInt(1000))
	require.Error(t, err)
	assert.Equal(t, "Insufficient funds", err.Error())
}

func TestTransactionsClient(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/transactions/me", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id":2,"type":"withdraw","amount":5,"created_at":"2025-01-02T00:00:00"},{"id":1,"type":"deposit","amount":10,"created_at":"2025-01-01T00:00:00"}]`))
	})
	r.Get("/admin/see_All_transactions", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	r.Post("/transfer", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, map[string]interface{}{"to_account_id": float64(2), "amount": float64(25)}, readJSON(t, req))
		_, _ = w.Write([]byte(`{"message":"Transfer successful"}`))
	})
	srv := newTestServer(t, r)
	txs := NewTransactionsClient(NewBaseClient(srv.URL, srv.Client(), staticTokens{token: "abc"}, nil))
	ctx := context.Background()

	mine, err := txs.Mine(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "withdraw", mine[0].Type)

	all, err := txs.All(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	res, err := txs.Transfer(ctx, 2, models.MoneyFromInt(25))
	require.NoError(t, err)
	assert.Equal(t, "Transfer successful", res.Message)
}

func TestTransactionsClient_RejectsNonList(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/transactions/me", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":1}`))
	})
	srv := newTestServer(t, r)
	txs := NewTransactionsClient(NewBaseClient(srv.URL, srv.Client(), staticTokens{token: "abc"}, nil))

	_, err := txs.Mine(context.Background())
	assert.ErrorIs(t, err, ErrUnexpectedResponse)
}
