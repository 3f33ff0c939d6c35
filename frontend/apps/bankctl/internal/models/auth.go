package models

// RegisterRequest is the POST /auth/register payload.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

// RegisterResult mirrors the backend's registration response.
type RegisterResult struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	AccountID int64  `json:"account_id"`
	Balance   Money  `json:"balance"`
}

// LoginResult mirrors POST /auth/token.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
