package model

// TokenClaims is the verified identity carried by an access token.
type TokenClaims struct {
	AccountID int
	Email     string
	Roles     []string
}

// TokenManager generates and validates bearer access tokens.
type TokenManager interface {
	GenerateAccessToken(account Account) (AccessToken, error)
	ParseAccessToken(token string) (TokenClaims, error)
}

// AccessToken is a minted bearer credential.
type AccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}
