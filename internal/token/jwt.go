package token

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dtroode/micropost-server/internal/model"
	"github.com/golang-jwt/jwt/v5"
)

// Claims represents JWT claims carrying the account identity.
type Claims struct {
	jwt.RegisteredClaims
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
	expiresIn time.Duration
}

const (
	issuer          = "api.example.com"
	audience        = "api.example.com"
	minSecretLength = 32
)

// ErrShortSecret is returned when the signing secret is too weak to use.
var ErrShortSecret = errors.New("jwt secret must be at least 32 characters long")

// NewJWT creates a new JWT token manager with the provided secret key
// and access token lifetime.
func NewJWT(secretKey string, expiresIn time.Duration) (model.TokenManager, error) {
	if len(secretKey) < minSecretLength {
		return nil, ErrShortSecret
	}
	return &JWT{secretKey: secretKey, expiresIn: expiresIn}, nil
}

// GenerateAccessToken mints a bearer token from an account record.
// The subject is the account id; email and roles travel as claims so
// the adapter can authorize without a second lookup.
func (j *JWT) GenerateAccessToken(account model.Account) (model.AccessToken, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(account.ID),
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.expiresIn)),
		},
		Email: account.Email,
		Roles: account.Roles,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return model.AccessToken{}, fmt.Errorf("failed to sign access token: %w", err)
	}

	return model.AccessToken{
		AccessToken: tokenString,
		TokenType:   "Bearer",
		ExpiresIn:   int(j.expiresIn.Seconds()),
	}, nil
}

// ParseAccessToken validates a bearer token and extracts its claims.
// A "Bearer " prefix is tolerated and stripped.
func (j *JWT) ParseAccessToken(tokenString string) (model.TokenClaims, error) {
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	}, jwt.WithIssuer(issuer), jwt.WithAudience(audience))
	if err != nil {
		return model.TokenClaims{}, fmt.Errorf("failed to parse access token: %w", err)
	}
	if !token.Valid {
		return model.TokenClaims{}, fmt.Errorf("access token is invalid")
	}

	accountID, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return model.TokenClaims{}, fmt.Errorf("invalid subject claim: %w", err)
	}

	return model.TokenClaims{
		AccountID: accountID,
		Email:     claims.Email,
		Roles:     claims.Roles,
	}, nil
}
