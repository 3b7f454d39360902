package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL is the fixed lifetime of an issued session token.
const SessionTTL = 30 * 24 * time.Hour

// SessionClaims is the identity a session token carries. The fields are
// trusted as-is until expiry: role or verification changes made after issue
// take effect only at the next login.
type SessionClaims struct {
	UserID          string `json:"user_id"`
	Name            string `json:"name"`
	IsAdmin         bool   `json:"is_admin"`
	IsEmailVerified bool   `json:"is_email_verified"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    SessionTTL,
	}
}

func (m *Manager) IssueToken(userID, name string, isAdmin, isEmailVerified bool) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID:          userID,
		Name:            name,
		IsAdmin:         isAdmin,
		IsEmailVerified: isEmailVerified,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *Manager) ParseToken(tokenStr string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}
