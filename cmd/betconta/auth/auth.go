package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// The user and admin consoles carry independent sessions. Tokens are scoped
// by audience so a user cookie can never be replayed against admin routes.
const (
	AudienceUser  = "betconta:user"
	AudienceAdmin = "betconta:admin"
)

var ErrInvalidToken = errors.New("invalid session token")

func GenerateToken(secret []byte, subject, audience string, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Audience:  jwt.ClaimStrings{audience},
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken verifies signature, expiry and audience and returns the subject.
func ParseToken(secret []byte, tokenString, audience string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	}, jwt.WithAudience(audience))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
