package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"itufk/config"

	"github.com/golang-jwt/jwt"
)

const devSecret = "itufk-dev-secret"

// SessionClaims are carried by member session tokens. The subject is the member ID.
type SessionClaims struct {
	Email string `json:"email,omitempty"`
	jwt.StandardClaims
}

func signingKey() []byte {
	if config.AppConfig.JWTSecret == "" {
		return []byte(devSecret)
	}
	return []byte(config.AppConfig.JWTSecret)
}

// GenerateToken signs a session token for a member that expires after ttl.
func GenerateToken(memberID, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Email: email,
		StandardClaims: jwt.StandardClaims{
			Subject:   memberID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
			Issuer:    "itufk",
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey())
	if err != nil {
		return "", fmt.Errorf("GenerateToken: %w", err)
	}
	return signed, nil
}

// HashToken is the SHA-256 hex digest stored in the session cache instead of the token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ParseToken verifies the signature and expiry of a session token.
func ParseToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return signingKey(), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// ExtractIDFromToken returns the member ID of a valid session token.
func ExtractIDFromToken(tokenString string) (string, error) {
	claims, err := ParseToken(tokenString)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}

// ExpiredTokenSubject returns the member ID of a correctly signed token whose
// only defect is that it has expired.
func ExpiredTokenSubject(tokenString string) (string, bool) {
	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return signingKey(), nil
	})
	var ve *jwt.ValidationError
	if !errors.As(err, &ve) || ve.Errors != jwt.ValidationErrorExpired || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}
