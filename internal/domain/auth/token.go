package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/clinicdesk/clinicdesk/internal/platform/fault"
)

// Claims carried by a session token.
type Claims struct {
	Clinic string `json:"clinic"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}

func signToken(secret []byte, clinicID string, role Role, ttl time.Duration, now time.Time) (string, int64, error) {
	expires := now.Add(ttl)
	claims := Claims{
		Clinic: clinicID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", 0, err
	}
	return token, expires.UnixMilli(), nil
}

// ParseToken validates a session token and returns its claims.
func ParseToken(secret []byte, raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fault.New(fault.KindInvalidCredentials, "unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fault.New(fault.KindInvalidCredentials, "invalid or expired session")
	}
	return claims, nil
}
