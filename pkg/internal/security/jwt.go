package security

import (
	"fmt"
	"strconv"
	"time"

	"github.com/chroniclehq/chronicle/pkg/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// TokenLifespan is the fixed validity window of issued tokens.
const TokenLifespan = 30 * 24 * time.Hour

const tokenIssuer = "chronicle"

// IssueToken signs a bearer credential for the given account.
func IssueToken(account models.Account, secret string) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   strconv.Itoa(int(account.ID)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenLifespan)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// VerifyToken checks the signature and expiry of a bearer credential and
// resolves the account id it was issued for.
func VerifyToken(token string, secret string) (uint, error) {
	var claims jwt.RegisteredClaims
	out, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, err
	} else if !out.Valid {
		return 0, fmt.Errorf("invalid token")
	}

	id, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return 0, fmt.Errorf("malformed token subject: %v", err)
	}

	return uint(id), nil
}
