// SPDX-License-Identifier: GPL-3.0-only

package crypto

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ResetTokenTTL is how long a password-reset token stays verifiable.
const ResetTokenTTL = 30 * time.Minute

var (
	ErrTokenExpired = errors.New("reset token has expired")
	ErrTokenInvalid = errors.New("reset token is invalid")
)

// IssueResetToken signs a compact token binding the user id and issuance time.
// Nothing is persisted; the token carries everything verification needs.
func IssueResetToken(userID uint, secret string) (string, error) {
	return issueResetTokenAt(userID, secret, time.Now())
}

func issueResetTokenAt(userID uint, secret string, issuedAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ResetTokenTTL)),
	})
	return token.SignedString([]byte(secret))
}

// VerifyResetToken returns the user id embedded in the token. Expiry and
// signature are the only checks; a token may verify more than once within
// its window.
func VerifyResetToken(tokenString, secret string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrTokenInvalid
	}
	if !token.Valid {
		return 0, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrTokenInvalid
	}
	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return 0, ErrTokenInvalid
	}
	userID, err := strconv.ParseUint(subject, 10, 64)
	if err != nil || userID == 0 {
		return 0, ErrTokenInvalid
	}
	return uint(userID), nil
}
