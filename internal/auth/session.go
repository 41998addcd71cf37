package auth

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"github.com/garnizeh/incollege/pkg/models"
)

// Session is the explicit logged-in context handed to every service call. The
// zero value and nil are both "guest".
type Session struct {
	user  *models.Account
	token string
}

// User returns the logged-in account, or nil for a guest session.
func (s *Session) User() *models.Account {
	if s == nil {
		return nil
	}
	return s.user
}

// Token returns the signed session token.
func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	return s.token
}

func (s *Session) clear() {
	s.user = nil
	s.token = ""
}

type claims struct {
	AccountID int64 `json:"account_id"`
	jwt.RegisteredClaims
}

func (s *Service) issue(a *models.Account) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		AccountID: a.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(a.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenDuration)),
		},
	})
	tokenStr, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return tokenStr, nil
}
