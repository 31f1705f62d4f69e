package service

import (
	"ctchen222/Chord-Dictionary/internal/api/models"
	"ctchen222/Chord-Dictionary/internal/apperr"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultAccessTokenTTL = 72 * time.Hour

// AccessClaims are the claims of a bearer access token.
type AccessClaims struct {
	Username string `json:"un"`
	Email    string `json:"em"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (c *AccessClaims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// AccessTokenService issues and validates HS256 bearer tokens for API clients.
type AccessTokenService interface {
	Issue(user *models.User) (string, time.Time, error)
	Parse(token string) (*AccessClaims, error)
}

type accessTokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewAccessTokenService creates a new AccessTokenService.
func NewAccessTokenService(secret string, ttl time.Duration) AccessTokenService {
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}
	return &accessTokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for user and returns it with its expiry.
func (s *accessTokenService) Issue(user *models.User) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AccessClaims{
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, apperr.Internal("Failed to issue token", err)
	}
	return tokenString, expiresAt, nil
}

// Parse validates signature, algorithm and expiry. Any failure is ErrNotAuthenticated.
func (s *accessTokenService) Parse(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, &apperr.Error{Kind: apperr.KindAuthentication, Message: apperr.ErrNotAuthenticated.Message, Err: err}
	}
	if _, err := claims.UserID(); err != nil {
		return nil, &apperr.Error{Kind: apperr.KindAuthentication, Message: apperr.ErrNotAuthenticated.Message, Err: fmt.Errorf("bad subject: %w", err)}
	}
	return claims, nil
}
