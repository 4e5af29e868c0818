package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"linguacademy/internal/domain"
)

const DefaultAccessTTL = 24 * time.Hour

// DevSecret signs tokens when JWT_SECRET is unset outside production.
const DevSecret = "dev-only-secret"

var ErrInvalidToken = errors.New("invalid token")

// TokenManager signs and verifies HS256 access tokens. The catalog only consumes
// identities; issuing tokens exists for local tooling and tests.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultAccessTTL
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

type claims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

func (m *TokenManager) Generate(userID, name string) (string, error) {
	if userID == "" {
		return "", errors.New("empty user id")
	}
	now := m.now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	})
	return t.SignedString(m.secret)
}

func (m *TokenManager) Validate(tokenStr string) (domain.User, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenStr, &c, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return domain.User{}, errors.Join(ErrInvalidToken, err)
	}
	if !token.Valid || c.Subject == "" {
		return domain.User{}, ErrInvalidToken
	}
	return domain.User{ID: c.Subject, Name: c.Name}, nil
}
