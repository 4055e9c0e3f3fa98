package formtoken

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid form token")
	ErrExpiredToken = errors.New("form token has expired")
	ErrWrongForm    = errors.New("form token issued for another form")
)

// Attribution is the marketing snapshot captured when the form was opened.
// Empty strings mean the parameter was absent.
type Attribution struct {
	Source        string `json:"src,omitempty"`
	Medium        string `json:"med,omitempty"`
	Campaign      string `json:"cmp,omitempty"`
	ReferringPage string `json:"ref,omitempty"`
}

// Claims binds one form instance to its attribution snapshot
type Claims struct {
	Form        string      `json:"form"`
	InstanceID  string      `json:"iid"`
	Attribution Attribution `json:"attr"`
	jwt.RegisteredClaims
}

// Manager signs and checks form tokens
type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewManager creates a new Manager
func NewManager(secret, issuer string, ttlHours int) *Manager {
	return &Manager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    time.Duration(ttlHours) * time.Hour,
		now:    time.Now,
	}
}

// Issue creates a signed token for a freshly initialised form
func (m *Manager) Issue(form, instanceID string, attr Attribution) (string, error) {
	now := m.now()

	claims := Claims{
		Form:        form,
		InstanceID:  instanceID,
		Attribution: attr,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    m.issuer,
			Subject:   instanceID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign form token: %w", err)
	}

	return signed, nil
}

// Parse validates a token and checks it was issued for form
func (m *Manager) Parse(tokenString, form string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithIssuer(m.issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.InstanceID == "" {
		return nil, ErrInvalidToken
	}
	if claims.Form != form {
		return nil, ErrWrongForm
	}

	return claims, nil
}

// TTL returns the token lifetime
func (m *Manager) TTL() time.Duration {
	return m.ttl
}
