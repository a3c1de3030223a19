// Package session records the authenticated identity between requests. The
// identity travels in a single signed cookie under a fixed name; that cookie
// is the only state that survives a restart. Anything unreadable in it is
// treated as "no identity", never as a failure the user sees.
package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Gongwasubash/restro/internal/domain"
)

// CookieName is the fixed storage key for the persisted identity.
const CookieName = "subash_royal_user"

var ErrInvalidToken = errors.New("invalid session token")

// Claims carries the identity fields inside the signed token.
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Store signs identities into the cookie on login and reads them back on
// every request. It performs no remote calls; authentication itself is the
// gateway's job and this store only records the result.
type Store struct {
	secret []byte
	ttl    time.Duration
}

func NewStore(secret string, ttl time.Duration) *Store {
	return &Store{secret: []byte(secret), ttl: ttl}
}

func (s *Store) issue(u domain.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.ttl)

	claims := Claims{
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (s *Store) parse(tokenString string) (domain.User, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return domain.User{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return domain.User{}, ErrInvalidToken
	}

	return domain.User{
		ID:    claims.Subject,
		Name:  claims.Name,
		Email: claims.Email,
		Role:  domain.Role(claims.Role),
	}, nil
}

// Current returns the identity carried by the request. A missing cookie, a
// malformed token, a bad signature or an expired one all degrade silently
// to an absent identity.
func (s *Store) Current(r *http.Request) (domain.User, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return domain.User{}, false
	}
	u, err := s.parse(cookie.Value)
	if err != nil || u.ID == "" {
		return domain.User{}, false
	}
	return u, true
}

// Login replaces whatever identity was stored before with u.
func (s *Store) Login(w http.ResponseWriter, r *http.Request, u domain.User) error {
	signed, expiresAt, err := s.issue(u)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}

// Logout removes the persisted identity.
func (s *Store) Logout(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
