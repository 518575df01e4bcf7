// Package auth turns bearer tokens into principals. It owns token issuance,
// verification, and the revocation list; everything downstream works with
// the principal it produces.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"go.storegate.dev/internal/platform/principal"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidIssuer = errors.New("invalid issuer")
)

// Claims represents the claims carried in a StoreGate token
type Claims struct {
	jwt.RegisteredClaims
	Name        string         `json:"name,omitempty"`
	Email       string         `json:"email,omitempty"`
	Role        principal.Role `json:"role"`
	StoreID     string         `json:"storeId,omitempty"`
	Permissions []string       `json:"permissions,omitempty"`
}

// TokenService issues and verifies signed tokens
type TokenService struct {
	secret []byte
	issuer string
	expiry time.Duration
}

// TokenServiceConfig holds configuration for the token service
type TokenServiceConfig struct {
	Secret string
	Issuer string
	Expiry time.Duration
}

// NewTokenService creates a new token service
func NewTokenService(cfg TokenServiceConfig) *TokenService {
	return &TokenService{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		expiry: cfg.Expiry,
	}
}

// Issue creates a signed token for a principal. The token id (jti) keys the
// revocation list.
func (s *TokenService) Issue(p *principal.Principal) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
		Name:        p.Name,
		Email:       p.Email,
		Role:        p.Role,
		StoreID:     p.StoreID,
		Permissions: p.Permissions,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ResolvedToken is the outcome of verifying a bearer token: the principal it
// describes plus the token identity needed for revocation handling.
type ResolvedToken struct {
	Principal *principal.Principal
	TokenID   string
	ExpiresAt time.Time
}

// Resolve verifies a token and builds the principal it describes.
//
// An expired token still resolves: the returned principal carries
// TokenState EXPIRED so the authorization engine can report expiry instead
// of a misleading role error. Any other defect returns ErrInvalidToken and
// no principal.
func (s *TokenService) Resolve(raw string) (*ResolvedToken, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) && token != nil {
			if claims, ok := token.Claims.(*Claims); ok {
				p := claims.principal()
				p.TokenState = principal.TokenExpired
				return claims.resolved(p), nil
			}
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims.resolved(claims.principal()), nil
}

func (s *TokenService) keyFunc(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ErrInvalidToken
	}
	return s.secret, nil
}

func (c *Claims) resolved(p *principal.Principal) *ResolvedToken {
	rt := &ResolvedToken{Principal: p, TokenID: c.ID}
	if c.ExpiresAt != nil {
		rt.ExpiresAt = c.ExpiresAt.Time
	}
	return rt
}

// principal maps verified claims onto the caller model.
func (c *Claims) principal() *principal.Principal {
	return &principal.Principal{
		ID:          c.Subject,
		Name:        c.Name,
		Email:       c.Email,
		Role:        c.Role,
		StoreID:     c.StoreID,
		Permissions: c.Permissions,
		Active:      true,
		TokenState:  principal.TokenValid,
	}
}
