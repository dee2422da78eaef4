package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ddiazp/maintenance-orders-api/config"
	"github.com/ddiazp/maintenance-orders-api/models"
	"github.com/ddiazp/maintenance-orders-api/store"
)

// Credential is the one abstraction both token variants implement. All
// authorization goes through Authorize on the decoded Identity regardless
// of which variant carried it.
type Credential interface {
	// Issue encodes an identity into a bearer token.
	Issue(identity models.Identity) (string, error)

	// Decode recovers the identity from a bearer token.
	Decode(token string) (models.Identity, error)
}

// UnsignedCredential is the reversible variant: base64-encoded JSON
// {username, role}. The identity is merely encoded, not authenticated by
// the token itself; treat it as a session convenience, not a security
// boundary.
type UnsignedCredential struct{}

// Issue encodes the identity as base64 JSON.
func (UnsignedCredential) Issue(identity models.Identity) (string, error) {
	payload, err := json.Marshal(identity)
	if err != nil {
		return "", fmt.Errorf("failed to encode credential: %w", err)
	}
	return base64.StdEncoding.EncodeToString(payload), nil
}

// Decode reverses Issue.
func (UnsignedCredential) Decode(token string) (models.Identity, error) {
	payload, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return models.Identity{}, ErrInvalidCredentials
	}
	var identity models.Identity
	if err := json.Unmarshal(payload, &identity); err != nil {
		return models.Identity{}, ErrInvalidCredentials
	}
	if identity.Username == "" {
		return models.Identity{}, ErrInvalidCredentials
	}
	return identity, nil
}

// SignedCredential is the tamper-resistant variant: an HS256 JWT carrying
// username and role, expiring after TTL.
type SignedCredential struct {
	Secret []byte
	TTL    time.Duration
}

type credentialClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Issue signs a time-bounded token for the identity.
func (s SignedCredential) Issue(identity models.Identity) (string, error) {
	now := time.Now()
	claims := credentialClaims{
		Username: identity.Username,
		Role:     identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.Secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign credential: %w", err)
	}
	return signed, nil
}

// Decode verifies signature and expiry, then recovers the identity.
func (s SignedCredential) Decode(token string) (models.Identity, error) {
	var claims credentialClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.Secret, nil
	})
	if err != nil || !parsed.Valid {
		return models.Identity{}, ErrInvalidCredentials
	}
	if claims.Username == "" {
		return models.Identity{}, ErrInvalidCredentials
	}
	return models.Identity{Username: claims.Username, Role: claims.Role}, nil
}

// AuthService validates credentials against the users range and issues
// bearer tokens in the configured variant. Both variants are always
// accepted on ingress.
type AuthService struct {
	store    store.RowStore
	issuer   Credential
	unsigned UnsignedCredential
	signed   SignedCredential
}

var authServiceInstance *AuthService

// InitAuthService initializes the auth service against the given row store
// and configuration.
func InitAuthService(st store.RowStore, cfg *config.Config) *AuthService {
	signed := SignedCredential{Secret: []byte(cfg.JWTSecret), TTL: cfg.TokenTTL}

	var issuer Credential = signed
	if cfg.TokenMode == config.TokenModeUnsigned {
		issuer = UnsignedCredential{}
	}

	authServiceInstance = &AuthService{
		store:  st,
		issuer: issuer,
		signed: signed,
	}
	return authServiceInstance
}

// GetAuthService returns the initialized auth service instance
func GetAuthService() *AuthService {
	return authServiceInstance
}

// SetAuthService sets the auth service instance (primarily for testing)
func SetAuthService(s *AuthService) {
	authServiceInstance = s
}

// Authenticate looks up the user row by case-insensitive username and
// compares the secret verbatim. Missing user and wrong secret are
// indistinguishable to the caller.
func (s *AuthService) Authenticate(ctx context.Context, username, secret string) (models.Identity, error) {
	rows, err := s.store.FetchAll(ctx, models.UserSchema.RangeID)
	if err != nil {
		return models.Identity{}, err
	}

	for _, row := range rows {
		user := models.UserFromCells(row.Cells)
		if user.Username == "" {
			// soft-deleted (blanked) row
			continue
		}
		if !strings.EqualFold(user.Username, username) {
			continue
		}
		if user.Secret != secret {
			return models.Identity{}, ErrInvalidCredentials
		}
		return models.Identity{Username: user.Username, Role: user.Role}, nil
	}
	return models.Identity{}, ErrInvalidCredentials
}

// IssueCredential encodes the identity with the configured variant.
func (s *AuthService) IssueCredential(identity models.Identity) (string, error) {
	return s.issuer.Issue(identity)
}

// DecodeUnsigned decodes an x-user-token header value.
func (s *AuthService) DecodeUnsigned(token string) (models.Identity, error) {
	return s.unsigned.Decode(token)
}

// DecodeSigned decodes an Authorization bearer token.
func (s *AuthService) DecodeSigned(token string) (models.Identity, error) {
	return s.signed.Decode(token)
}

// Authorize reports whether the identity's role matches requiredRole under
// case-insensitive comparison. There is no role hierarchy: superadmin does
// not satisfy an admin-required check unless admin callers enumerate it.
func Authorize(identity models.Identity, requiredRole string) bool {
	return strings.EqualFold(identity.Role, requiredRole)
}

// VisibilityFilter returns the row-visibility predicate for an identity:
// superadmin and admin see every order, a technician sees only orders whose
// technician field matches their username, anything else sees nothing.
func VisibilityFilter(identity models.Identity) func(models.Order) bool {
	switch strings.ToLower(identity.Role) {
	case models.RoleSuperadmin, models.RoleAdmin:
		return func(models.Order) bool { return true }
	case models.RoleTechnician:
		username := identity.Username
		return func(o models.Order) bool {
			return strings.EqualFold(o.Technician, username)
		}
	default:
		return func(models.Order) bool { return false }
	}
}
