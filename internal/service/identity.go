package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// IdentityClaims are the claims carried by a device identity token. The
// token stands in for authentication: it names a per-browser identity and
// nothing else, and it never expires.
type IdentityClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// Identity is one issued device identity.
type Identity struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

// IdentityService issues and validates per-device identity tokens. A
// client calls Issue once, stores the token, and presents it on every
// request thereafter.
type IdentityService struct {
	secret string
}

// NewIdentityService creates a new IdentityService instance.
func NewIdentityService(secret string) *IdentityService {
	return &IdentityService{secret: secret}
}

// Issue creates a fresh device identity and its signed token.
func (s *IdentityService) Issue() (*Identity, error) {
	userID := "device_" + uuid.New().String()
	claims := IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID},
		UserID:           userID,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return nil, err
	}
	return &Identity{UserID: userID, Token: token}, nil
}

// ValidateToken parses a token back into the device's user ID.
func (s *IdentityService) ValidateToken(token string) (string, error) {
	var claims IdentityClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.secret), nil
	})
	if err != nil || !parsed.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
