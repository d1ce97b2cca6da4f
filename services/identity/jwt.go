package identity

import (
	"context"
	"errors"
	"time"

	"decorhub/utils"

	"github.com/golang-jwt/jwt"
)

// Claims is the payload of a locally signed development token.
type Claims struct {
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwt.StandardClaims
}

// JWTVerifier accepts HS256 tokens signed with a shared secret. It stands in
// for the hosted identity provider in development and tests.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) (*JWTVerifier, error) {
	if secret == "" {
		return nil, errors.New("JWT_SECRET is required for the jwt auth provider")
	}
	return &JWTVerifier{secret: []byte(secret)}, nil
}

// IssueToken signs a token for email that expires after ttl.
func (v *JWTVerifier) IssueToken(email, name string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		Name:  name,
		StandardClaims: jwt.StandardClaims{
			Subject:   email,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

func (v *JWTVerifier) Verify(_ context.Context, token string) (*Identity, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, utils.Unauthorized("invalid or expired token")
	}
	if claims.Email == "" {
		return nil, utils.Unauthorized("token carries no email")
	}
	return &Identity{UID: claims.Subject, Email: claims.Email, Name: claims.Name, Picture: claims.Picture}, nil
}
