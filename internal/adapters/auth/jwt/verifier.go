package jwt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"health-insights/internal/ports/auth"

	gojwt "github.com/golang-jwt/jwt/v5"
)

var (
	ErrSecretRequired = errors.New("jwt secret is required")
)

// tokenClaims replica el payload que firma el issuer (servicio de usuarios):
// {"id": "...", "role": "...", "exp": ...}.
type tokenClaims struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
	gojwt.RegisteredClaims
}

// Verifier implementa auth.TokenVerifier con HS256 y secreto compartido.
type Verifier struct {
	secret []byte
	now    func() time.Time
}

func NewVerifier(secret string) (*Verifier, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, ErrSecretRequired
	}
	return &Verifier{
		secret: []byte(secret),
		now:    time.Now,
	}, nil
}

func (v *Verifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, auth.ErrUnauthorized
	}

	var tc tokenClaims
	_, err := gojwt.ParseWithClaims(token, &tc, func(*gojwt.Token) (any, error) {
		return v.secret, nil
	},
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithExpirationRequired(),
		gojwt.WithTimeFunc(v.now),
	)
	if err != nil {
		if errors.Is(err, gojwt.ErrTokenExpired) {
			return auth.Claims{}, auth.ErrTokenExpired
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}

	// Tokens viejos usan "sub" en vez de "id".
	subject := strings.TrimSpace(tc.UserID)
	if subject == "" {
		subject = strings.TrimSpace(tc.Subject)
	}
	if subject == "" {
		return auth.Claims{}, fmt.Errorf("%w: missing subject id", auth.ErrInvalidToken)
	}

	claims := auth.Claims{
		SubjectID: subject,
		Role:      strings.TrimSpace(tc.Role),
	}
	if tc.ExpiresAt != nil {
		claims.ExpiresAt = tc.ExpiresAt.Time
	}
	return claims, nil
}

// Sign emite un token con el mismo formato que el issuer.
// Lo usan los tests y herramientas de desarrollo; el servicio nunca emite tokens.
func Sign(secret, subjectID, role string, expiresAt time.Time) (string, error) {
	if strings.TrimSpace(secret) == "" {
		return "", ErrSecretRequired
	}
	tc := tokenClaims{
		UserID: subjectID,
		Role:   role,
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(expiresAt),
			IssuedAt:  gojwt.NewNumericDate(time.Now()),
		},
	}
	return gojwt.NewWithClaims(gojwt.SigningMethodHS256, tc).SignedString([]byte(secret))
}
