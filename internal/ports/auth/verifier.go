package auth

import "context"

// TokenVerifier verifica un token y devuelve claims o error.
// Los errores deben envolver ErrTokenExpired o ErrInvalidToken.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
