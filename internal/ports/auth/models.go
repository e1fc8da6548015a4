package auth

import (
	"errors"
	"time"
)

// Roles que emite el issuer externo y que exigen las rutas.
const (
	RoleStaff  = "staff"
	RoleDoctor = "doctor"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")
	ErrAccessDenied = errors.New("access denied")
)

// Claims representa la información extraída del token.
// Solo vive durante el request.
type Claims struct {
	SubjectID string
	Role      string
	ExpiresAt time.Time
}
