package identities

import (
	"context"
	"errors"
)

// ErrNotFound lo devuelven los adapters cuando el id no existe.
var ErrNotFound = errors.New("identity not found")

type Repository interface {
	GetByID(ctx context.Context, id string) (Identity, error)
}
