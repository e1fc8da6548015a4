package memory

import (
	"context"
	"strings"
	"sync"

	"health-insights/internal/domain/identities"

	"github.com/google/uuid"
)

type identityRepo struct {
	mu   sync.RWMutex
	byID map[string]identities.Identity
}

// IdentityRepo es el store en memoria (dev/tests). Put existe solo para sembrar datos.
type IdentityRepo interface {
	identities.Repository
	Put(ident identities.Identity) identities.Identity
}

func NewIdentityRepo() IdentityRepo {
	return &identityRepo{
		byID: make(map[string]identities.Identity),
	}
}

// Put guarda o reemplaza; sin ID se genera uno.
func (r *identityRepo) Put(ident identities.Identity) identities.Identity {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(ident.ID) == "" {
		ident.ID = uuid.NewString()
	}
	r.byID[ident.ID] = ident
	return ident
}

func (r *identityRepo) GetByID(ctx context.Context, id string) (identities.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ident, ok := r.byID[id]
	if !ok {
		return identities.Identity{}, identities.ErrNotFound
	}
	// copia de slots para que el caller no mute el store
	ident.AvailableSlots = append([]identities.Slot(nil), ident.AvailableSlots...)
	return ident, nil
}
