package identities

import (
	"context"
	"errors"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(ctx context.Context, id string) (Identity, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Identity{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// NameOf resuelve un id a nombre visible.
// Si no existe devuelve fallback (UnknownName si viene vacío); otros errores se propagan.
func (s *Service) NameOf(ctx context.Context, id, fallback string) (string, error) {
	if fallback == "" {
		fallback = UnknownName
	}
	ident, err := s.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fallback, nil
		}
		return "", err
	}
	if name := strings.TrimSpace(ident.Name); name != "" {
		return name, nil
	}
	return fallback, nil
}

// FreeSlots devuelve los turnos no reservados, en el orden guardado.
func FreeSlots(ident Identity) []Slot {
	out := make([]Slot, 0, len(ident.AvailableSlots))
	for _, s := range ident.AvailableSlots {
		if !s.IsBooked {
			out = append(out, s)
		}
	}
	return out
}
