package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"health-insights/internal/domain/identities"
)

type IdentitiesRepo struct {
	db *sql.DB
}

func NewIdentitiesRepo(db *sql.DB) *IdentitiesRepo {
	return &IdentitiesRepo{db: db}
}

func (r *IdentitiesRepo) GetByID(ctx context.Context, id string) (identities.Identity, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return identities.Identity{}, identities.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, role
		FROM users
		WHERE id = $1
	`, id)

	var ident identities.Identity
	if err := row.Scan(&ident.ID, &ident.Name, &ident.Role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return identities.Identity{}, identities.ErrNotFound
		}
		return identities.Identity{}, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT date_time, is_booked
		FROM user_slots
		WHERE user_id = $1
		ORDER BY date_time ASC
	`, id)
	if err != nil {
		return identities.Identity{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var s identities.Slot
		var booked sql.NullBool
		if err := rows.Scan(&s.DateTime, &booked); err != nil {
			return identities.Identity{}, err
		}
		// sin dato => se trata como reservado
		s.IsBooked = !booked.Valid || booked.Bool
		ident.AvailableSlots = append(ident.AvailableSlots, s)
	}
	return ident, rows.Err()
}
