package identities

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	byID map[string]Identity
	err  error
}

func (r *testRepo) GetByID(_ context.Context, id string) (Identity, error) {
	if r.err != nil {
		return Identity{}, r.err
	}
	i, ok := r.byID[id]
	if !ok {
		return Identity{}, ErrNotFound
	}
	return i, nil
}

func TestService_NameOf(t *testing.T) {
	svc := NewService(&testRepo{byID: map[string]Identity{
		"d1": {ID: "d1", Name: "Dr. Rao"},
		"d2": {ID: "d2", Name: "   "},
	}})

	name, err := svc.NameOf(context.Background(), "d1", "")
	require.NoError(t, err)
	assert.Equal(t, "Dr. Rao", name)

	name, err = svc.NameOf(context.Background(), "missing", "")
	require.NoError(t, err)
	assert.Equal(t, UnknownName, name)

	name, err = svc.NameOf(context.Background(), "d2", "Unknown Doctor")
	require.NoError(t, err)
	assert.Equal(t, "Unknown Doctor", name)

	name, err = svc.NameOf(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, UnknownName, name)
}

func TestService_NameOf_PropagatesStoreErrors(t *testing.T) {
	boom := errors.New("store down")
	svc := NewService(&testRepo{err: boom})

	_, err := svc.NameOf(context.Background(), "d1", "")
	assert.ErrorIs(t, err, boom)
}

func TestFreeSlots(t *testing.T) {
	t1 := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t2.Add(time.Hour)

	free := FreeSlots(Identity{AvailableSlots: []Slot{
		{DateTime: t1},
		{DateTime: t2, IsBooked: true},
		{DateTime: t3},
	}})
	require.Len(t, free, 2)
	assert.Equal(t, t1, free[0].DateTime)
	assert.Equal(t, t3, free[1].DateTime)
}
