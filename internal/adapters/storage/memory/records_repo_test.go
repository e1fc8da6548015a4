package memory

import (
	"context"
	"testing"
	"time"

	"health-insights/internal/domain/identities"
	"health-insights/internal/domain/records"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordsRepo_SortedAndFiltered(t *testing.T) {
	repo := NewRecordsRepo()
	t0 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	repo.AddHealthRecord(records.HealthRecord{SubjectID: "s1", DoctorID: "d1", RecordedAt: t0.Add(48 * time.Hour), Diagnosis: "b"})
	repo.AddHealthRecord(records.HealthRecord{SubjectID: "s1", DoctorID: "d2", RecordedAt: t0, Diagnosis: "a"})
	repo.AddHealthRecord(records.HealthRecord{SubjectID: "s2", DoctorID: "d1", RecordedAt: t0, Diagnosis: "c"})

	got, err := repo.HealthRecordsBySubject(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Diagnosis)
	assert.Equal(t, "b", got[1].Diagnosis)
	assert.NotEmpty(t, got[0].ID)

	byDoctor, err := repo.HealthRecordsByDoctor(context.Background(), "d1")
	require.NoError(t, err)
	assert.Len(t, byDoctor, 2)

	none, err := repo.VaccinationsBySubject(context.Background(), "s1")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestIdentityRepo_GetByID(t *testing.T) {
	repo := NewIdentityRepo()
	doc := repo.Put(identities.Identity{Name: "Dr. Mehta", Role: "doctor", AvailableSlots: []identities.Slot{{IsBooked: false}}})
	require.NotEmpty(t, doc.ID)

	got, err := repo.GetByID(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dr. Mehta", got.Name)

	got.AvailableSlots[0].IsBooked = true
	again, _ := repo.GetByID(context.Background(), doc.ID)
	assert.False(t, again.AvailableSlots[0].IsBooked)

	_, err = repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, identities.ErrNotFound)
}
