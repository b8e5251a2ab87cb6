package seeders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ссылки в демо-данных идут по именам: опечатка тихо выкинет строку при сидировании.
func TestDemoDataReferencesResolve(t *testing.T) {
	teams := map[string]bool{}
	for _, team := range teamsData {
		require.True(t, team.Specialization.IsValid(), team.Name)
		teams[team.Name] = true
	}

	technicians := map[string]bool{}
	for _, tc := range techniciansData {
		assert.True(t, teams[tc.TeamName], tc.Name)
		technicians[tc.Name] = true
	}

	serials := map[string]bool{}
	for _, e := range equipmentsData {
		assert.True(t, teams[e.TeamName], e.SerialNumber)
		assert.True(t, technicians[e.TechnicianName], e.SerialNumber)
		assert.True(t, e.Department.IsValid(), e.SerialNumber)
		assert.NotPanics(t, func() { mustDate(e.PurchaseDate) })
		serials[e.SerialNumber] = true
	}

	for _, r := range requestsData {
		assert.True(t, serials[r.SerialNumber], r.Subject)
		assert.True(t, r.Stage.IsValid(), r.Subject)
		if r.TechnicianName != "" {
			assert.True(t, technicians[r.TechnicianName], r.Subject)
		}
		if r.CompletedDate != "" {
			assert.False(t, mustDate(r.CompletedDate).Before(mustDate(r.ScheduledDate)), r.Subject)
		}
	}
}

func TestMustDatePanicsOnGarbage(t *testing.T) {
	assert.Panics(t, func() { mustDate("28.12.2024") })
}
