package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facilops-data/internal/domain"
)

func presence(name, company, unit, date, clock string) domain.WorkerPresenceRecord {
	return domain.WorkerPresenceRecord{
		Name:    name,
		Company: company,
		Unit:    unit,
		Date:    date,
		Time:    clock,
	}
}

func TestHeadcountDedupStable(t *testing.T) {
	records := []domain.WorkerPresenceRecord{
		presence("João Silva", "MULT", "GALPÃO G2", "2024-03-05", "08:15"),
		presence("joão silva ", "MULT", "GALPÃO G2", "2024-03-05", "12:40"),
	}

	result := Headcount(records, "", "")
	require.Len(t, result, 1)
	assert.Equal(t, 1, result[0].Total, "duplicate rows count once")
	require.Len(t, result[0].Workers, 1)

	// first occurrence is the retained representative, with the raw scan count
	assert.Equal(t, "08:15", result[0].Workers[0].Record.Time)
	assert.Equal(t, 2, result[0].Workers[0].EventCount)
}

func TestHeadcountByCompanySumsToTotal(t *testing.T) {
	records := []domain.WorkerPresenceRecord{
		presence("João Silva", "MULT", "GALPÃO G2", "2024-03-05", "08:15"),
		presence("Ana Prado", "MULT", "GALPÃO G2", "2024-03-05", "08:20"),
		presence("Carlos Lima", "B11", "GALPÃO G2", "2024-03-05", "08:25"),
		presence("Beatriz Nunes", "FORMA", "GALPÃO G1", "2024-03-05", "09:00"),
		presence("João Silva", "MULT", "GALPÃO G2", "2024-03-06", "08:10"),
	}

	for _, filter := range []struct{ date, unit string }{
		{"", ""},
		{"2024-03-05", ""},
		{"", "GALPÃO G2"},
		{"2024-03-05", "GALPÃO G1"},
	} {
		for _, u := range Headcount(records, filter.date, filter.unit) {
			sum := 0
			for _, n := range u.ByCompany {
				sum += n
			}
			assert.Equalf(t, u.Total, sum,
				"sum(byCompany) must equal total for unit %s under filter %+v", u.Unit, filter)
		}
	}
}

func TestHeadcountSamePersonTwoDaysCountsTwice(t *testing.T) {
	records := []domain.WorkerPresenceRecord{
		presence("João Silva", "MULT", "GALPÃO G2", "2024-03-05", "08:15"),
		presence("João Silva", "MULT", "GALPÃO G2", "2024-03-06", "08:15"),
	}
	result := Headcount(records, "", "")
	require.Len(t, result, 1)
	assert.Equal(t, 2, result[0].Total)
}

func TestHeadcountFilters(t *testing.T) {
	records := []domain.WorkerPresenceRecord{
		presence("João Silva", "MULT", "GALPÃO G2", "2024-03-05", "08:15"),
		presence("Ana Prado", "B11", "GALPÃO G1", "2024-03-05", "08:20"),
		presence("Carlos Lima", "MPI", "GALPÃO G2", "2024-03-06", "08:25"),
	}

	byDate := Headcount(records, "2024-03-05", "")
	require.Len(t, byDate, 2)

	byUnit := Headcount(records, "", "GALPÃO G2")
	require.Len(t, byUnit, 1)
	assert.Equal(t, "GALPÃO G2", byUnit[0].Unit)
	assert.Equal(t, 2, byUnit[0].Total)

	both := Headcount(records, "2024-03-06", "GALPÃO G1")
	assert.Empty(t, both)
}

func TestHeadcountSortedByDescendingTotal(t *testing.T) {
	records := []domain.WorkerPresenceRecord{
		presence("A", "MULT", "GALPÃO G1", "2024-03-05", "08:00"),
		presence("B", "MULT", "GALPÃO G2", "2024-03-05", "08:00"),
		presence("C", "B11", "GALPÃO G2", "2024-03-05", "08:00"),
	}
	result := Headcount(records, "", "")
	require.Len(t, result, 2)
	assert.Equal(t, "GALPÃO G2", result[0].Unit)
	assert.Equal(t, "GALPÃO G1", result[1].Unit)
}

func TestHeadcountIdempotent(t *testing.T) {
	records := []domain.WorkerPresenceRecord{
		presence("João Silva", "MULT", "GALPÃO G2", "2024-03-05", "08:15"),
		presence("João Silva", "MULT", "GALPÃO G2", "2024-03-05", "10:15"),
	}
	first := Headcount(records, "2024-03-05", "")
	second := Headcount(records, "2024-03-05", "")
	assert.Equal(t, first, second)
}
