package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The catalogs are the single shared rule source for every classifier;
// these tests guard the table invariants that used to silently drift when
// the lists were duplicated per screen.

func TestUnitKeywordsNeverOverlapWithoutGuard(t *testing.T) {
	for i, a := range UnitRules {
		for j, b := range UnitRules {
			if i == j {
				continue
			}
			for _, ka := range a.Keywords {
				for _, kb := range b.Keywords {
					if ka == kb {
						t.Fatalf("keyword %q appears in both %s and %s", ka, a.ID, b.ID)
					}
					// ka matching inside kb means any text for unit b
					// also triggers unit a; only acceptable when a is
					// ordered later or carries an exclusion guard.
					if strings.Contains(kb, ka) && i < j {
						assert.Truef(t, excludeCovers(a, kb),
							"unit %s keyword %q is a substring of %s keyword %q without an exclusion guard",
							a.ID, ka, b.ID, kb)
					}
				}
			}
		}
	}
}

func excludeCovers(rule UnitRule, token string) bool {
	for _, ex := range rule.Exclude {
		if strings.Contains(token, ex) || strings.Contains(ex, token) {
			return true
		}
	}
	return false
}

func TestCompanyCodesUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, rule := range CompanyRules {
		require.False(t, seen[rule.Code], "duplicate company code %s", rule.Code)
		seen[rule.Code] = true
		require.NotEmpty(t, rule.Keywords, "company %s has no keywords", rule.Code)
	}
}

func TestCompanyCatalogClosedSet(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{"B11", "MULT", "MPI", "FORMA", "SUPERA LOG", "MJM", "PRIMUS", "PRAYLOG"},
		CompanyCatalog())
}

func TestUnitRulesHaveResponsible(t *testing.T) {
	for _, rule := range UnitRules {
		_, ok := UnitResponsible[rule.ID]
		assert.Truef(t, ok, "unit %s has no responsible assigned", rule.ID)
	}
}

func TestOfflineKeywordsUpperCase(t *testing.T) {
	// matching upper-cases the probe text only, so the table itself must
	// already be upper case
	for _, kw := range OfflineKeywords {
		assert.Equal(t, strings.ToUpper(kw), kw)
	}
}
