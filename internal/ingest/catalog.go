package ingest

// Single source of truth for the classification catalogs. The rule tables
// are data, not code: operators extend the catalogs here without touching
// the matching logic in classify.go. catalog_test.go guards keyword
// collisions between units.

// CompanyUnidentified is the fallback code used only by the lenient OCR
// import path; the spreadsheet path drops unclassifiable rows instead.
const CompanyUnidentified = "NÃO IDENTIFICADO"

// CompanyRule maps any of its keywords (substring, upper-cased search text)
// to a company code. First matching rule wins.
type CompanyRule struct {
	Keywords []string
	Code     string
}

// CompanyRules is ordered: specific brand tokens come before short generic
// ones ("SUPERA LOG" before "MULT" guards against substring false positives
// when vendor exports concatenate group labels).
var CompanyRules = []CompanyRule{
	{Keywords: []string{"SUPERA LOG", "SUPERALOG", "SUPERA"}, Code: "SUPERA LOG"},
	{Keywords: []string{"PRAYLOG", "PRAY LOG"}, Code: "PRAYLOG"},
	{Keywords: []string{"PRIMUS"}, Code: "PRIMUS"},
	{Keywords: []string{"FORMA"}, Code: "FORMA"},
	{Keywords: []string{"MJM"}, Code: "MJM"},
	{Keywords: []string{"MPI"}, Code: "MPI"},
	{Keywords: []string{"B11", "B-11"}, Code: "B11"},
	{Keywords: []string{"MULT"}, Code: "MULT"},
}

// UnitRule matches when any keyword is a substring of the search text and
// no exclude term is present. An exclude hit disqualifies this unit only;
// classification falls through to the next rule.
type UnitRule struct {
	ID       string
	Keywords []string
	Exclude  []string
}

// UnitRules is ordered most-specific first. G10 must precede G1, and G1
// still carries the exclusion guard so concatenated texts containing both
// tokens never land on the wrong warehouse.
var UnitRules = []UnitRule{
	{ID: "GALPÃO G10", Keywords: []string{"G10", "GALPAO 10", "GALPÃO 10"}},
	{ID: "GALPÃO G1", Keywords: []string{"G1", "GALPAO 1", "GALPÃO 1"}, Exclude: []string{"G10", "GALPAO 10", "GALPÃO 10"}},
	{ID: "GALPÃO G2", Keywords: []string{"G2", "GALPAO 2", "GALPÃO 2"}},
	{ID: "GALPÃO G3", Keywords: []string{"G3", "GALPAO 3", "GALPÃO 3"}},
	{ID: "GALPÃO G4", Keywords: []string{"G4", "GALPAO 4", "GALPÃO 4"}},
	{ID: "CD EXTREMA", Keywords: []string{"EXTREMA", "CDEX"}},
	{ID: "PORTARIA MATRIZ", Keywords: []string{"MATRIZ", "PORTARIA PRINCIPAL"}},
}

// OfflineKeywords flag a device as down from free-text status fields.
// Bilingual on purpose: exports mix English firmware strings with
// Portuguese operator notes. "DESLIGAD" covers desligado/desligada.
var OfflineKeywords = []string{
	"OFFLINE",
	"OFF-LINE",
	"OFF",
	"SEM SINAL",
	"FALHA",
	"INATIVO",
	"DESLIGAD",
	"NAO",
	"NÃO",
	"FALSE",
	"0",
}

// UnitResponsible overrides the source-provided responsible once a unit has
// been classified. Unclassified devices keep whatever the export said.
var UnitResponsible = map[string]string{
	"GALPÃO G1":       "Carlos Mendes",
	"GALPÃO G2":       "Fernanda Rocha",
	"GALPÃO G3":       "Paulo Henrique",
	"GALPÃO G4":       "Juliana Prado",
	"GALPÃO G10":      "Roberto Lima",
	"CD EXTREMA":      "Mariana Duarte",
	"PORTARIA MATRIZ": "Sérgio Tavares",
}

// CompanyCatalog returns the closed set of company codes, in rule order.
func CompanyCatalog() []string {
	out := make([]string, 0, len(CompanyRules))
	for _, r := range CompanyRules {
		out = append(out, r.Code)
	}
	return out
}

// UnitCatalog returns the closed set of unit ids, in rule order.
func UnitCatalog() []string {
	out := make([]string, 0, len(UnitRules))
	for _, r := range UnitRules {
		out = append(out, r.ID)
	}
	return out
}
