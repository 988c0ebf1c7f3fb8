package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyCompany(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		want   string
	}{
		{name: "exact group label", fields: []string{"MULT"}, want: "MULT"},
		{name: "lower case label", fields: []string{"Supera Log - turno A"}, want: "SUPERA LOG"},
		{name: "supera before mult despite mult-ish text", fields: []string{"SUPERA LOG MULTIMODAL"}, want: "SUPERA LOG"},
		{name: "b11 with dash", fields: []string{"B-11 OPERAÇÕES"}, want: "B11"},
		{name: "praylog spaced", fields: []string{"PRAY LOG LTDA"}, want: "PRAYLOG"},
		{name: "second field carries the brand", fields: []string{"João Silva", "FORMA"}, want: "FORMA"},
		{name: "no catalog brand", fields: []string{"VISITANTE AVULSO"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyCompany(tt.fields...))
		})
	}
}

func TestClassifyCompanyOrDefault(t *testing.T) {
	assert.Equal(t, "MJM", ClassifyCompanyOrDefault("equipe mjm"))
	assert.Equal(t, CompanyUnidentified, ClassifyCompanyOrDefault("VISITANTE AVULSO"))
}

func TestClassifyUnit(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		want   string
	}{
		{name: "access point code", fields: []string{"G202LF"}, want: "GALPÃO G2"},
		{name: "spelled out", fields: []string{"PORTARIA GALPÃO 3"}, want: "GALPÃO G3"},
		{name: "extrema site", fields: []string{"DOCA 4 EXTREMA"}, want: "CD EXTREMA"},
		{name: "matriz gate", fields: []string{"CATRACA MATRIZ"}, want: "PORTARIA MATRIZ"},
		{name: "g10 never lands on g1", fields: []string{"G10 DOCA SUL"}, want: "GALPÃO G10"},
		{name: "no catalog site", fields: []string{"ESTACIONAMENTO VISITANTES"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyUnit(tt.fields...))
		})
	}
}

// A text containing both a unit's keyword and its exclude term must never
// classify into that unit; it falls through to the next eligible rule.
func TestClassifyUnitExclusionPrecedence(t *testing.T) {
	for _, rule := range UnitRules {
		if len(rule.Exclude) == 0 || len(rule.Keywords) == 0 {
			continue
		}
		text := rule.Keywords[0] + " " + rule.Exclude[0]
		got := ClassifyUnit(text)
		assert.NotEqual(t, rule.ID, got,
			"text %q contains exclude term %q and must not classify as %s", text, rule.Exclude[0], rule.ID)
	}
}

func TestIsOfflineText(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{raw: "Offline", want: true},
		{raw: "SEM SINAL", want: true},
		{raw: "falha de comunicação", want: true},
		{raw: "desligada", want: true},
		{raw: "ligado", want: false},
		{raw: "", want: false},
		{raw: "OK", want: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsOfflineText(tt.raw), "raw=%q", tt.raw)
	}
}

func TestIsOfflineToken(t *testing.T) {
	// exact variant: bare tokens match, free text does not
	assert.True(t, IsOfflineToken("0"))
	assert.True(t, IsOfflineToken("off"))
	assert.False(t, IsOfflineToken("câmera 10 sem imagem"))
}

func TestResponsibleFor(t *testing.T) {
	assert.Equal(t, "Fernanda Rocha", ResponsibleFor("GALPÃO G2", "da planilha"))
	assert.Equal(t, "da planilha", ResponsibleFor("SITE DESCONHECIDO", "da planilha"))
	assert.Equal(t, "N/A", ResponsibleFor("SITE DESCONHECIDO", ""))
}
