package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDocumentStatus(t *testing.T) {
	now := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		expiration string
		want       DocumentStatus
	}{
		{name: "expired yesterday", expiration: "2024-03-04", want: DocumentExpired},
		{name: "expires today still valid", expiration: "2024-03-05", want: DocumentWarning},
		{name: "inside warning window", expiration: "2024-03-20", want: DocumentWarning},
		{name: "warning boundary", expiration: "2024-04-03", want: DocumentWarning},
		{name: "outside warning window", expiration: "2024-04-06", want: DocumentValid},
		{name: "far future", expiration: "2025-01-01", want: DocumentValid},
		{name: "unparseable reads as expired", expiration: "31/12/2024", want: DocumentExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Document{ID: "1", Name: "AVCB", Organ: "Bombeiros", ExpirationDate: tt.expiration}
			assert.Equal(t, tt.want, d.Status(now))
		})
	}
}

func TestDocumentToJSONCarriesDerivedStatus(t *testing.T) {
	now := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	d := Document{ID: "1", Name: "Alvará", Organ: "Prefeitura", ExpirationDate: "2023-01-01"}
	assert.Equal(t, "EXPIRED", d.ToJSON(now)["status"])
}
