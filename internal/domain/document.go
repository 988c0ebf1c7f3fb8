package domain

import "time"

// DocumentStatus is derived at read time, never stored.
type DocumentStatus string

const (
	DocumentValid   DocumentStatus = "VALID"
	DocumentWarning DocumentStatus = "WARNING"
	DocumentExpired DocumentStatus = "EXPIRED"
)

// documentWarningWindow is how long before expiration a document starts
// showing as WARNING.
const documentWarningWindow = 30 * 24 * time.Hour

// Document is a compliance artifact (license, certificate) tracked per organ.
type Document struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Organ          string `json:"organ"`
	ExpirationDate string `json:"expiration_date"` // YYYY-MM-DD
}

// Status computes the document state relative to now. An unparseable
// expiration date reads as EXPIRED so it surfaces for review.
func (d *Document) Status(now time.Time) DocumentStatus {
	exp, err := time.ParseInLocation("2006-01-02", d.ExpirationDate, time.UTC)
	if err != nil {
		return DocumentExpired
	}
	// expiration counts through the end of the named day
	exp = exp.Add(24*time.Hour - time.Second)
	if exp.Before(now) {
		return DocumentExpired
	}
	if exp.Sub(now) <= documentWarningWindow {
		return DocumentWarning
	}
	return DocumentValid
}

// ToJSON includes the derived status.
func (d *Document) ToJSON(now time.Time) map[string]any {
	return map[string]any{
		"id":              d.ID,
		"name":            d.Name,
		"organ":           d.Organ,
		"expiration_date": d.ExpirationDate,
		"status":          string(d.Status(now)),
	}
}
