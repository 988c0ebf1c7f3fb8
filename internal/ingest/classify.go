package ingest

import "strings"

// searchText builds the upper-cased haystack the classifiers match against.
func searchText(fields ...string) string {
	return strings.ToUpper(strings.Join(fields, " "))
}

// ClassifyCompany resolves a company code from free text. First matching
// rule wins; unmatched text returns "" and the caller decides whether the
// row is dropped (spreadsheet import) or kept with the fallback sentinel
// (OCR import, via ClassifyCompanyOrDefault).
func ClassifyCompany(fields ...string) string {
	text := searchText(fields...)
	for _, rule := range CompanyRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				return rule.Code
			}
		}
	}
	return ""
}

// ClassifyCompanyOrDefault is the lenient variant: unmatched text yields
// the CompanyUnidentified sentinel instead of rejecting the row.
func ClassifyCompanyOrDefault(fields ...string) string {
	if code := ClassifyCompany(fields...); code != "" {
		return code
	}
	return CompanyUnidentified
}

// ClassifyUnit resolves a facility unit from free text. A unit is a
// candidate when any of its keywords is a substring of the search text;
// an exclude hit disqualifies that unit and falls through to the next one.
// No eligible unit returns "".
func ClassifyUnit(fields ...string) string {
	text := searchText(fields...)
	for _, rule := range UnitRules {
		if unitMatches(rule, text) {
			return rule.ID
		}
	}
	return ""
}

func unitMatches(rule UnitRule, text string) bool {
	for _, ex := range rule.Exclude {
		if strings.Contains(text, ex) {
			return false
		}
	}
	for _, kw := range rule.Keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// IsOfflineText reports whether a raw status field contains any offline
// keyword (substring match, used for imported status columns).
func IsOfflineText(raw string) bool {
	text := strings.ToUpper(strings.TrimSpace(raw))
	if text == "" {
		return false
	}
	for _, kw := range OfflineKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// IsOfflineToken is the exact-match variant, used where the status field is
// a single token ("0", "OFF") and substring matching would over-trigger.
func IsOfflineToken(raw string) bool {
	text := strings.ToUpper(strings.TrimSpace(raw))
	for _, kw := range OfflineKeywords {
		if text == kw {
			return true
		}
	}
	return false
}

// ResponsibleFor returns the catalog responsible for a classified unit, or
// the source-provided fallback when the unit is unknown.
func ResponsibleFor(unit, fallback string) string {
	if r, ok := UnitResponsible[unit]; ok {
		return r
	}
	if fallback != "" {
		return fallback
	}
	return "N/A"
}
