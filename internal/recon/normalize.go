package recon

import (
	"regexp"
	"strings"
)

// MissingKey is the canonical key for site identifiers that normalize to
// nothing. It never joins against a reference row.
const MissingKey = ""

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonKeyChars   = regexp.MustCompile(`[^A-Za-z0-9_]`)
)

// NormalizeColumn canonicalizes a single column label: lower-cased,
// surrounding whitespace trimmed, internal whitespace runs collapsed to a
// single underscore.
func NormalizeColumn(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	return whitespaceRun.ReplaceAllString(s, "_")
}

// NormalizeColumns canonicalizes a header row.
func NormalizeColumns(labels []string) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = NormalizeColumn(l)
	}
	return out
}

// referenceAliases folds header variants seen in exported reference sheets
// (doubled underscores from "Site  ID" style labels) onto canonical names.
var referenceAliases = map[string]string{
	"site__id":                   "site_id",
	"bl__office":                 "bl_office",
	"generic__code":              "generic_code",
	"previous__refuelling__date": "previous_refuelling_date",
	"present__refuelling__date":  "present_refuelling_date",
}

// CanonicalReferenceColumn maps a normalized reference header to its
// canonical name. "site" is accepted as an alias for "site_id".
func CanonicalReferenceColumn(normalized string) string {
	if alias, ok := referenceAliases[normalized]; ok {
		return alias
	}
	return normalized
}

// NormalizeSiteKey canonicalizes a raw site identifier into the join key
// used across the alarm and reference tables: non-breaking and zero-width
// spaces stripped, hyphens mapped to underscores, every other character
// outside [A-Za-z0-9_] removed, upper-cased. Values that normalize to
// nothing return MissingKey.
func NormalizeSiteKey(raw string) string {
	s := strings.NewReplacer("\u00a0", "", "\u200b", "", "-", "_").Replace(raw)
	s = nonKeyChars.ReplaceAllString(s, "")
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return MissingKey
	}
	return s
}
