package evaluator

import "regexp"

// Identifier extraction runs progressively looser patterns over
// generator output: a structured "ID: n" label first, then standalone
// 6-digit runs (the catalog's id shape), then any digit run. Each
// stage is only consulted when the previous one found nothing.
var (
	idLabelPattern  = regexp.MustCompile(`(?i)\bID[:\s#]+(\d+)`)
	sixDigitPattern = regexp.MustCompile(`\b\d{6}\b`)
	anyDigitPattern = regexp.MustCompile(`\d+`)
)

// ExtractIDs pulls candidate story identifiers out of free-form text.
// It returns them in order of appearance, duplicates included; a text
// with no digits at all yields an empty slice.
func ExtractIDs(text string) []string {
	if matches := idLabelPattern.FindAllStringSubmatch(text, -1); len(matches) > 0 {
		ids := make([]string, len(matches))
		for i, m := range matches {
			ids[i] = m[1]
		}
		return ids
	}

	if matches := sixDigitPattern.FindAllString(text, -1); len(matches) > 0 {
		return matches
	}

	return anyDigitPattern.FindAllString(text, -1)
}

// dedupe removes duplicates, preserving first occurrence.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
