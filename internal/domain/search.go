package domain

import "strings"

// FindByItem returns entries whose item name contains text, ignoring case,
// in their original order. Blank text matches every entry.
func FindByItem(entries []WasteEntry, text string) []WasteEntry {
	needle := strings.ToLower(strings.TrimSpace(text))

	var matches []WasteEntry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.ItemName), needle) {
			matches = append(matches, e)
		}
	}
	return matches
}
