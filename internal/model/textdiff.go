package model

import "github.com/sergi/go-diff/diffmatchpatch"

// TextDiff computes a character-level diff between two strings and
// returns the concatenated inserted and removed substrings.
// "Hello" -> "Hello World" yields inserted " World" and no removal.
func TextDiff(old, new string) (inserted, removed string) {
	dmp := diffmatchpatch.New()
	for _, d := range dmp.DiffMain(old, new, false) {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			inserted += d.Text
		case diffmatchpatch.DiffDelete:
			removed += d.Text
		}
	}
	return inserted, removed
}
