// Package suggest is the autocomplete layer: a weighted term index on top of
// the prefix tree, the reverse-weight ranking used to present it, and the
// Completer the server and CLI query.
package suggest

// ICompleter defines the interface for word completion engines
type ICompleter interface {
	// Complete returns ranked suggestions for a given prefix with a limit
	Complete(prefix string, limit int) []Suggestion

	// AddWord adds a word with its weight to the completer
	AddWord(word string, weight int64) error

	// CountWithPrefix returns the number of indexed words under prefix
	CountWithPrefix(prefix string) (int, error)

	// Stats returns statistics about the loaded dictionary
	Stats() map[string]int
}
