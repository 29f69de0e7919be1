// Package intern owns the canonical copy of every distinct word in the index.
//
// Index maps key their entries by the canonical copy, so all views of a word
// share one backing array regardless of how many documents contain it.
// The interner is not safe for concurrent mutation; callers serialize writes
// the same way they serialize index mutation.
package intern

// Table holds the canonical copies of interned words.
type Table struct {
	words map[string]string
}

// New creates an empty intern table.
func New() *Table {
	return &Table{words: make(map[string]string)}
}

// Intern returns the canonical copy of word, storing it on first use.
// Repeated calls with equal words return the same string value.
func (t *Table) Intern(word string) string {
	if canon, ok := t.words[word]; ok {
		return canon
	}
	// Clone so the canonical copy does not pin the caller's larger buffer.
	canon := string(append([]byte(nil), word...))
	t.words[canon] = canon
	return canon
}

// Release drops the canonical copy of word. Callers release a word only when
// no index entry refers to it anymore.
func (t *Table) Release(word string) {
	delete(t.words, word)
}

// Contains reports whether word is currently interned.
func (t *Table) Contains(word string) bool {
	_, ok := t.words[word]
	return ok
}

// Len returns the number of interned words.
func (t *Table) Len() int {
	return len(t.words)
}
