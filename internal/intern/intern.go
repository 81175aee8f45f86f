// Package intern provides a session-scoped string deduplication cache.
//
// GTF files repeat the same short strings millions of times (seqnames,
// feature types, gene IDs). Routing them through an Interner keeps one
// canonical copy per distinct string for the lifetime of a parse,
// without growing a process-wide table across calls.
package intern

// Interner maps strings to a canonical copy.
// It is not safe for concurrent use; scope one per parse session
// (or per chunk when chunks are parsed in parallel).
type Interner struct {
	strings map[string]string
}

// New creates an empty Interner.
func New() *Interner {
	return &Interner{
		strings: make(map[string]string),
	}
}

// Intern returns the canonical copy of s, registering it on first use.
func (in *Interner) Intern(s string) string {
	if canonical, ok := in.strings[s]; ok {
		return canonical
	}
	// Copy so the canonical string does not pin a larger backing
	// array (s is usually a slice of a full input line).
	canonical := string(append([]byte(nil), s...))
	in.strings[canonical] = canonical
	return canonical
}

// Len returns the number of distinct strings seen.
func (in *Interner) Len() int {
	return len(in.strings)
}
