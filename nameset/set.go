package nameset

import (
	"errors"

	"github.com/gosimple/slug"
)

var (
	// ErrUnknownName is returned when renaming a name that is not in the set.
	ErrUnknownName = errors.New("unknown name")
	// ErrDuplicateName is returned when renaming onto a name that already exists.
	ErrDuplicateName = errors.New("duplicate name")
	// ErrInvalidName is returned when an input normalizes to the empty string.
	ErrInvalidName = errors.New("invalid name")
)

// Normalizer converts raw input into its canonical stored form. It must be
// deterministic, and its output alphabet must never contain ':' so that
// normalized names can be joined into composite keys.
type Normalizer func(raw string) string

// Normalize is the default Normalizer: lowercase, ASCII-transliterated,
// hyphen-separated slug form ("View Posts!" becomes "view-posts").
func Normalize(raw string) string {
	return slug.Make(raw)
}

// Set is an ordered collection of unique normalized names. Every operation
// normalizes its input first; insertion order is preserved and removal
// compacts positions, which is why positions must never be used as durable
// identifiers.
//
// Set is not safe for concurrent use. The owning aggregate serializes
// access under its own lock.
type Set struct {
	norm  Normalizer
	names []string
	index map[string]int
}

// New creates an empty [Set]. A nil norm selects [Normalize].
func New(norm Normalizer) *Set {
	if norm == nil {
		norm = Normalize
	}
	return &Set{
		norm:  norm,
		index: make(map[string]int),
	}
}

// Norm applies the set's normalizer to raw.
func (s *Set) Norm(raw string) string {
	return s.norm(raw)
}

// Add normalizes name and appends it when new. It returns the normalized
// form and whether the set grew; inputs that normalize to the empty string
// are rejected with ("", false). Adding an existing name is a no-op.
func (s *Set) Add(name string) (string, bool) {
	n := s.norm(name)
	if n == "" {
		return "", false
	}
	if _, exists := s.index[n]; exists {
		return n, false
	}
	s.index[n] = len(s.names)
	s.names = append(s.names, n)
	return n, true
}

// Fill adds every name in order, skipping duplicates and invalid entries.
func (s *Set) Fill(names []string) {
	for _, name := range names {
		s.Add(name)
	}
}

// Has reports whether the normalized form of name is in the set.
func (s *Set) Has(name string) bool {
	_, ok := s.index[s.norm(name)]
	return ok
}

// Index returns the current position of the named entry, or false if absent.
// Positions shift when earlier entries are removed.
func (s *Set) Index(name string) (int, bool) {
	i, ok := s.index[s.norm(name)]
	return i, ok
}

// Name returns the entry at position i, or false if out of range.
func (s *Set) Name(i int) (string, bool) {
	if i < 0 || i >= len(s.names) {
		return "", false
	}
	return s.names[i], true
}

// Names returns a copy of the entries in insertion order.
func (s *Set) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of entries.
func (s *Set) Len() int {
	return len(s.names)
}

// Remove deletes the named entry if present and reports whether it did.
// Later entries shift down one position.
func (s *Set) Remove(name string) bool {
	n := s.norm(name)
	i, ok := s.index[n]
	if !ok {
		return false
	}
	delete(s.index, n)
	s.names = append(s.names[:i], s.names[i+1:]...)
	for j := i; j < len(s.names); j++ {
		s.index[s.names[j]] = j
	}
	return true
}

// Rename replaces old with new in place: position and membership of every
// other entry are untouched. Renaming an entry to itself is a no-op.
// Returns [ErrInvalidName], [ErrUnknownName], or [ErrDuplicateName].
func (s *Set) Rename(old, new string) error {
	from := s.norm(old)
	to := s.norm(new)
	if from == "" || to == "" {
		return ErrInvalidName
	}
	i, ok := s.index[from]
	if !ok {
		return ErrUnknownName
	}
	if to == from {
		return nil
	}
	if _, taken := s.index[to]; taken {
		return ErrDuplicateName
	}
	delete(s.index, from)
	s.index[to] = i
	s.names[i] = to
	return nil
}
