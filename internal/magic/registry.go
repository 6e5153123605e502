// Package magic implements the prefix-magic registry and dispatcher
// the sealed table of (offset, magic, recognizer) entries
// that a Session consults to decide whether a window should go to the
// fast-text classifier, the heuristic classifier, both, or neither.
package magic

import (
	"bytes"
	"fmt"

	"github.com/brokenblock/textcarve/internal/candidate"
)

// Entry is a single registration: a start offset, a magic byte string,
// and the recognizer to try when they match. Multiple entries commonly
// share the same Recognize function — the fast-text classifier is one
// function dispatching internally across ~50 magics; every fast-text
// Entry points at it.
type Entry struct {
	Offset    int
	Pattern   []byte
	Recognize candidate.Recognizer
}

// matches reports whether window carries e.Pattern at e.Offset. A pattern
// that would run off the end of window simply does not match; recognizers
// never read past the buffer end.
func (e Entry) matches(window []byte) bool {
	end := e.Offset + len(e.Pattern)
	if e.Offset < 0 || end > len(window) {
		return false
	}
	return bytes.Equal(window[e.Offset:end], e.Pattern)
}

// Registry is a builder that produces a sealed, shareable table, rather
// than the C original's global mutable registration list.
// Register appends entries and RegisterByte sets one per byte value;
// Seal freezes the table in place and returns the same Registry, now
// read-only and safe to share across any number of concurrent Sessions.
type Registry struct {
	fastText  []Entry
	heuristic map[byte]candidate.Recognizer
	sealed    bool
}

// NewRegistry returns an empty, unsealed Registry ready for registration.
func NewRegistry() *Registry {
	return &Registry{heuristic: make(map[byte]candidate.Recognizer)}
}

// Register records a prefix-magic entry. offset>0 and many-to-one (several
// magics sharing one recognizer) are both supported.
func (r *Registry) Register(offset int, pattern []byte, fn candidate.Recognizer) {
	if r.sealed {
		panic("magic: Register called on a sealed Registry")
	}
	r.fastText = append(r.fastText, Entry{Offset: offset, Pattern: pattern, Recognize: fn})
}

// RegisterByte subscribes fn to a single leading byte value — the
// registration variant the heuristic classifier uses. Registering the
// same byte twice with the same fn is idempotent; with a
// different fn it replaces the prior registration.
func (r *Registry) RegisterByte(b byte, fn candidate.Recognizer) {
	if r.sealed {
		panic("magic: RegisterByte called on a sealed Registry")
	}
	r.heuristic[b] = fn
}

// Seal freezes the Registry. Further Register/RegisterByte calls panic.
// Seal is idempotent and returns r so it composes with construction:
//
//	reg := NewRegistry()
//	RegisterCatalog(reg)
//	reg = reg.Seal()
func (r *Registry) Seal() *Registry {
	r.sealed = true
	return r
}

// String renders the registered fast-text magics for debugging/listing,
// one per line, ordered as registered.
func (r *Registry) String() string {
	var b bytes.Buffer
	for _, e := range r.fastText {
		fmt.Fprintf(&b, "offset=%d pattern=%q\n", e.Offset, e.Pattern)
	}
	return b.String()
}
