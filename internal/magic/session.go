package magic

import (
	"log/slog"

	"github.com/brokenblock/textcarve/internal/candidate"
)

// maxScratchSize bounds the session's reusable fold-scratch buffer: 2 KB
// plus the 16-byte slack the original's UTF2Lat destination buffers
// always carried.
const maxScratchSize = 2048 + 16

// Options configures a Session. Debug turns on per-call slog tracing of
// registry hits/misses. Suppress gates the cross-carver/same-family
// suppression rules the classifiers apply; the zero value disables every
// rule, so callers that care about the original behavior should start
// from candidate.DefaultSuppressRules(). ScratchCap overrides the
// session's fold-scratch buffer ceiling; zero means "use the built-in
// 2 KB + 16 default".
type Options struct {
	Debug      bool
	Logger     *slog.Logger
	Suppress   candidate.SuppressRules
	ScratchCap int
}

// DefaultOptions returns the Session's out-of-the-box configuration: no
// debug tracing, a discard logger so callers never need a nil check, and
// every suppression rule enabled.
func DefaultOptions() Options {
	return Options{
		Logger:   slog.New(slog.NewTextHandler(discardWriter{}, nil)),
		Suppress: candidate.DefaultSuppressRules(),
	}
}

// Session is a single carving session's dispatcher: a sealed Registry
// plus a reusable scratch buffer. Registries may be shared read-only
// across any number of concurrent Sessions; a Session itself is not
// safe for concurrent use, since recognizer calls within one session
// are serialized in stream-offset order by contract.
type Session struct {
	registry   *Registry
	scratch    []byte
	opts       Options
	maxScratch int
}

// NewSession returns a Session over reg with default options. reg is
// typically the result of magic.RegisterCatalog followed by Seal.
func NewSession(reg *Registry) *Session {
	return NewSessionWithOptions(reg, DefaultOptions())
}

// NewSessionWithOptions returns a Session over reg with explicit options.
func NewSessionWithOptions(reg *Registry, opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = DefaultOptions().Logger
	}
	maxScratch := opts.ScratchCap
	if maxScratch <= 0 {
		maxScratch = maxScratchSize
	}
	return &Session{registry: reg, opts: opts, maxScratch: maxScratch}
}

// scratchBuffer returns a byte slice of exactly n bytes backed by the
// session's reusable buffer, doubling its capacity as needed up to the
// session's scratch ceiling — the Go-idiomatic replacement for the
// original's function-static "don't malloc/free every time" buffer.
func (s *Session) scratchBuffer(n int) []byte {
	ceiling := s.maxScratch
	if ceiling <= 0 {
		ceiling = maxScratchSize
	}
	if n > ceiling {
		n = ceiling
	}
	if len(s.scratch) < n {
		newCap := len(s.scratch)
		if newCap == 0 {
			newCap = 256
		}
		for newCap < n {
			newCap *= 2
		}
		if newCap > ceiling {
			newCap = ceiling
		}
		s.scratch = make([]byte, newCap)
	}
	return s.scratch[:n]
}

// Recognize is the dispatcher: try every fast-text entry
// against window first; on a match, call the first matching entry's
// recognizer exactly once — the shared fast-text classifier for every
// magic (it re-examines the whole window across all catalog arms
// internally), or the UTF-16 LE recognizer for the offset-1 NUL entry.
// If that declines — a suppressed mbox
// re-seed, an XMP embedded in a PDF, and so on — fall through to the
// heuristic classifier keyed on window's first byte, exactly as the
// original tries header_check_fasttxt before header_check_txt for any
// byte both tables subscribe to.
func (s *Session) Recognize(window []byte, safeHeaderOnly bool, prior *candidate.Candidate) candidate.Result {
	if len(window) == 0 {
		return candidate.NotRecognized
	}

	// Stage the window into the session's reusable buffer rather than
	// handing classifiers a slice the driver may mutate mid-dispatch;
	// windows past the cap are classified directly since nothing this
	// core does needs more than a couple KB of lookahead.
	ceiling := s.maxScratch
	if ceiling <= 0 {
		ceiling = maxScratchSize
	}
	if len(window) <= ceiling {
		staged := s.scratchBuffer(len(window))
		copy(staged, window)
		window = staged
	}

	if entry, ok := s.registry.matchFastText(window); ok {
		if s.opts.Debug {
			s.opts.Logger.Debug("fast-text candidate match", "lead", window[0])
		}
		if r := entry.Recognize(window, safeHeaderOnly, prior, s.opts.Suppress); r.Recognized {
			return r
		}
	}

	if fn, ok := s.registry.heuristic[window[0]]; ok {
		if s.opts.Debug {
			s.opts.Logger.Debug("heuristic candidate probe", "lead", window[0])
		}
		return fn(window, safeHeaderOnly, prior, s.opts.Suppress)
	}

	return candidate.NotRecognized
}

// matchFastText returns the first registered fast-text entry whose
// (offset, pattern) matches window.
func (r *Registry) matchFastText(window []byte) (Entry, bool) {
	for _, e := range r.fastText {
		if e.matches(window) {
			return e, true
		}
	}
	return Entry{}, false
}

// discardWriter is an io.Writer sink used for the default silent logger.
type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
