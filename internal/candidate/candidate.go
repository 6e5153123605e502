// Package candidate defines the in-progress recovery hypothesis shared by
// the registry, the fast-text and heuristic classifiers, and the
// incremental validators.
package candidate

import "time"

// Identity names a format family. The C implementation this package is
// ported from (testdisk's file_txt.c) compares file_hint_t pointers for
// identity; this port interns the same comparisons as a small enum
// instead.
type Identity int

const (
	// IdentityNone means there is no prior candidate: the first sector of a
	// stream, or a driver that does not track carving history.
	IdentityNone Identity = iota
	// IdentityFastText is the identity a registry-matched fast-text arm
	// records itself under, so that e.g. mbox-inside-mbox suppression can
	// recognize "the prior candidate came from this same classifier".
	IdentityFastText
	// IdentityPlainText is the identity the heuristic classifier records
	// itself under.
	IdentityPlainText
	// The remaining identities are non-text carvers this package only ever
	// consults, never produces. They exist so the suppression rules in the
	// fast-text and heuristic classifiers can be expressed as plain
	// equality tests.
	IdentityPDF
	IdentityJPEG
	IdentityDOC
	IdentityTIFF
	IdentityZIP
)

// CheckStatus is the result of a streaming data-check call.
type CheckStatus int

const (
	// StatusContinue means the candidate is still growing; the driver
	// should keep streaming windows.
	StatusContinue CheckStatus = iota + 1
	// StatusStop means the candidate's end was located in this window;
	// CalculatedSize is final and the driver should invoke the file-check.
	StatusStop
)

// DataCheck is invoked by the driver with each newly read window.
type DataCheck func(c *Candidate, window []byte) CheckStatus

// FileCheck is invoked once after the driver has stopped streaming, to
// locate a canonical footer (if the format defines one) within the bytes
// already committed to disk.
type FileCheck func(c *Candidate, tail []byte)

// Candidate is an in-progress recovery hypothesis.
type Candidate struct {
	// Extension is the short format tag ("html", "xml", "sh", "mbox", ...).
	// Final once a recognizer sets it: later refinements replace the whole
	// Candidate rather than mutate Extension in place.
	Extension string

	// CalculatedSize is the number of bytes accepted so far. Monotonically
	// non-decreasing across DataCheck calls.
	CalculatedSize uint64

	// FileSize is the number of bytes the driver has actually committed to
	// disk for this candidate. Distinct from CalculatedSize: a file-check
	// may shrink FileSize (e.g. EMLX bounding its footer search) but never
	// CalculatedSize.
	FileSize uint64

	// MinFileSize is a lower bound below which competing carvers for the
	// same bytes are preferred over this candidate.
	MinFileSize uint64

	DataCheck DataCheck
	FileCheck FileCheck

	// Filename is the driver-assigned provisional name. Some arms inspect
	// it for a ".doc", ".html", ".sh3d" or ".snt" suffix.
	Filename string

	// Time is populated only for ICS candidates whose window contains a
	// parseable "DTSTART:YYYYMMDDHHMMSS" (or the iCalendar form with a 'T'
	// between date and time). Zero value means unset — a
	// missing or malformed DTSTART is not an error.
	Time time.Time

	// Identity names the format family this candidate belongs to, so a
	// later Recognize call can apply suppression rules against "the prior
	// candidate was already this family" without string comparison.
	Identity Identity

	// TolerantNewlines is set by the XML, SVG, SMIL and ERS footer-search
	// file-checks: the file accepts bare-LF, CRLF, and bare-CR line endings.
	TolerantNewlines bool
}

// SuppressRules gates the cross-carver and same-family suppression checks
// a Recognizer applies. Each field enables one rule; turning a rule off
// lets a candidate through that the rule would otherwise decline.
type SuppressRules struct {
	// MboxReseed declines a fast-text mbox/emlx match when the prior
	// candidate is already an mbox recognized by this same classifier.
	MboxReseed bool
	// XMPUnderPDFOrTIFF declines an xmp match when the prior candidate is
	// a PDF or TIFF (xmp is commonly embedded in both).
	XMPUnderPDFOrTIFF bool
	// JPEGEmbeddedText declines a heuristic text match under a JPEG prior
	// unless the window carries a recognized metadata marker.
	JPEGEmbeddedText bool
	// ZIPEmbeddedText declines a heuristic text match under a ZIP prior
	// unless the window carries a ZIP local-file header or the prior
	// filename is a known ZIP-based text container.
	ZIPEmbeddedText bool
}

// DefaultSuppressRules enables every rule — the behavior the original C
// classifier always applies unconditionally.
func DefaultSuppressRules() SuppressRules {
	return SuppressRules{
		MboxReseed:        true,
		XMPUnderPDFOrTIFF: true,
		JPEGEmbeddedText:  true,
		ZIPEmbeddedText:   true,
	}
}

// Recognizer is a pure function of a window and whatever carving-session
// context a suppression rule needs: the candidate a previous sector already
// produced (nil for the first sector of a stream), whether the caller only
// wants cheap header-only recognition ("safe_header_only"), and which
// suppression rules are currently active.
type Recognizer func(window []byte, safeHeaderOnly bool, prior *Candidate, suppress SuppressRules) Result

// Result is the tagged outcome of a recognizer call, replacing the C
// original's out-pointer-plus-0/1-return convention.
type Result struct {
	Recognized bool
	Candidate  Candidate
}

// NotRecognized is the zero Result: no match, nothing to return.
var NotRecognized = Result{}

// Recognized builds a Result wrapping a fully-populated Candidate.
func Recognized(c Candidate) Result {
	return Result{Recognized: true, Candidate: c}
}

// FromPrior reports the Identity of a possibly-nil prior candidate. A nil
// prior and an explicit IdentityNone prior must be handled identically by
// every suppression rule.
func FromPrior(prior *Candidate) Identity {
	if prior == nil {
		return IdentityNone
	}
	return prior.Identity
}
