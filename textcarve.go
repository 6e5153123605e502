// Package textcarve recognizes text-file formats from a raw byte window
// with no filesystem metadata — the classification core a disk-recovery
// tool runs against every candidate start offset on a device.
package textcarve

import (
	"log/slog"

	"github.com/brokenblock/textcarve/internal/candidate"
	"github.com/brokenblock/textcarve/internal/config"
	"github.com/brokenblock/textcarve/internal/magic"
)

// Re-exported so callers never need to import internal/candidate
// directly.
type (
	Identity    = candidate.Identity
	Candidate   = candidate.Candidate
	Result      = candidate.Result
	CheckStatus = candidate.CheckStatus
)

const (
	StatusContinue = candidate.StatusContinue
	StatusStop     = candidate.StatusStop
)

const (
	IdentityNone      = candidate.IdentityNone
	IdentityFastText  = candidate.IdentityFastText
	IdentityPlainText = candidate.IdentityPlainText
	IdentityPDF       = candidate.IdentityPDF
	IdentityJPEG      = candidate.IdentityJPEG
	IdentityDOC       = candidate.IdentityDOC
	IdentityTIFF      = candidate.IdentityTIFF
	IdentityZIP       = candidate.IdentityZIP
)

// Options configures a Core.
type Options struct {
	// Config carries the extension-aliasing and suppression-toggle
	// knobs. A zero value uses config.Default().
	Config config.Config
	// Debug enables structured per-call slog tracing from the registry
	// dispatcher.
	Debug bool
	// Logger receives debug output when Debug is set. Defaults to
	// slog.Default() when nil.
	Logger *slog.Logger
}

// DefaultOptions returns the Core's out-of-the-box configuration.
func DefaultOptions() Options {
	return Options{Config: config.Default()}
}

// Core is the classification core. It wraps a session bound to a
// process-wide sealed registry; a Core is safe to use from only one
// carving session at a time, but any number of Cores can share the one
// sealed Registry concurrently since the registry itself holds no
// per-session state.
type Core struct {
	session *magic.Session
	cfg     config.Config
}

var sharedRegistry = buildRegistry()

func buildRegistry() *magic.Registry {
	reg := magic.NewRegistry()
	magic.RegisterCatalog(reg)
	return reg.Seal()
}

// New returns a Core with default options.
func New() *Core {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions returns a Core configured per opts. All Cores share one
// process-wide sealed registry; the registry itself holds no per-session
// state, so sharing it across Cores is safe.
func NewWithOptions(opts Options) *Core {
	if opts.Config == (config.Config{}) {
		opts.Config = config.Default()
	}
	sessOpts := magic.Options{
		Debug:      opts.Debug,
		Logger:     opts.Logger,
		Suppress:   opts.Config.Suppress.ToRules(),
		ScratchCap: opts.Config.Scratch.MaxBytes,
	}
	if sessOpts.Logger == nil && opts.Debug {
		sessOpts.Logger = slog.Default()
	}
	return &Core{
		session: magic.NewSessionWithOptions(sharedRegistry, sessOpts),
		cfg:     opts.Config,
	}
}

// Recognize classifies window, returning the prior candidate's family
// identity to suppression rules via prior (nil for the first sector of a
// stream). safeHeaderOnly restricts the heuristic classifier to its
// cheap, non-statistical checks — the mode a caller uses when it only
// wants a quick opinion without paying for the full statistical pass.
//
// The returned Candidate's Extension has already had the core's
// short-name aliasing (if configured) applied.
func (c *Core) Recognize(window []byte, safeHeaderOnly bool, prior *Candidate) Result {
	r := c.session.Recognize(window, safeHeaderOnly, prior)
	if r.Recognized {
		r.Candidate.Extension = c.cfg.Alias(r.Candidate.Extension)
	}
	return r
}
