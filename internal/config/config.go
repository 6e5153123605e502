// Package config loads the driver-facing tuning knobs for a carving
// session from a TOML file: short-extension aliasing for filesystems
// that cap names at three characters, per-family suppression toggles,
// and the fold-scratch buffer cap.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/brokenblock/textcarve/internal/candidate"
)

// Config is the decoded shape of a textcarve.toml file.
type Config struct {
	Extensions ExtensionSection `toml:"extensions"`
	Suppress   SuppressSection  `toml:"suppress"`
	Scratch    ScratchSection   `toml:"scratch"`
}

// ExtensionSection controls extension mapping for constrained
// environments: when ShortNames is set, the aliases below replace
// their long form.
type ExtensionSection struct {
	ShortNames bool `toml:"short_names"`
}

// SuppressSection lets an operator turn off individual cross-carver
// suppression rules, e.g. to force xmp extraction even under PDF/TIFF
// priors during debugging of those families.
type SuppressSection struct {
	MboxReseed        bool `toml:"mbox_reseed"`
	XMPUnderPDFOrTIFF bool `toml:"xmp_under_pdf_or_tiff"`
	JPEGEmbeddedText  bool `toml:"jpeg_embedded_text"`
	ZIPEmbeddedText   bool `toml:"zip_embedded_text"`
}

// ToRules converts the decoded TOML toggles into the candidate.SuppressRules
// a Session threads through every Recognizer call.
func (s SuppressSection) ToRules() candidate.SuppressRules {
	return candidate.SuppressRules{
		MboxReseed:        s.MboxReseed,
		XMPUnderPDFOrTIFF: s.XMPUnderPDFOrTIFF,
		JPEGEmbeddedText:  s.JPEGEmbeddedText,
		ZIPEmbeddedText:   s.ZIPEmbeddedText,
	}
}

// ScratchSection overrides the session scratch-buffer ceiling. Zero
// means "use the built-in 2 KB + 16 default".
type ScratchSection struct {
	MaxBytes int `toml:"max_bytes"`
}

// Default returns the configuration the core ships with when no TOML
// file is supplied: all suppression rules enabled, long extension names.
func Default() Config {
	return Config{
		Suppress: SuppressSection{
			MboxReseed:        true,
			XMPUnderPDFOrTIFF: true,
			JPEGEmbeddedText:  true,
			ZIPEmbeddedText:   true,
		},
	}
}

// shortAliases maps long extensions to their 3-character form: html→htm,
// java→jav, plist→pli, emka→emk, sessionstore.js→js.
var shortAliases = map[string]string{
	"html":            "htm",
	"java":            "jav",
	"plist":           "pli",
	"emka":            "emk",
	"sessionstore.js": "js",
}

// Alias applies the configured short-name mapping to ext, returning ext
// unchanged when ShortNames is off or no alias is defined.
func (c Config) Alias(ext string) string {
	if !c.Extensions.ShortNames {
		return ext
	}
	if alias, ok := shortAliases[ext]; ok {
		return alias
	}
	return ext
}

// Load reads and decodes a TOML config file at path.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, nil
}

// LoadBytes decodes an in-memory TOML document, for callers that already
// have the config content (tests, embedded defaults).
func LoadBytes(data []byte) (Config, error) {
	cfg := Default()
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, nil
}

// MustLoad is Load for callers in startup paths that treat a bad config
// file as fatal rather than limping along on a broken config.
func MustLoad(path string) Config {
	cfg, err := Load(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return cfg
}
