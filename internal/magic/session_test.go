package magic

import (
	"testing"

	"github.com/brokenblock/textcarve/internal/candidate"
)

func newTestSession() *Session {
	reg := NewRegistry()
	RegisterCatalog(reg)
	return NewSession(reg.Seal())
}

func TestRecognizeFastTextMagic(t *testing.T) {
	s := newTestSession()
	window := []byte("#!/bin/sh\necho hi\n")
	r := s.Recognize(window, false, nil)
	if !r.Recognized || r.Candidate.Extension != "sh" {
		t.Fatalf("Recognize(sh script) = %+v", r)
	}
}

func TestRecognizeHeuristicFallsThroughWhenFastTextDeclines(t *testing.T) {
	s := newTestSession()
	prior := &candidate.Candidate{Extension: "mbox", Identity: candidate.IdentityFastText}
	window := append([]byte("From somebody@example.com\n"), make([]byte, 200)...)
	for i := range window[27:] {
		window[27+i] = 'x'
	}
	r := s.Recognize(window, false, prior)
	if r.Recognized && r.Candidate.Extension == "mbox" {
		t.Fatalf("same-family mbox re-seed was not suppressed: %+v", r)
	}
}

func TestRecognizeNoMatch(t *testing.T) {
	s := newTestSession()
	window := []byte{0x00, 0x01, 0x02, 0x03}
	r := s.Recognize(window, false, nil)
	if r.Recognized {
		t.Fatalf("Recognize(binary junk) = %+v, want NotRecognized", r)
	}
}

func TestRecognizeMboxReseedSuppressionCanBeDisabled(t *testing.T) {
	reg := NewRegistry()
	RegisterCatalog(reg)
	sealed := reg.Seal()

	prior := &candidate.Candidate{Extension: "mbox", Identity: candidate.IdentityFastText}
	window := append([]byte("From somebody@example.com\n"), make([]byte, 200)...)
	for i := range window[27:] {
		window[27+i] = 'x'
	}

	withRule := NewSession(sealed)
	r := withRule.Recognize(window, false, prior)
	if r.Recognized && r.Candidate.Extension == "mbox" {
		t.Fatalf("expected suppression with default options, got %+v", r)
	}

	noRule := NewSessionWithOptions(sealed, Options{Suppress: candidate.SuppressRules{}})
	r = noRule.Recognize(window, false, prior)
	if !r.Recognized || r.Candidate.Extension != "mbox" {
		t.Fatalf("expected mbox re-seed allowed with MboxReseed disabled, got %+v", r)
	}
}

func TestRecognizeDispatchesUTF16LE(t *testing.T) {
	s := newTestSession()
	var window []byte
	for _, r := range "hello utf16 world" {
		window = append(window, byte(r), 0x00)
	}
	result := s.Recognize(window, false, nil)
	if !result.Recognized || result.Candidate.Extension != "utf16" {
		t.Fatalf("Recognize(utf16le) = %+v, want utf16 candidate", result)
	}
}

func TestScratchBufferGrowsAndCaps(t *testing.T) {
	s := &Session{}
	b := s.scratchBuffer(10)
	if len(b) != 10 {
		t.Fatalf("len = %d, want 10", len(b))
	}
	b = s.scratchBuffer(maxScratchSize + 500)
	if len(b) != maxScratchSize {
		t.Fatalf("scratchBuffer did not cap at maxScratchSize: got %d", len(b))
	}
}
