package classify

import (
	"testing"

	"github.com/brokenblock/textcarve/internal/candidate"
)

func TestFastTextRecognizesShellShebang(t *testing.T) {
	r := FastText([]byte("#!/bin/sh\necho hi\n"), false, nil, candidate.DefaultSuppressRules())
	if !r.Recognized || r.Candidate.Extension != "sh" {
		t.Fatalf("FastText(sh) = %+v", r)
	}
}

func TestFastTextHTMLDoctype(t *testing.T) {
	r := FastText([]byte("<!DOCTYPE HTML>\n<html></html>"), false, nil, candidate.DefaultSuppressRules())
	if !r.Recognized || r.Candidate.Extension != "html" {
		t.Fatalf("FastText(html) = %+v", r)
	}
}

func TestFastTextXMLRefinesToSVGWithFooterCheck(t *testing.T) {
	r := FastText([]byte(`<?xml version="1.0"?><svg xmlns="x"></svg>`), false, nil, candidate.DefaultSuppressRules())
	if !r.Recognized || r.Candidate.Extension != "svg" {
		t.Fatalf("FastText(svg) = %+v", r)
	}
	if r.Candidate.FileCheck == nil {
		t.Fatal("svg candidate has no file check")
	}
}

func TestFastTextXMLDefaultsToXML(t *testing.T) {
	r := FastText([]byte(`<?xml version="1.0"?><root></root>`), false, nil, candidate.DefaultSuppressRules())
	if !r.Recognized || r.Candidate.Extension != "xml" {
		t.Fatalf("FastText(xml) = %+v", r)
	}
}

func TestFastTextMboxSuppressedWhenPriorIsSameFamilyMbox(t *testing.T) {
	prior := &candidate.Candidate{Extension: "mbox", Identity: candidate.IdentityFastText}
	r := FastText([]byte("MIME-Version: 1.0\n"), false, prior, candidate.DefaultSuppressRules())
	if r.Recognized {
		t.Fatalf("FastText(mbox re-seed) = %+v, want suppressed", r)
	}
}

func TestFastTextMbox2RequiresAtBeforeSpace(t *testing.T) {
	ok := FastText([]byte("From somebody@example.com stuff"), false, nil, candidate.DefaultSuppressRules())
	if !ok.Recognized || ok.Candidate.Extension != "mbox" {
		t.Fatalf("FastText(From ... @) = %+v", ok)
	}
	bad := FastText([]byte("From somebody else here"), false, nil, candidate.DefaultSuppressRules())
	if bad.Recognized {
		t.Fatalf("FastText(From ... no @ before space) = %+v, want NotRecognized", bad)
	}
}

func TestFastTextSTLRejectsBinaryPadding(t *testing.T) {
	window := make([]byte, 100)
	copy(window, []byte("solid "))
	for i := 0x40; i < 0x40+16; i++ {
		window[i] = ' '
	}
	r := FastText(window, false, nil, candidate.DefaultSuppressRules())
	if r.Recognized {
		t.Fatalf("FastText(binary-padded solid) = %+v, want declined", r)
	}
}

func TestFastTextSTLAcceptsASCII(t *testing.T) {
	window := make([]byte, 100)
	copy(window, []byte("solid mymodel\n"))
	for i := 0x40; i < 0x40+16; i++ {
		window[i] = 'x'
	}
	r := FastText(window, false, nil, candidate.DefaultSuppressRules())
	if !r.Recognized || r.Candidate.Extension != "stl" {
		t.Fatalf("FastText(ascii solid) = %+v", r)
	}
}

func TestFastTextICSExtractsDTSTART(t *testing.T) {
	window := []byte("BEGIN:VCALENDAR\nDTSTART:19970714T133000\nEND:VCALENDAR\n")
	r := FastText(window, false, nil, candidate.DefaultSuppressRules())
	if !r.Recognized || r.Candidate.Extension != "ics" {
		t.Fatalf("FastText(ics) = %+v", r)
	}
	if r.Candidate.Time.IsZero() {
		t.Fatal("ics candidate has no extracted DTSTART")
	}
	if r.Candidate.Time.Year() != 1997 || int(r.Candidate.Time.Month()) != 7 || r.Candidate.Time.Day() != 14 {
		t.Fatalf("parsed DTSTART = %v, want 1997-07-14", r.Candidate.Time)
	}
}

func TestFastTextICSWithoutDTSTARTLeavesTimeZero(t *testing.T) {
	window := []byte("BEGIN:VCALENDAR\nSUMMARY:no date here\nEND:VCALENDAR\n")
	r := FastText(window, false, nil, candidate.DefaultSuppressRules())
	if !r.Recognized {
		t.Fatal("FastText(ics without DTSTART) not recognized")
	}
	if !r.Candidate.Time.IsZero() {
		t.Fatalf("Time = %v, want zero", r.Candidate.Time)
	}
}

func TestFastTextXMPSuppressedUnderPDFOrTIFF(t *testing.T) {
	xmp := []byte(`<x:xmpmeta xmlns:x="adobe:ns:meta/">stuff</x:xmpmeta>`)
	for _, id := range []candidate.Identity{candidate.IdentityPDF, candidate.IdentityTIFF} {
		prior := &candidate.Candidate{Identity: id}
		if r := FastText(xmp, false, prior, candidate.DefaultSuppressRules()); r.Recognized {
			t.Fatalf("FastText(xmp under %v) = %+v, want suppressed", id, r)
		}
	}
	if r := FastText(xmp, false, nil, candidate.DefaultSuppressRules()); !r.Recognized || r.Candidate.Extension != "xmp" {
		t.Fatalf("FastText(xmp, no prior) = %+v", r)
	}
}

func TestFastTextTTDWiresTTDDataCheck(t *testing.T) {
	window := append(append([]byte{}, MagicTtd...), make([]byte, 10)...)
	r := FastText(window, false, nil, candidate.DefaultSuppressRules())
	if !r.Recognized || r.Candidate.Extension != "ttd" {
		t.Fatalf("FastText(ttd) = %+v", r)
	}
	// validate.TTD stops on a non-hex byte in the new half; validate.Text
	// would keep going over the same plain-text bytes.
	c := r.Candidate
	if status := c.DataCheck(&c, []byte("0000zzzz")); status != candidate.StatusStop {
		t.Fatalf("ttd DataCheck on non-hex bytes = %v, want StatusStop", status)
	}
}

func TestFastTextNoMatch(t *testing.T) {
	r := FastText([]byte("just some unrelated bytes here"), false, nil, candidate.DefaultSuppressRules())
	if r.Recognized {
		t.Fatalf("FastText(junk) = %+v, want NotRecognized", r)
	}
}
