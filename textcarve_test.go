package textcarve

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCoreRecognizesFastTextMagic(t *testing.T) {
	c := New()
	r := c.Recognize([]byte("BEGIN:VCALENDAR\nDTSTART:20260131T090000\nEND:VCALENDAR\n"), false, nil)
	require.True(t, r.Recognized)
	require.Equal(t, "ics", r.Candidate.Extension)
}

func TestCoreRecognizesHeuristicText(t *testing.T) {
	c := New()
	window := []byte("#!/usr/bin/env python\nprint('hello')\n")
	r := c.Recognize(window, false, nil)
	require.True(t, r.Recognized)
	require.Equal(t, "py", r.Candidate.Extension)
}

func TestCoreAppliesShortNameAlias(t *testing.T) {
	opts := DefaultOptions()
	opts.Config.Extensions.ShortNames = true
	c := NewWithOptions(opts)
	r := c.Recognize([]byte("<!DOCTYPE HTML>\n<html></html>"), false, nil)
	require.True(t, r.Recognized)
	require.Equal(t, "htm", r.Candidate.Extension)
}

func TestCoreDeclinesOnUnrecognizedBytes(t *testing.T) {
	c := New()
	r := c.Recognize([]byte{0x00, 0xFF, 0x10, 0x20}, false, nil)
	require.False(t, r.Recognized)
}
