package classify

import (
	"bytes"

	"github.com/brokenblock/textcarve/internal/candidate"
	"github.com/brokenblock/textcarve/internal/corpus"
	"github.com/brokenblock/textcarve/internal/validate"
)

const foldTestCap = 2048

// Heuristic is header_check_txt: invoked whenever a single text-plausible
// leading byte might start a plain text file.
func Heuristic(window []byte, safeHeaderOnly bool, prior *candidate.Candidate, suppress candidate.SuppressRules) candidate.Result {
	if r, ok := emlxProbe(window, prior, suppress); ok {
		return r
	}

	testLen := len(window)
	if testLen > foldTestCap {
		testLen = foldTestCap
	}
	folded := make([]byte, testLen+16)
	written, _ := corpus.Fold(folded, window[:testLen])
	if written < 10 {
		return candidate.NotRecognized
	}
	lower := folded[:written]

	switch {
	case bytes.HasPrefix(lower, []byte("@echo off")), bytes.HasPrefix(lower, []byte("rem ")):
		return plain("bat", validate.SizeCheck)
	case bytes.HasPrefix(lower, []byte(`<%@ language="vbscript`)):
		return plain("asp", validate.SizeCheck)
	case bytes.HasPrefix(lower, []byte("version 4.00\r\nbegin")):
		return plain("vb", validate.SizeCheck)
	case bytes.HasPrefix(lower, []byte("begin:vcard")):
		return plain("vcf", validate.SizeCheck)
	}

	if len(window) >= 2 && window[0] == '#' && window[1] == '!' {
		if r, ok := shebangResult(lower); ok {
			return r
		}
	}

	if safeHeaderOnly {
		return candidate.NotRecognized
	}

	if prior != nil {
		// "Don't search text in the beginning of JPG or inside PDF."
		if prior.Identity == candidate.IdentityPDF {
			return candidate.NotRecognized
		}
		if prior.Identity == candidate.IdentityJPEG && prior.FileSize < prior.MinFileSize {
			return candidate.NotRecognized
		}
	}

	stats := textStatistics(lower)
	ext, ok := decideExtension(window, lower, stats)
	if !ok {
		return candidate.NotRecognized
	}

	return applyContextualSuppression(ext, window, lower, prior, suppress)
}

// emlxProbe implements the "must run first" EMLX length-prefix probe:
// up to 10 ASCII digits, a newline, then either a Return-Path or a
// Received: from header.
func emlxProbe(window []byte, prior *candidate.Candidate, suppress candidate.SuppressRules) (candidate.Result, bool) {
	i, declared := 0, uint64(0)
	for i < 10 && i < len(window) && window[i] >= '0' && window[i] <= '9' {
		declared = declared*10 + uint64(window[i]-'0')
		i++
	}
	if i >= len(window) || window[i] != '\n' {
		return candidate.NotRecognized, false
	}
	rest := window[i+1:]
	if !bytes.HasPrefix(rest, MagicReturnPath) && !bytes.HasPrefix(rest, MagicReceivedFrom) {
		return candidate.NotRecognized, false
	}
	if suppress.MboxReseed && isSameFamilyMbox(prior) {
		return candidate.NotRecognized, false
	}
	return candidate.Recognized(candidate.Candidate{
		Extension:      "emlx",
		CalculatedSize: declared + uint64(i) + 1,
		FileCheck:      validate.EMLX,
		Identity:       candidate.IdentityPlainText,
	}), true
}

// shebangResult scans the first folded line after "#!" for an
// interpreter token.
func shebangResult(lower []byte) (candidate.Result, bool) {
	haystack := lower[2:]
	if nl := bytes.IndexByte(haystack, '\n'); nl >= 0 {
		haystack = haystack[:nl]
	}
	switch {
	case bytes.Contains(haystack, []byte("perl")):
		return plain("pl", validate.SizeCheck), true
	case bytes.Contains(haystack, []byte("python")):
		return plain("py", validate.SizeCheck), true
	case bytes.Contains(haystack, []byte("ruby")):
		return plain("rb", validate.SizeCheck), true
	}
	return candidate.NotRecognized, false
}

type stats struct {
	nbrf  int
	isCSV bool
	ind   float64
}

// textStatistics computes the Fortran-continuation count, the CSV
// regularity flag, and the index of coincidence over the folded window.
func textStatistics(lower []byte) stats {
	nbrf := 0
	for i := 0; i+7 <= len(lower); i++ {
		if lower[i] == '\n' && bytes.Equal(lower[i+1:i+7], []byte("      ")) {
			nbrf++
		}
	}

	isCSV := true
	csvPerLine, csvCurrent, lineNbr := 0, 0, 0
	for i := 0; i < len(lower) && isCSV; i++ {
		switch lower[i] {
		case ';':
			csvCurrent++
		case '\n':
			if lineNbr == 0 {
				csvPerLine = csvCurrent
			}
			if csvCurrent != csvPerLine {
				isCSV = false
			}
			lineNbr++
			csvCurrent = 0
		}
	}
	if csvPerLine < 1 || lineNbr < 10 {
		isCSV = false
	}

	var histogram [256]int
	for _, b := range lower {
		histogram[b]++
	}
	var ind float64
	l := float64(len(lower))
	for _, n := range histogram {
		if n > 0 {
			ind += float64(n) * float64(n-1)
		}
	}
	if l > 1 {
		ind = ind / l / (l - 1)
	}

	return stats{nbrf: nbrf, isCSV: isCSV, ind: ind}
}

// decideExtension is the "extension decision (first match wins)" cascade.
func decideExtension(window, lower []byte, st stats) (string, bool) {
	l := len(lower)
	switch {
	case window[0] == '[' && isINI(lower) && l > 50:
		return "ini", true
	case bytes.Contains(lower, []byte("<?php")):
		return "php", true
	case bytes.Contains(lower, []byte("class")), bytes.Contains(lower, []byte("private static")), bytes.Contains(lower, []byte("public interface")):
		return "java", true
	case st.nbrf > 10 && st.ind < 0.9 && bytes.Contains(lower, []byte("integer")):
		return "f", true
	case st.isCSV:
		return "csv", true
	case bytes.Contains(lower, []byte(`\begin{`)):
		return "tex", true
	case bytes.Contains(lower, []byte("#include")):
		return "c", true
	case bytes.Contains(lower, []byte("[autorun]")):
		return "inf", true
	case bytes.Contains(lower, []byte("<%@")), bytes.Contains(lower, []byte("<%=")):
		return "jsp", true
	case bytes.Contains(lower, []byte("<% ")):
		return "asp", true
	case bytes.Contains(lower, []byte("<html")):
		return "html", true
	case bytes.Contains(lower, []byte(`\score {`)):
		return "ly", true
	case bytes.Contains(lower, []byte("/*")) && l > 50:
		return "h", true
	case l < 100 || st.ind < 0.03 || st.ind > 0.90:
		return "", false
	case bytes.HasPrefix(lower, []byte(`{"`)):
		return "json", true
	default:
		ext := "txt"
		if bytes.Contains(lower, []byte("<br>")) || bytes.Contains(lower, []byte("<p>")) {
			ext = "html"
		}
		return ext, true
	}
}

// isINI: fold[0]=='[' and a ']' appears past position 3 with only
// alphanumeric or space between.
func isINI(lower []byte) bool {
	if len(lower) == 0 || lower[0] != '[' {
		return false
	}
	for i := 1; i < len(lower); i++ {
		switch {
		case lower[i] == ']':
			return i > 3
		case (lower[i] >= 'a' && lower[i] <= 'z') || (lower[i] >= 'A' && lower[i] <= 'Z') ||
			(lower[i] >= '0' && lower[i] <= '9') || lower[i] == ' ':
			continue
		default:
			return false
		}
	}
	return false
}

// applyContextualSuppression is step 9: after the extension is chosen,
// a handful of cross-carver rules can still decline the candidate.
func applyContextualSuppression(ext string, window, lower []byte, prior *candidate.Candidate, suppress candidate.SuppressRules) candidate.Result {
	if ext == "html" && prior != nil && prior.Identity == candidate.IdentityPlainText &&
		prior.Extension == "txt" && prior.Filename != "" {
		return candidate.NotRecognized
	}

	if prior != nil && prior.Identity == candidate.IdentityDOC && bytes.Contains([]byte(prior.Filename), []byte(".doc")) {
		if !docAccepts(lower) {
			return candidate.NotRecognized
		}
		return heuristicResult(ext)
	}

	if prior != nil && prior.Identity == candidate.IdentityJPEG {
		if suppress.JPEGEmbeddedText && !jpegAllowsText(window) {
			return candidate.NotRecognized
		}
		return heuristicResult(ext)
	}

	if prior != nil && prior.Identity == candidate.IdentityZIP {
		if suppress.ZIPEmbeddedText && !zipAllowsText(window, prior) {
			return candidate.NotRecognized
		}
		return heuristicResult(ext)
	}

	return heuristicResult(ext)
}

func heuristicResult(ext string) candidate.Result {
	return candidate.Recognized(candidate.Candidate{
		Extension: ext,
		DataCheck: validate.Text,
		FileCheck: validate.SizeCheck,
		Identity:  candidate.IdentityPlainText,
	})
}

// docAccepts implements the DOC-reclassification gate: entropy ceiling,
// every \r followed by \n, and at least one \n within the first 512
// folded bytes.
func docAccepts(lower []byte) bool {
	st := textStatistics(lower)
	if st.ind > 0.20 {
		return false
	}
	for i := 0; i+1 < len(lower); i++ {
		if lower[i] == '\r' && lower[i+1] != '\n' {
			return false
		}
	}
	limit := len(lower)
	if limit > 512 {
		limit = 512
	}
	for i := 0; i < limit; i++ {
		if lower[i] == '\n' {
			return true
		}
	}
	return false
}

func jpegAllowsText(window []byte) bool {
	for _, marker := range [][]byte{
		[]byte("8BIM"), []byte("adobe"), []byte("exif:"),
		[]byte("<rdf:"), []byte("<?xpacket"), []byte("<dict>"),
	} {
		if bytes.Contains(window, marker) {
			return true
		}
	}
	return false
}

var zipMagic = []byte{'P', 'K', 0x03, 0x04}

func zipAllowsText(window []byte, prior *candidate.Candidate) bool {
	return bytes.HasPrefix(window, zipMagic) || bytes.Contains([]byte(prior.Filename), []byte(".sh3d"))
}
