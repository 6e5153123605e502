// Package classify implements the fast-text recognizer (a single
// function dispatching across the fixed magic catalog) and the
// heuristic recognizer (triggered by any text-plausible leading byte).
package classify

import (
	"bytes"
	"strconv"
	"time"

	"github.com/brokenblock/textcarve/internal/candidate"
	"github.com/brokenblock/textcarve/internal/corpus"
	"github.com/brokenblock/textcarve/internal/validate"
)

// FastText is header_check_fasttxt: every fast-text Entry in the magic
// registry shares this one function. Arms are tried in the catalog's
// listed order; the first match wins.
func FastText(window []byte, safeHeaderOnly bool, prior *candidate.Candidate, suppress candidate.SuppressRules) candidate.Result {
	switch {
	case bytes.HasPrefix(window, MagicCls):
		return plain("cls", validate.XML)

	case bytes.HasPrefix(window, MagicHTML):
		return plain("html", validate.SizeCheck)

	case bytes.HasPrefix(window, MagicJSON):
		return plain("json", validate.SizeCheck)
	}

	if bytes.HasPrefix(window, MagicImm) || bytes.HasPrefix(window, MagicMail) || bytes.HasPrefix(window, MagicReturnPath) {
		if suppress.MboxReseed && isSameFamilyMbox(prior) {
			return candidate.NotRecognized
		}
		return candidate.Recognized(candidate.Candidate{
			Extension: "mbox",
			Identity:  candidate.IdentityFastText,
		})
	}

	if bytes.HasPrefix(window, MagicMail2) {
		if !from2At(window) {
			return candidate.NotRecognized
		}
		if suppress.MboxReseed && isSameFamilyMbox(prior) {
			return candidate.NotRecognized
		}
		return candidate.Recognized(candidate.Candidate{
			Extension: "mbox",
			Identity:  candidate.IdentityFastText,
		})
	}

	if bytes.HasPrefix(window, MagicMdl) {
		return candidate.Recognized(candidate.Candidate{
			Extension: "mdl",
			DataCheck: validate.Text,
			Identity:  candidate.IdentityFastText,
		})
	}

	if bytes.HasPrefix(window, MagicPerlm) && len(window) > len(MagicPerlm) &&
		(window[len(MagicPerlm)] == ' ' || window[len(MagicPerlm)] == '\t') {
		testLen := len(window)
		if testLen > 2048-16 {
			testLen = 2048 - 16
		}
		folded := make([]byte, testLen+16)
		written, _ := corpus.Fold(folded, window[:testLen])
		lower := folded[:written]
		ext := "pm"
		if bytes.Contains(lower, []byte("class")) ||
			bytes.Contains(lower, []byte("private static")) ||
			bytes.Contains(lower, []byte("public interface")) {
			ext = "java"
		}
		return plain(ext, validate.SizeCheck)
	}

	if bytes.HasPrefix(window, MagicRpp) {
		return plain("rpp", validate.SizeCheck)
	}

	if bytes.HasPrefix(window, MagicRtf) &&
		candidate.FromPrior(prior) != candidate.IdentityDOC &&
		prior != nil && bytes.Contains([]byte(prior.Filename), []byte(".snt")) {
		return plain("rtf", validate.SizeCheck)
	}

	if bytes.HasPrefix(window, MagicReg) {
		return plain("reg", validate.SizeCheck)
	}

	if bytes.HasPrefix(window, MagicSessionstore) {
		return plain("sessionstore.js", validate.SizeCheck)
	}

	if bytes.HasPrefix(window, MagicSh) || bytes.HasPrefix(window, MagicBash) || bytes.HasPrefix(window, MagicKsh) {
		return plain("sh", validate.SizeCheck)
	}

	if bytes.HasPrefix(window, MagicSlk) {
		return plain("slk", validate.SizeCheck)
	}

	if bytes.HasPrefix(window, MagicSeenezsst) {
		return plain("SeeNezSST", validate.SizeCheck)
	}

	if bytes.HasPrefix(window, MagicSnzUnix) || bytes.HasPrefix(window, MagicSnzWin) {
		return plain("snz", validate.SizeCheck)
	}

	if bytes.HasPrefix(window, MagicMysql) || bytes.HasPrefix(window, MagicPhpMyAdmin) ||
		bytes.HasPrefix(window, MagicPostgreSQL) || bytes.HasPrefix(window, MagicPostgreSQLWin) {
		return plain("sql", validate.SizeCheck)
	}

	if bytes.HasPrefix(window, MagicStl) && len(window) >= stlPaddingOffset+len(stlPadding) &&
		!bytes.Equal(window[stlPaddingOffset:stlPaddingOffset+len(stlPadding)], stlPadding) {
		return plain("stl", validate.SizeCheck)
	}

	if bytes.HasPrefix(window, MagicErs) {
		return candidate.Recognized(candidate.Candidate{
			Extension: "ers",
			DataCheck: validate.Text,
			FileCheck: validate.ERS,
			Identity:  candidate.IdentityFastText,
		})
	}

	if bytes.HasPrefix(window, MagicHdr) {
		return plain("hdr", validate.SizeCheck)
	}

	if bytes.HasPrefix(window, MagicEmka) {
		return plain("emka", validate.SizeCheck)
	}

	if bytes.Contains(window, MagicQgis) {
		return plain("qgs", validate.SizeCheck)
	}

	if bytes.HasPrefix(window, MagicStp) {
		return plain("stp", validate.SizeCheck)
	}

	if bytes.HasPrefix(window, MagicTtd) {
		return candidate.Recognized(candidate.Candidate{
			Extension: "ttd",
			DataCheck: validate.TTD,
			FileCheck: validate.SizeCheck,
			Identity:  candidate.IdentityFastText,
		})
	}

	if bytes.HasPrefix(window, MagicURL) {
		return plain("url", validate.SizeCheck)
	}

	if bytes.HasPrefix(window, MagicWpl) {
		return plain("wpl", validate.SizeCheck)
	}

	if bytes.HasPrefix(window, MagicRam) {
		return plain("ram", validate.SizeCheck)
	}

	if bytes.HasPrefix(window, MagicXML) || bytes.HasPrefix(window, MagicXMLUTF8) {
		return xmlFamily(window)
	}

	if len(window) >= 4+len(MagicDC) && window[0] == '0' && window[1] == '0' && bytes.HasPrefix(window[4:], MagicDC) {
		return plain("dc", validate.SizeCheck)
	}

	if bytes.HasPrefix(window, MagicDif) {
		return plain("dif", validate.SizeCheck)
	}

	if bytes.HasPrefix(window, MagicIcs) {
		return icsCandidate(window)
	}

	if bytes.HasPrefix(window, MagicJad) {
		return plain("jad", validate.SizeCheck)
	}

	if bytes.HasPrefix(window, MagicLy) {
		return plain("ly", validate.SizeCheck)
	}

	if bytes.HasPrefix(window, MagicLyx) {
		return plain("lyx", validate.SizeCheck)
	}

	if bytes.HasPrefix(window, MagicM3u) {
		return plain("m3u", validate.SizeCheck)
	}

	if bytes.HasPrefix(window, MagicMnemosyne) {
		return plain("mem", validate.SizeCheck)
	}

	if bytes.HasPrefix(window, MagicMsf) {
		return plain("msf", validate.SizeCheck)
	}

	if bytes.HasPrefix(window, MagicAdr) {
		return plain("adr", validate.SizeCheck)
	}

	if bytes.HasPrefix(window, MagicCue1) || bytes.HasPrefix(window, MagicCue2) {
		return plain("cue", validate.SizeCheck)
	}

	if bytes.HasPrefix(window, MagicSmil) {
		return candidate.Recognized(candidate.Candidate{
			Extension: "smil",
			DataCheck: validate.Text,
			FileCheck: validate.SMIL,
			Identity:  candidate.IdentityFastText,
		})
	}

	if bytes.HasPrefix(window, MagicXmp) {
		p := candidate.FromPrior(prior)
		if suppress.XMPUnderPDFOrTIFF && (p == candidate.IdentityPDF || p == candidate.IdentityTIFF) {
			return candidate.NotRecognized
		}
		return plain("xmp", validate.SizeCheck)
	}

	if bytes.HasPrefix(window, MagicVbookmark) {
		return plain("url", validate.SizeCheck)
	}

	return candidate.NotRecognized
}

// plain builds the common case: fast-text arms that just carry a text
// data-check and the trivial size file-check.
func plain(ext string, fileCheck candidate.FileCheck) candidate.Result {
	return candidate.Recognized(candidate.Candidate{
		Extension: ext,
		DataCheck: validate.Text,
		FileCheck: fileCheck,
		Identity:  candidate.IdentityFastText,
	})
}

// isSameFamilyMbox reports whether prior is already an mbox recognized by
// this same classifier — the "don't infinite-reseed mid-mailbox"
// suppression.
func isSameFamilyMbox(prior *candidate.Candidate) bool {
	return prior != nil && prior.Identity == candidate.IdentityFastText && prior.Extension == "mbox"
}

// from2At mirrors "From someone@somewhere": scan forward (bounded at 200
// bytes) until a space or '@'; recognized only if '@' came first.
func from2At(window []byte) bool {
	i := len(MagicMail2)
	for i < len(window) && i < 200 && window[i] != ' ' && window[i] != '@' {
		i++
	}
	return i < len(window) && window[i] == '@'
}

// xmlFamily is the XML/HTML refinement sub-cascade shared by the "xml"
// and "xml_utf8" magics.
func xmlFamily(window []byte) candidate.Result {
	switch {
	case bytes.Contains(window, []byte("Version_grisbi")):
		return plain("gsb", validate.XML)
	case bytes.Contains(window, []byte("QBFSD")):
		return plain("fst", validate.XML)
	case bytes.Contains(window, []byte(`<collection type="GC`)):
		return plain("gcs", validate.XML)
	case bytes.Contains(window, []byte("<html")):
		return plain("html", validate.XML)
	case bytes.Contains(window, []byte("<svg")):
		return candidate.Recognized(candidate.Candidate{
			Extension: "svg",
			DataCheck: validate.Text,
			FileCheck: validate.SVG,
			Identity:  candidate.IdentityFastText,
		})
	case bytes.Contains(window, []byte("<!DOCTYPE plist ")):
		return plain("plist", validate.XML)
	case bytes.Contains(window, []byte("<PremiereData Version=")):
		return plain("prproj", validate.XML)
	default:
		return plain("xml", validate.XML)
	}
}

// icsCandidate is the ICS arm: always matches, then best-effort extracts
// a DTSTART timestamp. A missing or malformed DTSTART is not an error —
// the Time field is simply left zero.
func icsCandidate(window []byte) candidate.Result {
	c := candidate.Candidate{
		Extension: "ics",
		DataCheck: validate.Text,
		FileCheck: validate.SizeCheck,
		Identity:  candidate.IdentityFastText,
	}
	if t, ok := parseDTSTART(window); ok {
		c.Time = t
	}
	return candidate.Recognized(c)
}

func parseDTSTART(window []byte) (time.Time, bool) {
	idx := bytes.Index(window, []byte("DTSTART"))
	if idx < 0 {
		return time.Time{}, false
	}
	rest := window[idx:]
	colon := bytes.IndexByte(rest, ':')
	if colon < 0 {
		return time.Time{}, false
	}
	start := idx + colon + 1
	if start+14 > len(window) {
		return time.Time{}, false
	}
	digits := window[start : start+14]
	if window[start+8] == 'T' {
		// iCalendar date-time form: YYYYMMDD'T'HHMMSS.
		if start+15 > len(window) {
			return time.Time{}, false
		}
		digits = append(append([]byte(nil), window[start:start+8]...), window[start+9:start+15]...)
	}
	for _, b := range digits {
		if b < '0' || b > '9' {
			return time.Time{}, false
		}
	}
	year, _ := strconv.Atoi(string(digits[0:4]))
	month, _ := strconv.Atoi(string(digits[4:6]))
	day, _ := strconv.Atoi(string(digits[6:8]))
	hour, _ := strconv.Atoi(string(digits[8:10]))
	min, _ := strconv.Atoi(string(digits[10:12]))
	sec, _ := strconv.Atoi(string(digits[12:14]))
	return time.Date(year, time.Month(month), day, hour, min, sec, 0, time.UTC), true
}
