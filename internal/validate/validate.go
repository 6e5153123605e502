// Package validate implements the incremental data-checks that decide,
// window by window, whether a growing candidate is still text, and the
// footer-search file-checks that fix a candidate's final size once
// streaming stops.
package validate

import (
	"bytes"

	"github.com/brokenblock/textcarve/internal/candidate"
	"github.com/brokenblock/textcarve/internal/corpus"
)

// minAcceptedFold is the same "at least 10 folded bytes" floor the
// heuristic classifier and the text data-check both apply.
const minAcceptedFold = 10

// Text is data_check_txt. The driver hands each new window; only the
// upper half is "new" (the lower half was already accounted for in
// FileSize). Fold the new half; if folding runs out before the half's
// end, a byte failed the text predicate and the file ends there.
func Text(c *candidate.Candidate, window []byte) candidate.CheckStatus {
	half := len(window) / 2
	newBytes := window[half:]
	scratch := make([]byte, len(newBytes)+16)
	written, consumed := corpus.Fold(scratch, newBytes)
	if consumed < len(newBytes) {
		lower := scratch[:written]
		if pos := htmlEndTruncation(c, lower, consumed); pos >= 0 {
			c.CalculatedSize = c.FileSize + uint64(pos)
			return candidate.StatusStop
		}
		if consumed >= minAcceptedFold {
			c.CalculatedSize = c.FileSize + uint64(consumed)
		}
		return candidate.StatusStop
	}
	c.CalculatedSize += uint64(half)
	return candidate.StatusContinue
}

// htmlEndTruncation implements the ".html truncate at </html>" special
// case folded into data_check_txt: if the candidate's filename ends in
// .html, the fold found a "</html>" close tag, and termination landed
// within 10 bytes of that tag, the file ends just past the tag instead
// of at the raw termination point. Returns -1 when the special case does
// not apply.
func htmlEndTruncation(c *candidate.Candidate, lower []byte, consumed int) int {
	if !hasSuffixFold(c.Filename, ".html") {
		return -1
	}
	const closeTag = "</html>"
	idx := bytes.Index(lower, []byte(closeTag))
	if idx < 0 {
		return -1
	}
	end := idx + len(closeTag)
	if consumed < end+10 {
		return end
	}
	return -1
}

func hasSuffixFold(s, suffix string) bool {
	if len(s) < len(suffix) {
		return false
	}
	return bytes.EqualFold([]byte(s[len(s)-len(suffix):]), []byte(suffix))
}

// TTD is data_check_ttd: the terminator is the first byte outside
// [0-9A-F \n] in the window's second half.
func TTD(c *candidate.Candidate, window []byte) candidate.CheckStatus {
	half := len(window) / 2
	for i := half; i < len(window); i++ {
		b := window[i]
		if (b >= 'A' && b <= 'F') || (b >= '0' && b <= '9') || b == ' ' || b == '\n' {
			continue
		}
		c.CalculatedSize = c.FileSize + uint64(i-half)
		return candidate.StatusStop
	}
	c.CalculatedSize = c.FileSize + uint64(half)
	return candidate.StatusContinue
}

// Size is data_check_size: used by the UTF-16 LE recognizer, which has
// already computed a final size at header time. It simply trusts the
// driver's own size tracking.
func Size(c *candidate.Candidate, window []byte) candidate.CheckStatus {
	return candidate.StatusContinue
}

// UTF16LE is the UTF-16 LE text recognizer. It is registered at offset 1
// against a NUL high byte, mirroring the
// original's "subscribe header_check_le16_txt to ascii_char[0] at
// offset 1" registration.
func UTF16LE(window []byte, safeHeaderOnly bool, prior *candidate.Candidate, suppress candidate.SuppressRules) candidate.Result {
	i := 0
	for ; i+1 < len(window); i += 2 {
		hi, lo := window[i+1], window[i]
		ok := hi == 0 && (isPrintASCII(lo) || lo == '\n' || lo == '\r' || lo == 0xBB)
		if !ok {
			if i < 40 {
				return candidate.NotRecognized
			}
			return candidate.Recognized(candidate.Candidate{
				Extension:      "utf16",
				CalculatedSize: uint64(i),
				DataCheck:      Size,
				FileCheck:      Size16,
				Identity:       candidate.IdentityPlainText,
			})
		}
	}
	return candidate.Recognized(candidate.Candidate{
		Extension:      "utf16",
		CalculatedSize: uint64(i),
		DataCheck:      Size,
		FileCheck:      Size16,
		Identity:       candidate.IdentityPlainText,
	})
}

func isPrintASCII(b byte) bool {
	return b >= 0x20 && b < 0x7F
}

// Size16 is file_check_size for the UTF-16 path: a no-op, it trusts the
// calculated size already fixed at header time.
func Size16(c *candidate.Candidate, tail []byte) {}

// SizeCheck is file_check_size proper: the plain-data file-check used by
// nearly every fast-text arm. It trusts CalculatedSize and does not
// search for a footer.
func SizeCheck(c *candidate.Candidate, tail []byte) {}

// searchFooter locates footer within tail and, if found, sets FileSize to
// the offset immediately after it. Mirrors file_search_footer's "keep the
// last occurrence no later than FileSize" contract in the simplified form
// this package needs: a single search for the last occurrence in tail is
// sufficient because tail is exactly the bytes already committed to disk.
func searchFooter(c *candidate.Candidate, tail []byte, footer []byte) {
	idx := bytes.LastIndex(tail, footer)
	if idx < 0 {
		return
	}
	c.FileSize = uint64(idx + len(footer))
}

func allowNewlines(c *candidate.Candidate) {
	c.TolerantNewlines = true
}

// XML is file_check_xml: footer is a bare '>', with newline tolerance.
func XML(c *candidate.Candidate, tail []byte) {
	searchFooter(c, tail, []byte(">"))
	allowNewlines(c)
}

// SVG is file_check_svg: footer is "</svg>".
func SVG(c *candidate.Candidate, tail []byte) {
	searchFooter(c, tail, []byte("</svg>"))
	allowNewlines(c)
}

// SMIL is file_check_smil: footer is "</smil>".
func SMIL(c *candidate.Candidate, tail []byte) {
	searchFooter(c, tail, []byte("</smil>"))
	allowNewlines(c)
}

// ERS is file_check_ers: footer is "DatasetHeader End".
func ERS(c *candidate.Candidate, tail []byte) {
	searchFooter(c, tail, []byte("DatasetHeader End"))
	allowNewlines(c)
}

// emlxFooter is the EMLX plist closing tag followed by its trailing
// newline, byte-exact against the original's emlx_footer array.
var emlxFooter = []byte("</plist>\n")

// EMLX is file_check_emlx: bound the search window to calculated_size +
// 2048 bytes, discarding entirely if the driver's committed size never
// reached calculated_size in the first place.
func EMLX(c *candidate.Candidate, tail []byte) {
	if c.FileSize < c.CalculatedSize {
		c.FileSize = 0
		return
	}
	if c.FileSize > c.CalculatedSize+2048 {
		c.FileSize = c.CalculatedSize + 2048
		if uint64(len(tail)) > c.FileSize {
			tail = tail[:c.FileSize]
		}
	}
	searchFooter(c, tail, emlxFooter)
}
