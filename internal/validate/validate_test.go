package validate

import (
	"testing"

	"github.com/brokenblock/textcarve/internal/candidate"
)

func TestTextContinuesOnPureText(t *testing.T) {
	c := &candidate.Candidate{}
	window := []byte("plain ascii text plain ascii text")
	status := Text(c, window)
	if status != candidate.StatusContinue {
		t.Fatalf("status = %v, want StatusContinue", status)
	}
	if c.CalculatedSize != uint64(len(window)/2) {
		t.Fatalf("CalculatedSize = %d, want %d", c.CalculatedSize, len(window)/2)
	}
}

func TestTextStopsOnRejectedByte(t *testing.T) {
	c := &candidate.Candidate{FileSize: 1000}
	half := []byte("0123456789abcdefghij")
	tail := append([]byte{}, half...)
	tail = append(tail, 0x01, 'j', 'u', 'n', 'k')
	window := append(half, tail...)
	status := Text(c, window)
	if status != candidate.StatusStop {
		t.Fatalf("status = %v, want StatusStop", status)
	}
}

func TestTTDStopsOnNonHexByte(t *testing.T) {
	c := &candidate.Candidate{FileSize: 0}
	half := []byte("0123456789ABCDEF")
	window := append(append([]byte{}, half...), append([]byte("AB"), 'z')...)
	status := TTD(c, window)
	if status != candidate.StatusStop {
		t.Fatalf("status = %v, want StatusStop", status)
	}
}

func TestTTDContinuesOnAllHex(t *testing.T) {
	c := &candidate.Candidate{}
	half := []byte("0123 ABCDEF\n0123")
	window := append(append([]byte{}, half...), half...)
	status := TTD(c, window)
	if status != candidate.StatusContinue {
		t.Fatalf("status = %v, want StatusContinue", status)
	}
}

func TestUTF16LERejectsNonZeroHighByte(t *testing.T) {
	window := make([]byte, 60)
	for i := 0; i < len(window); i += 2 {
		window[i] = 'a'
		window[i+1] = 0
	}
	window[50] = 'x'
	window[51] = 'y' // non-zero high byte past the 40-byte floor
	r := UTF16LE(window, false, nil, candidate.DefaultSuppressRules())
	if !r.Recognized || r.Candidate.Extension != "utf16" {
		t.Fatalf("UTF16LE = %+v, want a utf16 candidate", r)
	}
	if r.Candidate.CalculatedSize != 50 {
		t.Fatalf("CalculatedSize = %d, want 50", r.Candidate.CalculatedSize)
	}
}

func TestUTF16LEDeclinesFailureBeforeFloor(t *testing.T) {
	window := make([]byte, 20)
	window[1] = 0xFF // fails immediately, well before the 40-byte floor
	r := UTF16LE(window, false, nil, candidate.DefaultSuppressRules())
	if r.Recognized {
		t.Fatalf("UTF16LE = %+v, want NotRecognized", r)
	}
}

func TestEMLXDiscardsShortFile(t *testing.T) {
	c := &candidate.Candidate{CalculatedSize: 500, FileSize: 100}
	EMLX(c, []byte("whatever"))
	if c.FileSize != 0 {
		t.Fatalf("FileSize = %d, want 0", c.FileSize)
	}
}

func TestEMLXBoundsSearchAndFindsFooter(t *testing.T) {
	c := &candidate.Candidate{CalculatedSize: 10, FileSize: 3000}
	tail := make([]byte, 10)
	tail = append(tail, []byte("</plist>\n")...)
	tail = append(tail, make([]byte, 500)...)
	EMLX(c, tail)
	if c.FileSize != uint64(10+len("</plist>\n")) {
		t.Fatalf("FileSize = %d, want %d", c.FileSize, 10+len("</plist>\n"))
	}
}

func TestXMLFooterSearchSetsToleranceFlag(t *testing.T) {
	c := &candidate.Candidate{}
	XML(c, []byte("<xml>stuff</xml>"))
	if !c.TolerantNewlines {
		t.Fatal("XML did not set TolerantNewlines")
	}
	if c.FileSize == 0 {
		t.Fatal("XML did not locate a footer")
	}
}
