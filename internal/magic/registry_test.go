package magic

import (
	"testing"

	"github.com/brokenblock/textcarve/internal/candidate"
)

func stubRecognizer(window []byte, safeHeaderOnly bool, prior *candidate.Candidate, suppress candidate.SuppressRules) candidate.Result {
	return candidate.Recognized(candidate.Candidate{Extension: "stub"})
}

func TestRegisterAndSeal(t *testing.T) {
	reg := NewRegistry()
	reg.Register(0, []byte("MAGIC"), stubRecognizer)
	reg.RegisterByte('M', stubRecognizer)
	reg = reg.Seal()

	if len(reg.fastText) != 1 {
		t.Fatalf("fastText entries = %d, want 1", len(reg.fastText))
	}
	if _, ok := reg.heuristic['M']; !ok {
		t.Fatalf("heuristic['M'] not registered")
	}
}

func TestSealedRegistryPanicsOnRegister(t *testing.T) {
	reg := NewRegistry().Seal()
	defer func() {
		if recover() == nil {
			t.Fatal("Register on sealed Registry did not panic")
		}
	}()
	reg.Register(0, []byte("X"), stubRecognizer)
}

func TestEntryMatchesRespectsOffsetAndBounds(t *testing.T) {
	e := Entry{Offset: 4, Pattern: []byte("SC V10")}
	if e.matches([]byte("0000SC V1")) {
		t.Fatal("matches() = true for a pattern that runs off the end")
	}
	if !e.matches([]byte("0000SC V10")) {
		t.Fatal("matches() = false for an exact fit")
	}
}

func TestRegisterCatalogPopulatesBothTables(t *testing.T) {
	reg := NewRegistry()
	RegisterCatalog(reg)
	reg = reg.Seal()
	if len(reg.fastText) == 0 {
		t.Fatal("RegisterCatalog produced no fast-text entries")
	}
	if len(reg.heuristic) == 0 {
		t.Fatal("RegisterCatalog produced no heuristic entries")
	}
}
