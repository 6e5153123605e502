package magic

import (
	"github.com/brokenblock/textcarve/internal/classify"
	"github.com/brokenblock/textcarve/internal/corpus"
	"github.com/brokenblock/textcarve/internal/validate"
)

// RegisterFastText wires the full fast-text magic catalog into reg, one
// Entry per magic, all sharing classify.FastText — mirroring
// register_header_check_fasttxt's single recognizer shared by every
// registration.
func RegisterFastText(reg *Registry) {
	for _, pattern := range [][]byte{
		classify.MagicCls,
		classify.MagicHTML,
		classify.MagicJSON,
		classify.MagicImm,
		classify.MagicMail,
		classify.MagicReturnPath,
		classify.MagicMail2,
		classify.MagicMdl,
		classify.MagicPerlm,
		classify.MagicRpp,
		classify.MagicRtf,
		classify.MagicReg,
		classify.MagicSessionstore,
		classify.MagicSh,
		classify.MagicBash,
		classify.MagicKsh,
		classify.MagicSlk,
		classify.MagicSeenezsst,
		classify.MagicSnzUnix,
		classify.MagicSnzWin,
		classify.MagicMysql,
		classify.MagicPhpMyAdmin,
		classify.MagicPostgreSQL,
		classify.MagicPostgreSQLWin,
		classify.MagicStl,
		classify.MagicErs,
		classify.MagicHdr,
		classify.MagicEmka,
		classify.MagicQgis,
		classify.MagicStp,
		classify.MagicTtd,
		classify.MagicURL,
		classify.MagicWpl,
		classify.MagicRam,
		classify.MagicXML,
		classify.MagicXMLUTF8,
		classify.MagicDif,
		classify.MagicIcs,
		classify.MagicJad,
		classify.MagicLy,
		classify.MagicLyx,
		classify.MagicM3u,
		classify.MagicMnemosyne,
		classify.MagicMsf,
		classify.MagicAdr,
		classify.MagicCue1,
		classify.MagicCue2,
		classify.MagicSmil,
		classify.MagicXmp,
		classify.MagicVbookmark,
	} {
		reg.Register(0, pattern, classify.FastText)
	}
	// TSCe Survey Controller DC: a nonzero start offset.
	reg.Register(4, classify.MagicDC, classify.FastText)
	// UTF-16 LE text: registered at offset 1 against a NUL high byte,
	// mirroring register_header_check(1, &ascii_char[0], 1,
	// &header_check_le16_txt, ...).
	reg.Register(1, []byte{0x00}, validate.UTF16LE)
}

// RegisterHeuristic subscribes classify.Heuristic to every byte the
// text-character predicate or the UTF-8 fold accepts as a lead byte —
// the registration corresponding to register_header_check_txt's
// per-filtre()-passing-byte loop plus its UTF-8 lead-byte additions.
func RegisterHeuristic(reg *Registry) {
	for _, b := range corpus.TriggerBytes() {
		reg.RegisterByte(b, classify.Heuristic)
	}
}

// RegisterCatalog populates reg with the complete fast-text and
// heuristic registrations. The caller still owns sealing:
//
//	reg := NewRegistry()
//	RegisterCatalog(reg)
//	reg = reg.Seal()
func RegisterCatalog(reg *Registry) {
	RegisterFastText(reg)
	RegisterHeuristic(reg)
}
