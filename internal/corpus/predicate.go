// Package corpus implements the text-character predicate and the UTF-8
// folding pass that the rest of textcarve builds on.
package corpus

// IsText reports whether b is "text-plausible": ASCII-printable, one of the
// four control whitespace bytes the recovered formats actually use, or one
// of a curated set of high-bit Latin-1/CP-1252 bytes. This table is pinned
// byte-for-byte against testdisk's file_txt.c filtre(); it is not a general
// UTF-8 or Latin-1 validity check, and no byte outside it is ever accepted.
func IsText(b byte) bool {
	switch b {
	case 0x08, 0x09, 0x0A, 0x0D:
		return true
	case 0x7C, 0x80, 0x92, 0x99, 0x9C,
		0xA0, 0xA1, 0xA2, 0xA3, 0xA7, 0xA8, 0xA9, 0xAB, 0xAE, 0xB0, 0xB4, 0xB7, 0xBB,
		0xC0, 0xC7, 0xC9, 0xD6, 0xD7, 0xD9, 0xDF,
		0xE0, 0xE1, 0xE2, 0xE3, 0xE4, 0xE6, 0xE7, 0xE8, 0xE9, 0xEA, 0xEB, 0xED, 0xEE, 0xEF,
		0xF4, 0xF6, 0xF8, 0xF9, 0xFA, 0xFB, 0xFC:
		return true
	}
	if b >= 0x20 && b <= 0x7E {
		return true
	}
	if b >= 0x82 && b <= 0x8D {
		return true
	}
	if b >= 0x93 && b <= 0x98 {
		return true
	}
	return false
}

// isUTF8Lead reports whether b can start a multi-byte sequence the folder
// knows how to decode (the lead bytes its 2-byte and 3-byte tables cover).
// These are exactly the extra single-byte trigger values the heuristic
// classifier registers itself against, alongside every IsText byte.
func isUTF8Lead(b byte) bool {
	switch b {
	case 0xC2, 0xC3, 0xC5, 0xC6, 0xCB, 0xE2:
		return true
	}
	return false
}

// TriggerBytes returns the full set of single-byte values the heuristic
// classifier registers one entry per: every text-plausible byte plus the
// UTF-8 lead bytes the folder can decode.
func TriggerBytes() []byte {
	var out []byte
	for b := 0; b < 256; b++ {
		if IsText(byte(b)) || isUTF8Lead(byte(b)) {
			out = append(out, byte(b))
		}
	}
	return out
}
