package bert_prep

import (
	"strings"
	"unicode"
)

// isWhitespace treats \t, \n and \r as whitespace even though Unicode
// classes them as control characters.
func isWhitespace(r rune) bool {
	if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

func isControl(r rune) bool {
	if r == '\t' || r == '\n' || r == '\r' {
		return false
	}
	return unicode.In(r, unicode.C)
}

// isPunctuation counts every non-alphanumeric ASCII symbol as punctuation,
// e.g. `^`, `$` and backtick, in addition to the Unicode P classes.
func isPunctuation(r rune) bool {
	if (r >= 33 && r <= 47) || (r >= 58 && r <= 64) ||
		(r >= 91 && r <= 96) || (r >= 123 && r <= 126) {
		return true
	}
	return unicode.IsPunct(r)
}

// isChineseChar reports whether r is in the CJK Unified Ideographs blocks.
// Hangul and kana are written with spaces and are not included.
func isChineseChar(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) ||
		(r >= 0x3400 && r <= 0x4DBF) ||
		(r >= 0x20000 && r <= 0x2A6DF) ||
		(r >= 0x2A700 && r <= 0x2B73F) ||
		(r >= 0x2B740 && r <= 0x2B81F) ||
		(r >= 0x2B820 && r <= 0x2CEAF) ||
		(r >= 0xF900 && r <= 0xFAFF) ||
		(r >= 0x2F800 && r <= 0x2FA1F)
}

// whitespaceTokenize splits on runs of whitespace, dropping empty pieces.
func whitespaceTokenize(text string) []string {
	return strings.Fields(text)
}
