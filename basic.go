package bert_prep

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// BasicTokenizer performs text cleanup, CJK separation, optional lower
// casing with accent stripping, and punctuation splitting.
type BasicTokenizer struct {
	DoLowerCase bool
}

func (basic BasicTokenizer) Tokenize(text string) []string {
	text = cleanText(text)
	text = tokenizeChineseChars(text)
	origTokens := whitespaceTokenize(text)
	splitTokens := make([]string, 0, len(origTokens))
	for _, token := range origTokens {
		if basic.DoLowerCase {
			token = strings.ToLower(token)
			token = stripAccents(token)
		}
		splitTokens = append(splitTokens, splitOnPunc(token)...)
	}
	return whitespaceTokenize(strings.Join(splitTokens, " "))
}

// cleanText drops NUL, the replacement character and control characters,
// and normalizes all whitespace to a plain space. Invalid UTF-8 decodes to
// U+FFFD and is dropped with it.
func cleanText(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if r == 0 || r == unicode.ReplacementChar || isControl(r) {
			continue
		}
		if isWhitespace(r) {
			sb.WriteRune(' ')
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func tokenizeChineseChars(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if isChineseChar(r) {
			sb.WriteRune(' ')
			sb.WriteRune(r)
			sb.WriteRune(' ')
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func stripAccents(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range norm.NFD.String(text) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// splitOnPunc makes every punctuation rune its own token.
func splitOnPunc(text string) []string {
	output := make([]string, 0, 1)
	begin := -1
	for idx, r := range text {
		if isPunctuation(r) {
			if begin >= 0 {
				output = append(output, text[begin:idx])
				begin = -1
			}
			output = append(output, string(r))
		} else if begin < 0 {
			begin = idx
		}
	}
	if begin >= 0 {
		output = append(output, text[begin:])
	}
	return output
}
