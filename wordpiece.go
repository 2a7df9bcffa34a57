package bert_prep

import (
	"errors"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru"
	"github.com/wbrown/bert_prep/types"
)

const WORDPIECE_LRU_SZ = 65536
const MAX_INPUT_CHARS_PER_WORD = 100

// WordpieceTokenizer
// Greedy longest-match-first segmentation of words into vocabulary pieces.
// Pieces after the first in a word carry the `##` continuation prefix.
type WordpieceTokenizer struct {
	Vocab                *types.Vocab
	UnkToken             string
	MaxInputCharsPerWord int
	Cache                *lru.ARCCache
	LruHits              int
	LruMisses            int
}

func NewWordpieceTokenizer(vocab *types.Vocab) (*WordpieceTokenizer, error) {
	if vocab == nil || vocab.Len() == 0 {
		return nil, errors.New("wordpiece tokenizer requires a " +
			"non-empty vocabulary")
	}
	cache, err := lru.NewARC(WORDPIECE_LRU_SZ)
	if err != nil {
		return nil, err
	}
	return &WordpieceTokenizer{
		Vocab:                vocab,
		UnkToken:             UnkToken,
		MaxInputCharsPerWord: MAX_INPUT_CHARS_PER_WORD,
		Cache:                cache,
	}, nil
}

// Tokenize segments text that has already been through BasicTokenizer.
func (wp *WordpieceTokenizer) Tokenize(text string) []string {
	outputTokens := make([]string, 0)
	for _, token := range whitespaceTokenize(text) {
		outputTokens = append(outputTokens, wp.tokenizeWord(token)...)
	}
	return outputTokens
}

func (wp *WordpieceTokenizer) tokenizeWord(word string) []string {
	if lookup, ok := wp.Cache.Get(word); ok {
		wp.LruHits++
		return lookup.([]string)
	} else {
		wp.LruMisses++
	}
	pieces := wp.segment(word)
	wp.Cache.Add(word, pieces)
	return pieces
}

func (wp *WordpieceTokenizer) segment(word string) []string {
	if utf8.RuneCountInString(word) > wp.MaxInputCharsPerWord {
		return []string{wp.UnkToken}
	}
	chars := []rune(word)
	subTokens := make([]string, 0, 2)
	start := 0
	for start < len(chars) {
		end := len(chars)
		found := ""
		for start < end {
			substr := string(chars[start:end])
			if start > 0 {
				substr = "##" + substr
			}
			if wp.Vocab.Contains(substr) {
				found = substr
				break
			}
			end--
		}
		if found == "" {
			return []string{wp.UnkToken}
		}
		subTokens = append(subTokens, found)
		start = end
	}
	return subTokens
}
