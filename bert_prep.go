package bert_prep

import (
	"fmt"

	"github.com/wbrown/bert_prep/resources"
	"github.com/wbrown/bert_prep/types"
)

const (
	ClsToken = "[CLS]"
	SepToken = "[SEP]"
	UnkToken = "[UNK]"
	PadToken = "[PAD]"
)

// FullTokenizer runs basic tokenization followed by wordpiece
// segmentation against a single vocabulary.
type FullTokenizer struct {
	Vocab     *types.Vocab
	Basic     BasicTokenizer
	Wordpiece *WordpieceTokenizer
}

// NewFullTokenizer
// Resolves the vocabulary at vocabId (a local path or URL) and returns a
// tokenizer for it.
func NewFullTokenizer(vocabId string, doLowerCase bool) (*FullTokenizer,
	error) {
	vocab, err := resources.ResolveVocab(vocabId)
	if err != nil {
		return nil, err
	}
	return NewFullTokenizerFromVocab(vocab, doLowerCase)
}

func NewFullTokenizerFromVocab(vocab *types.Vocab,
	doLowerCase bool) (*FullTokenizer, error) {
	wordpiece, err := NewWordpieceTokenizer(vocab)
	if err != nil {
		return nil, err
	}
	return &FullTokenizer{
		Vocab:     vocab,
		Basic:     BasicTokenizer{DoLowerCase: doLowerCase},
		Wordpiece: wordpiece,
	}, nil
}

// Tokenize splits text into wordpieces.
func (tokenizer *FullTokenizer) Tokenize(text string) []string {
	splitTokens := make([]string, 0)
	for _, token := range tokenizer.Basic.Tokenize(text) {
		splitTokens = append(splitTokens,
			tokenizer.Wordpiece.Tokenize(token)...)
	}
	return splitTokens
}

// ConvertTokensToIds maps pieces to their vocabulary ids. A piece missing
// from the vocabulary is an error.
func (tokenizer *FullTokenizer) ConvertTokensToIds(
	tokens []string) (types.Tokens, error) {
	ids := make(types.Tokens, len(tokens))
	for idx, token := range tokens {
		id := tokenizer.Vocab.Get(token)
		if id == nil {
			return nil, fmt.Errorf("token %q is not in the vocabulary",
				token)
		}
		ids[idx] = *id
	}
	return ids, nil
}

func (tokenizer *FullTokenizer) ConvertIdsToTokens(
	ids types.Tokens) ([]string, error) {
	tokens := make([]string, len(ids))
	for idx, id := range ids {
		piece, err := tokenizer.Vocab.Piece(id)
		if err != nil {
			return nil, err
		}
		tokens[idx] = piece
	}
	return tokens, nil
}
