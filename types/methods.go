package types

import "fmt"

// NewVocab builds a Vocab from pieces ordered by token id. When a piece is
// repeated, the later id wins in the Encoder.
func NewVocab(pieces []string) *Vocab {
	encoder := make(TokenMap, len(pieces))
	for idx, piece := range pieces {
		encoder[piece] = Token(idx)
	}
	return &Vocab{
		Encoder: encoder,
		Pieces:  pieces,
	}
}

func (vocab *Vocab) Len() int {
	return len(vocab.Pieces)
}

// Get
// Looks up a piece in the vocabulary, returning nil if it is absent.
func (vocab *Vocab) Get(piece string) *Token {
	if token, ok := vocab.Encoder[piece]; ok {
		return &token
	}
	return nil
}

func (vocab *Vocab) Contains(piece string) bool {
	_, ok := vocab.Encoder[piece]
	return ok
}

// Piece returns the piece text for a token id.
func (vocab *Vocab) Piece(token Token) (string, error) {
	if int(token) >= len(vocab.Pieces) {
		return "", fmt.Errorf("token id %d out of range for vocab of "+
			"size %d", token, len(vocab.Pieces))
	}
	return vocab.Pieces[token], nil
}

func (tokens *Tokens) ToInt64s() []int64 {
	values := make([]int64, len(*tokens))
	for idx, token := range *tokens {
		values[idx] = int64(token)
	}
	return values
}

// TokensFromInt64s converts int64 feature values back into Tokens, failing
// on values that cannot be token ids.
func TokensFromInt64s(values []int64) (*Tokens, error) {
	tokens := make(Tokens, 0, len(values))
	for _, value := range values {
		if value < 0 || value > int64(^uint32(0)) {
			return nil, fmt.Errorf("integer overflow: %d is not a valid "+
				"token id", value)
		}
		tokens = append(tokens, Token(value))
	}
	return &tokens, nil
}
