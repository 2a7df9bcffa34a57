package types

type Token uint32
type Tokens []Token
type TokenMap map[string]Token

// Vocab is a wordpiece vocabulary: Pieces holds the piece text for each
// token id, Encoder the reverse mapping.
type Vocab struct {
	Encoder TokenMap
	Pieces  []string
}
