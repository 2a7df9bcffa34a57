package resources

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/vikesh-raj/go-sentencepiece-encoder/sentencepiece"
	"github.com/wbrown/bert_prep/types"
	"google.golang.org/protobuf/proto"
)

// SentencePiecePieces
// Returns the pieces of a SentencePiece model in id order. Byte pieces of
// the form `<0xNN>` are decoded to the byte they stand for, and the `▁`
// word-boundary marker is kept verbatim.
func SentencePiecePieces(model *sentencepiece.ModelProto) ([]string, error) {
	pieces := make([]string, len(model.GetPieces()))
	for pieceIdx, piece := range model.GetPieces() {
		repr := piece.GetPiece()
		if piece.GetType() == sentencepiece.ModelProto_SentencePiece_BYTE {
			if len(repr) != 6 || !strings.HasPrefix(repr, "<0x") {
				return nil, fmt.Errorf("malformed byte piece %q at %d",
					repr, pieceIdx)
			}
			decoded, hexErr := hex.DecodeString(repr[3:5])
			if hexErr != nil {
				return nil, fmt.Errorf("malformed byte piece %q at %d: %v",
					repr, pieceIdx, hexErr)
			}
			repr = string(decoded)
		}
		pieces[pieceIdx] = repr
	}
	return pieces, nil
}

// LoadSentencePieceVocab reads a serialized SentencePiece `.model` file and
// turns its pieces into a Vocab.
func LoadSentencePieceVocab(modelPath string) (*types.Vocab, error) {
	modelBytes, err := os.ReadFile(modelPath)
	if err != nil {
		return nil, err
	}
	var model sentencepiece.ModelProto
	if err = proto.Unmarshal(modelBytes, &model); err != nil {
		return nil, fmt.Errorf("unable to unmarshal `%s`: %w", modelPath,
			err)
	}
	pieces, err := SentencePiecePieces(&model)
	if err != nil {
		return nil, err
	}
	if len(pieces) == 0 {
		return nil, fmt.Errorf("`%s` contains no pieces", modelPath)
	}
	return types.NewVocab(pieces), nil
}
