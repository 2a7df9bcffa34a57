// Package records turns labeled examples into fixed-length BERT input
// features and serializes them as tf.train.Example protos in TFRecord files.
package records

import (
	"fmt"

	"github.com/wbrown/bert_prep/tasks"
	"github.com/wbrown/bert_prep/types"
)

const (
	ClsToken = "[CLS]"
	SepToken = "[SEP]"
)

// Tokenizer is the subset of a wordpiece tokenizer the record writer needs.
type Tokenizer interface {
	Tokenize(text string) []string
	ConvertTokensToIds(tokens []string) (types.Tokens, error)
}

// Feature is one fixed-length model input. InputIds, InputMask and
// SegmentIds always have the same length.
type Feature struct {
	InputIds   []int64
	InputMask  []int64
	SegmentIds []int64
	LabelId    int64
}

// LabelError reports an example whose label is not in the task's label set.
type LabelError struct {
	Label string
	Guid  string
}

func (e *LabelError) Error() string {
	return fmt.Sprintf("example %s: label `%s` is not in the label set",
		e.Guid, e.Label)
}

// TruncateSeqPair trims a pair of token sequences until their combined
// length is at most maxLength. Tokens are removed one at a time from the end
// of the longer sequence; on a tie the second sequence loses a token.
func TruncateSeqPair(tokensA, tokensB []string, maxLength int) ([]string,
	[]string) {
	for len(tokensA)+len(tokensB) > maxLength {
		if len(tokensA) > len(tokensB) {
			tokensA = tokensA[:len(tokensA)-1]
		} else {
			tokensB = tokensB[:len(tokensB)-1]
		}
	}
	return tokensA, tokensB
}

// ConvertExample tokenizes an example and lays it out as
// `[CLS] a [SEP]` or `[CLS] a [SEP] b [SEP]`, truncated and zero-padded to
// maxSeqLength. The first segment and its markers get segment id 0, the
// second segment and its trailing [SEP] get 1.
func ConvertExample(example tasks.Example, labels tasks.LabelSet,
	maxSeqLength int, tokenizer Tokenizer) (*Feature, error) {
	labelId, ok := labels.Index(example.Label)
	if !ok {
		return nil, &LabelError{Label: example.Label, Guid: example.Guid}
	}

	tokensA := tokenizer.Tokenize(example.TextA)
	var tokensB []string
	if example.TextB != "" {
		tokensB = tokenizer.Tokenize(example.TextB)
	}

	// An empty second segment is treated as absent.
	if len(tokensB) > 0 {
		if maxSeqLength < 3 {
			return nil, fmt.Errorf("max_seq_length %d cannot hold a "+
				"sequence pair", maxSeqLength)
		}
		tokensA, tokensB = TruncateSeqPair(tokensA, tokensB, maxSeqLength-3)
	} else {
		if maxSeqLength < 2 {
			return nil, fmt.Errorf("max_seq_length %d cannot hold a "+
				"sequence", maxSeqLength)
		}
		if len(tokensA) > maxSeqLength-2 {
			tokensA = tokensA[:maxSeqLength-2]
		}
	}

	tokens := make([]string, 0, maxSeqLength)
	segmentIds := make([]int64, 0, maxSeqLength)
	tokens = append(tokens, ClsToken)
	segmentIds = append(segmentIds, 0)
	for _, token := range tokensA {
		tokens = append(tokens, token)
		segmentIds = append(segmentIds, 0)
	}
	tokens = append(tokens, SepToken)
	segmentIds = append(segmentIds, 0)
	if len(tokensB) > 0 {
		for _, token := range tokensB {
			tokens = append(tokens, token)
			segmentIds = append(segmentIds, 1)
		}
		tokens = append(tokens, SepToken)
		segmentIds = append(segmentIds, 1)
	}

	ids, err := tokenizer.ConvertTokensToIds(tokens)
	if err != nil {
		return nil, fmt.Errorf("example %s: %w", example.Guid, err)
	}

	inputIds := ids.ToInt64s()
	inputMask := make([]int64, len(inputIds), maxSeqLength)
	for idx := range inputMask {
		inputMask[idx] = 1
	}
	for len(inputIds) < maxSeqLength {
		inputIds = append(inputIds, 0)
		inputMask = append(inputMask, 0)
		segmentIds = append(segmentIds, 0)
	}

	return &Feature{
		InputIds:   inputIds,
		InputMask:  inputMask,
		SegmentIds: segmentIds,
		LabelId:    int64(labelId),
	}, nil
}

// Len returns the number of real, unpadded tokens.
func (feature *Feature) Len() int {
	length := 0
	for _, m := range feature.InputMask {
		if m != 0 {
			length++
		}
	}
	return length
}
