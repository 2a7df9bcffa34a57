package resources

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/wbrown/bert_prep/types"
)

// LoadVocab
// Loads a vocabulary from disk. Paths ending in `.model` are read as
// SentencePiece models; anything else is a text file holding one piece per
// line, where the line number is the token id.
func LoadVocab(vocabPath string) (*types.Vocab, error) {
	if strings.HasSuffix(vocabPath, ".model") {
		return LoadSentencePieceVocab(vocabPath)
	}
	return LoadTextVocab(vocabPath)
}

// LoadTextVocab maps a one-piece-per-line vocabulary file into memory and
// parses it. Surrounding whitespace is stripped from each piece; blank lines
// still consume an id.
func LoadTextVocab(vocabPath string) (*types.Vocab, error) {
	file, err := os.Open(vocabPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}
	if stat.Size() == 0 {
		return nil, errors.New(fmt.Sprintf("vocab file `%s` is empty",
			vocabPath))
	}
	fileMmap, mmapErr := readMmap(file)
	if mmapErr != nil {
		return nil, errors.New(fmt.Sprintf("error trying to mmap file: %s",
			mmapErr))
	}
	defer fileMmap.Unmap()
	return parseVocab(fileMmap)
}

func parseVocab(data []byte) (*types.Vocab, error) {
	pieces := make([]string, 0, 32768)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		pieces = append(pieces, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return types.NewVocab(pieces), nil
}
