package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/wbrown/bert_prep"
	"github.com/wbrown/bert_prep/records"
	"github.com/wbrown/bert_prep/types"
	"github.com/yargevad/filepathx"
)

type PathInfo struct {
	Path string
	Size int64
}

// GlobRecords
// Given a file or directory path, returns the record file itself or all
// `.tf_record` files found recursively beneath the directory, sorted by path.
func GlobRecords(inputPath string) ([]PathInfo, error) {
	stat, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}
	if !stat.IsDir() {
		return []PathInfo{{Path: inputPath, Size: stat.Size()}}, nil
	}
	recordPaths, err := filepathx.Glob(inputPath + "/**/*.tf_record")
	if err != nil {
		return nil, err
	}
	if len(recordPaths) == 0 {
		return nil, errors.New(fmt.Sprintf(
			"%s does not contain any .tf_record files", inputPath))
	}
	pathInfos := make([]PathInfo, 0, len(recordPaths))
	for _, recordPath := range recordPaths {
		recordStat, statErr := os.Stat(recordPath)
		if statErr != nil {
			return nil, statErr
		}
		pathInfos = append(pathInfos, PathInfo{
			Path: recordPath,
			Size: recordStat.Size(),
		})
	}
	sort.Slice(pathInfos, func(i, j int) bool {
		return pathInfos[i].Path < pathInfos[j].Path
	})
	return pathInfos, nil
}

func joinInt64s(values []int64) string {
	var sb strings.Builder
	for idx, value := range values {
		if idx > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(fmt.Sprint(value))
	}
	return sb.String()
}

// describeFeature renders the unpadded part of a feature, as wordpieces when
// a tokenizer is given and as ids otherwise.
func describeFeature(feature *records.Feature,
	tokenizer *bert_prep.FullTokenizer) (string, error) {
	length := feature.Len()
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("label=%d len=%d/%d\n", feature.LabelId,
		length, len(feature.InputIds)))
	if tokenizer != nil {
		ids, err := types.TokensFromInt64s(feature.InputIds[:length])
		if err != nil {
			return "", err
		}
		tokens, err := tokenizer.ConvertIdsToTokens(*ids)
		if err != nil {
			return "", err
		}
		sb.WriteString("  tokens:   " + strings.Join(tokens, " ") + "\n")
	} else {
		sb.WriteString("  ids:      " +
			joinInt64s(feature.InputIds[:length]) + "\n")
	}
	sb.WriteString("  segments: " +
		joinInt64s(feature.SegmentIds[:length]) + "\n")
	return sb.String(), nil
}

var errLimitReached = errors.New("record limit reached")

// InspectRecords
// Writes a description of up to limit records from each file to w. A limit
// of zero or less prints every record. Returns the number of records read.
func InspectRecords(w io.Writer, pathInfos []PathInfo,
	tokenizer *bert_prep.FullTokenizer, limit int) (int, error) {
	total := 0
	for _, pathInfo := range pathInfos {
		fmt.Fprintf(w, "== %s (%s) ==\n", pathInfo.Path,
			humanize.Bytes(uint64(pathInfo.Size)))
		file, err := os.Open(pathInfo.Path)
		if err != nil {
			return total, err
		}
		recordIdx := 0
		err = records.EachFeature(file, func(feature *records.Feature) error {
			if limit > 0 && recordIdx >= limit {
				return errLimitReached
			}
			description, descErr := describeFeature(feature, tokenizer)
			if descErr != nil {
				return descErr
			}
			fmt.Fprintf(w, "#%d %s", recordIdx, description)
			recordIdx++
			return nil
		})
		file.Close()
		total += recordIdx
		if err != nil && err != errLimitReached {
			return total, fmt.Errorf("%s: %w", pathInfo.Path, err)
		}
	}
	return total, nil
}

func main() {
	inputPath := flag.String("input", "",
		"record file, or directory to search for .tf_record files")
	vocabFile := flag.String("vocab_file", "",
		"vocabulary to detokenize with; ids are printed if empty")
	doLowerCase := flag.Bool("do_lower_case", true,
		"whether the vocabulary is uncased")
	limit := flag.Int("limit", 10,
		"maximum records to print per file, 0 for all")
	flag.Parse()

	if *inputPath == "" {
		flag.Usage()
		log.Fatal("Must provide -input")
	}

	var tokenizer *bert_prep.FullTokenizer
	if *vocabFile != "" {
		var err error
		if tokenizer, err = bert_prep.NewFullTokenizer(*vocabFile,
			*doLowerCase); err != nil {
			log.Fatal(err)
		}
	}

	pathInfos, err := GlobRecords(*inputPath)
	if err != nil {
		log.Fatal(err)
	}
	total, err := InspectRecords(os.Stdout, pathInfos, tokenizer, *limit)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Read %d records from %d files", total, len(pathInfos))
}
