package records

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/wbrown/bert_prep/tasks"
)

// Output file names per corpus split.
const (
	TrainFile   = "train.tf_record"
	EvalFile    = "eval.tf_record"
	PredictFile = "predict.tf_record"
)

const logEvery = 10000

// SplitCounts holds the number of records written for each split.
type SplitCounts struct {
	Train   int
	Eval    int
	Predict int
}

// WriteExamples
// Converts examples to features and writes them, in order, to a TFRecord
// file at outPath. The parent directory is created if needed and an existing
// file is overwritten. Returns the number of records written.
func WriteExamples(outPath string, examples []tasks.Example,
	labels tasks.LabelSet, tokenizer Tokenizer, maxSeqLength int) (int,
	error) {
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return 0, err
	}
	outFile, err := os.OpenFile(outPath, os.O_TRUNC|os.O_RDWR|os.O_CREATE,
		0644)
	if err != nil {
		return 0, err
	}
	written, writeErr := writeFeatures(outFile, examples, labels, tokenizer,
		maxSeqLength)
	if closeErr := outFile.Close(); writeErr == nil {
		writeErr = closeErr
	}
	return written, writeErr
}

func writeFeatures(w io.Writer, examples []tasks.Example,
	labels tasks.LabelSet, tokenizer Tokenizer, maxSeqLength int) (int,
	error) {
	writer := NewWriter(w)
	written := 0
	for exIdx, example := range examples {
		if exIdx%logEvery == 0 && exIdx > 0 {
			log.Printf("Writing example %d of %d", exIdx, len(examples))
		}
		feature, err := ConvertExample(example, labels, maxSeqLength,
			tokenizer)
		if err != nil {
			return written, err
		}
		if err = writer.Write(feature.MarshalExample()); err != nil {
			return written, err
		}
		written++
	}
	return written, writer.Flush()
}

// PrepareRecords
// Reads the train, dev and test splits of a task and writes them as
// train.tf_record, eval.tf_record and predict.tf_record in outputDir.
func PrepareRecords(processor tasks.Processor, tokenizer Tokenizer,
	dataDir string, maxSeqLength int, outputDir string) (SplitCounts,
	error) {
	var counts SplitCounts
	labels := processor.Labels()
	splits := []struct {
		name  string
		file  string
		read  func(string) ([]tasks.Example, error)
		count *int
	}{
		{"train", TrainFile, processor.TrainExamples, &counts.Train},
		{"dev", EvalFile, processor.DevExamples, &counts.Eval},
		{"test", PredictFile, processor.TestExamples, &counts.Predict},
	}
	for _, split := range splits {
		examples, err := split.read(dataDir)
		if err != nil {
			return counts, err
		}
		outPath := filepath.Join(outputDir, split.file)
		written, err := WriteExamples(outPath, examples, labels, tokenizer,
			maxSeqLength)
		if err != nil {
			return counts, fmt.Errorf("writing %s: %w", outPath, err)
		}
		*split.count = written
		size := uint64(0)
		if stat, statErr := os.Stat(outPath); statErr == nil {
			size = uint64(stat.Size())
		}
		log.Printf("Wrote %d %s records to %s (%s)", written, split.name,
			outPath, humanize.Bytes(size))
	}
	return counts, nil
}

// ReadFeatures reads every record of a TFRecord file written by
// WriteExamples.
func ReadFeatures(path string) ([]*Feature, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	features := make([]*Feature, 0)
	err = EachFeature(file, func(feature *Feature) error {
		features = append(features, feature)
		return nil
	})
	return features, err
}

// EachFeature decodes records from r until EOF, calling fn for each.
func EachFeature(r io.Reader, fn func(*Feature) error) error {
	reader := NewReader(r)
	for {
		data, err := reader.Next()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		feature, err := UnmarshalExample(data)
		if err != nil {
			return err
		}
		if err = fn(feature); err != nil {
			return err
		}
	}
}
