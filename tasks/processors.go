package tasks

import "fmt"

const (
	splitTrain = "train"
	splitDev   = "dev"
	splitTest  = "test"
)

func binaryLabels() LabelSet {
	return LabelSet{"0", "1"}
}

func nliLabels() LabelSet {
	return LabelSet{"contradiction", "entailment", "neutral"}
}

func guid(split string, idx int) string {
	return fmt.Sprintf("%s-%d", split, idx)
}

// MrpcProcessor handles the Microsoft Research Paraphrase Corpus (GLUE).
// Columns: quality, id1, id2, string1, string2.
type MrpcProcessor struct{}

func (MrpcProcessor) DataDir() string { return "MRPC" }
func (MrpcProcessor) Labels() LabelSet { return binaryLabels() }

func (p MrpcProcessor) TrainExamples(dataDir string) ([]Example, error) {
	return p.createExamples(dataDir, "train.tsv", splitTrain)
}

func (p MrpcProcessor) DevExamples(dataDir string) ([]Example, error) {
	return p.createExamples(dataDir, "dev.tsv", splitDev)
}

func (p MrpcProcessor) TestExamples(dataDir string) ([]Example, error) {
	return p.createExamples(dataDir, "test.tsv", splitTest)
}

func (MrpcProcessor) createExamples(dataDir, name, split string) ([]Example,
	error) {
	rows, err := readCorpus(dataDir, name)
	if err != nil {
		return nil, err
	}
	examples := make([]Example, 0, len(rows))
	for idx, r := range rows {
		if idx == 0 {
			continue
		}
		cols, err := r.columns(3, 4)
		if err != nil {
			return nil, err
		}
		label := "0"
		if split != splitTest {
			if label, err = r.field(0); err != nil {
				return nil, err
			}
		}
		examples = append(examples, Example{
			Guid:  guid(split, idx),
			TextA: cols[0],
			TextB: cols[1],
			Label: label,
		})
	}
	return examples, nil
}

// MnliProcessor handles MultiNLI (GLUE), matched dev and test sets.
type MnliProcessor struct{}

func (MnliProcessor) DataDir() string { return "MNLI" }
func (MnliProcessor) Labels() LabelSet { return nliLabels() }

func (p MnliProcessor) TrainExamples(dataDir string) ([]Example, error) {
	return p.createExamples(dataDir, "train.tsv", splitTrain)
}

func (p MnliProcessor) DevExamples(dataDir string) ([]Example, error) {
	return p.createExamples(dataDir, "dev_matched.tsv", splitDev)
}

func (p MnliProcessor) TestExamples(dataDir string) ([]Example, error) {
	return p.createExamples(dataDir, "test_matched.tsv", splitTest)
}

func (MnliProcessor) createExamples(dataDir, name, split string) ([]Example,
	error) {
	rows, err := readCorpus(dataDir, name)
	if err != nil {
		return nil, err
	}
	examples := make([]Example, 0, len(rows))
	for idx, r := range rows {
		if idx == 0 {
			continue
		}
		cols, err := r.columns(0, 8, 9)
		if err != nil {
			return nil, err
		}
		label := "contradiction"
		if split != splitTest {
			if label, err = r.field(-1); err != nil {
				return nil, err
			}
		}
		examples = append(examples, Example{
			Guid:  fmt.Sprintf("%s-%s", split, cols[0]),
			TextA: cols[1],
			TextB: cols[2],
			Label: label,
		})
	}
	return examples, nil
}

// ColaProcessor handles the Corpus of Linguistic Acceptability (GLUE). The
// train and dev files have no header; the test file does.
type ColaProcessor struct{}

func (ColaProcessor) DataDir() string { return "CoLA" }
func (ColaProcessor) Labels() LabelSet { return binaryLabels() }

func (p ColaProcessor) TrainExamples(dataDir string) ([]Example, error) {
	return p.createExamples(dataDir, "train.tsv", splitTrain)
}

func (p ColaProcessor) DevExamples(dataDir string) ([]Example, error) {
	return p.createExamples(dataDir, "dev.tsv", splitDev)
}

func (p ColaProcessor) TestExamples(dataDir string) ([]Example, error) {
	return p.createExamples(dataDir, "test.tsv", splitTest)
}

func (ColaProcessor) createExamples(dataDir, name, split string) ([]Example,
	error) {
	rows, err := readCorpus(dataDir, name)
	if err != nil {
		return nil, err
	}
	examples := make([]Example, 0, len(rows))
	for idx, r := range rows {
		example := Example{Guid: guid(split, idx)}
		if split == splitTest {
			if idx == 0 {
				continue
			}
			if example.TextA, err = r.field(1); err != nil {
				return nil, err
			}
			example.Label = "0"
		} else {
			cols, err := r.columns(3, 1)
			if err != nil {
				return nil, err
			}
			example.TextA = cols[0]
			example.Label = cols[1]
		}
		examples = append(examples, example)
	}
	return examples, nil
}

// XnliProcessor handles XNLI for a single language. Training data is the
// machine-translated MultiNLI file for that language; dev and test rows
// for other languages are skipped.
type XnliProcessor struct {
	Language string
}

func (XnliProcessor) DataDir() string { return "XNLI" }
func (XnliProcessor) Labels() LabelSet { return nliLabels() }

func (p XnliProcessor) TrainExamples(dataDir string) ([]Example, error) {
	name := fmt.Sprintf("multinli/multinli.train.%s.tsv", p.Language)
	rows, err := readCorpus(dataDir, name)
	if err != nil {
		return nil, err
	}
	examples := make([]Example, 0, len(rows))
	for idx, r := range rows {
		if idx == 0 {
			continue
		}
		cols, err := r.columns(0, 1, 2)
		if err != nil {
			return nil, err
		}
		label := cols[2]
		if label == "contradictory" {
			label = "contradiction"
		}
		examples = append(examples, Example{
			Guid:  guid(splitTrain, idx),
			TextA: cols[0],
			TextB: cols[1],
			Label: label,
		})
	}
	return examples, nil
}

func (p XnliProcessor) DevExamples(dataDir string) ([]Example, error) {
	return p.createEvalExamples(dataDir, "xnli.dev.tsv", splitDev)
}

func (p XnliProcessor) TestExamples(dataDir string) ([]Example, error) {
	return p.createEvalExamples(dataDir, "xnli.test.tsv", splitTest)
}

func (p XnliProcessor) createEvalExamples(dataDir, name,
	split string) ([]Example, error) {
	rows, err := readCorpus(dataDir, name)
	if err != nil {
		return nil, err
	}
	examples := make([]Example, 0, len(rows))
	for idx, r := range rows {
		if idx == 0 {
			continue
		}
		language, err := r.field(0)
		if err != nil {
			return nil, err
		}
		if language != p.Language {
			continue
		}
		cols, err := r.columns(6, 7, 1)
		if err != nil {
			return nil, err
		}
		examples = append(examples, Example{
			Guid:  guid(split, idx),
			TextA: cols[0],
			TextB: cols[1],
			Label: cols[2],
		})
	}
	return examples, nil
}

// SstProcessor handles the binary Stanford Sentiment Treebank (SST-2).
type SstProcessor struct{}

func (SstProcessor) DataDir() string { return "SST-2" }
func (SstProcessor) Labels() LabelSet { return binaryLabels() }

func (p SstProcessor) TrainExamples(dataDir string) ([]Example, error) {
	return p.createExamples(dataDir, "train.tsv", splitTrain)
}

func (p SstProcessor) DevExamples(dataDir string) ([]Example, error) {
	return p.createExamples(dataDir, "dev.tsv", splitDev)
}

func (p SstProcessor) TestExamples(dataDir string) ([]Example, error) {
	return p.createExamples(dataDir, "test.tsv", splitTest)
}

func (SstProcessor) createExamples(dataDir, name, split string) ([]Example,
	error) {
	rows, err := readCorpus(dataDir, name)
	if err != nil {
		return nil, err
	}
	examples := make([]Example, 0, len(rows))
	for idx, r := range rows {
		if idx == 0 {
			continue
		}
		example := Example{Guid: guid(split, idx), Label: "0"}
		if split == splitTest {
			if example.TextA, err = r.field(1); err != nil {
				return nil, err
			}
		} else {
			cols, err := r.columns(0, 1)
			if err != nil {
				return nil, err
			}
			example.TextA = cols[0]
			example.Label = cols[1]
		}
		examples = append(examples, example)
	}
	return examples, nil
}
