package main

import (
	"errors"
	"flag"
	"log"
	"path/filepath"

	"github.com/wbrown/bert_prep"
	"github.com/wbrown/bert_prep/pkg/pyconfig"
	"github.com/wbrown/bert_prep/records"
	"github.com/wbrown/bert_prep/tasks"
)

type prepareConfig struct {
	Task         string
	VocabFile    string
	MaxSeqLength int
	OutputDir    string
	DoLowerCase  bool
	DataRoot     string
	ConfigData   string
	S3Output     string
}

// newPrepareConfig
// Creates a prepareConfig with the default configuration.
func newPrepareConfig() prepareConfig {
	return prepareConfig{
		"MRPC",
		"bert_pretrained_models/uncased_L-12_H-768_A-12/vocab.txt",
		128,
		"data/MRPC",
		true,
		"data",
		"./config_data.py",
		"",
	}
}

// outputDir is the explicit output directory, or the corpus directory if
// none was given.
func (pc prepareConfig) outputDir(corpusDir string) string {
	if pc.OutputDir == "" {
		return corpusDir
	}
	return pc.OutputDir
}

// prepareData
// Reads the task's corpus, writes its train, eval and predict record files
// and patches the data config with the derived statistics. If s3Client is
// non-nil the record files are uploaded to pc.S3Output afterwards.
func prepareData(pc prepareConfig, registry *tasks.Registry,
	s3Client S3Client) (records.SplitCounts, error) {
	var counts records.SplitCounts
	processor, err := registry.New(pc.Task)
	if err != nil {
		return counts, err
	}
	corpusDir := filepath.Join(pc.DataRoot, processor.DataDir())
	outputDir := pc.outputDir(corpusDir)

	log.Printf("Loading data from %s", corpusDir)
	numClasses := len(processor.Labels())
	trainExamples, err := processor.TrainExamples(corpusDir)
	if err != nil {
		return counts, err
	}
	numTrainData := len(trainExamples)
	log.Printf("num_classes:%d; num_train_data:%d", numClasses,
		numTrainData)

	tokenizer, err := bert_prep.NewFullTokenizer(pc.VocabFile,
		pc.DoLowerCase)
	if err != nil {
		return counts, err
	}
	log.Printf("Loaded vocabulary of %d pieces from %s",
		tokenizer.Vocab.Len(), pc.VocabFile)

	counts, err = records.PrepareRecords(processor, tokenizer, corpusDir,
		pc.MaxSeqLength, outputDir)
	if err != nil {
		return counts, err
	}

	if s3Client != nil {
		if err = uploadRecordsS3(s3Client, outputDir, pc.S3Output); err != nil {
			return counts, err
		}
	}

	err = pyconfig.Patch(pc.ConfigData,
		pyconfig.Int("max_seq_length", pc.MaxSeqLength),
		pyconfig.Int("num_classes", numClasses),
		pyconfig.Int("num_train_data", numTrainData))
	if errors.Is(err, pyconfig.ErrConfigNotFound) {
		log.Printf("%s cannot be found", pc.ConfigData)
	} else if err != nil {
		return counts, err
	} else {
		log.Printf("%s has been updated", pc.ConfigData)
	}
	return counts, nil
}

func main() {
	defaults := newPrepareConfig()
	task := flag.String("task", defaults.Task,
		"task to prepare data for [COLA, MNLI, MRPC, XNLI, SST]")
	vocabFile := flag.String("vocab_file", defaults.VocabFile,
		"vocabulary file the BERT model was trained on, local path or URL")
	maxSeqLength := flag.Int("max_seq_length", defaults.MaxSeqLength,
		"maximum total input sequence length after wordpiece tokenization")
	outputDir := flag.String("tfrecords_output_dir", defaults.OutputDir,
		"output directory for the record files; empty writes them to the "+
			"task's corpus directory")
	doLowerCase := flag.Bool("do_lower_case", defaults.DoLowerCase,
		"lower case the input text, use for uncased models")
	dataRoot := flag.String("data_root", defaults.DataRoot,
		"directory holding the per-task corpus directories")
	configData := flag.String("config_data", defaults.ConfigData,
		"data config file to update with the derived statistics")
	s3Output := flag.String("s3_output", defaults.S3Output,
		"optional s3://bucket/prefix to upload the record files to")
	flag.Parse()

	pc := prepareConfig{
		Task:         *task,
		VocabFile:    *vocabFile,
		MaxSeqLength: *maxSeqLength,
		OutputDir:    *outputDir,
		DoLowerCase:  *doLowerCase,
		DataRoot:     *dataRoot,
		ConfigData:   *configData,
		S3Output:     *s3Output,
	}
	log.Printf("Task: %s\n", pc.Task)
	log.Printf("Vocabulary: %s\n", pc.VocabFile)
	log.Printf("Max sequence length: %d\n", pc.MaxSeqLength)

	var s3Client S3Client
	if pc.S3Output != "" {
		var err error
		if s3Client, err = newS3Client(); err != nil {
			log.Fatal(err)
		}
	}

	counts, err := prepareData(pc, tasks.DefaultRegistry(), s3Client)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Data preparation finished: %d train, %d eval, %d predict "+
		"records", counts.Train, counts.Eval, counts.Predict)
}
