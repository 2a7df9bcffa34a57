package tasks

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCorpus(t *testing.T, dir string, name string, lines ...string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path,
		[]byte(strings.Join(lines, "\n")+"\n"), 0644))
}

func TestLabelSetIndex(t *testing.T) {
	labels := LabelSet{"contradiction", "entailment", "neutral"}
	for expected, label := range labels {
		idx, ok := labels.Index(label)
		assert.True(t, ok)
		assert.Equal(t, expected, idx)
	}
	_, ok := labels.Index("contradictory")
	assert.False(t, ok)
}

func TestRegistry(t *testing.T) {
	registry := DefaultRegistry()
	assert.Equal(t, []string{"COLA", "MNLI", "MRPC", "SST", "XNLI"},
		registry.Names())

	processor, err := registry.New("mrpc")
	require.NoError(t, err)
	assert.Equal(t, "MRPC", processor.DataDir())

	processor, err = registry.New("COLA")
	require.NoError(t, err)
	assert.Equal(t, "CoLA", processor.DataDir())

	_, err = registry.New("QQP")
	var unknown *UnknownTaskError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "QQP", unknown.Task)
	assert.Contains(t, err.Error(), "MRPC")

	registry.Register("qqp", func() Processor { return MrpcProcessor{} })
	_, err = registry.New("QQP")
	assert.NoError(t, err)
}

func TestMrpcProcessor(t *testing.T) {
	dir := t.TempDir()
	writeCorpus(t, dir, "train.tsv",
		"Quality\t#1 ID\t#2 ID\t#1 String\t#2 String",
		"1\t702876\t702977\tAmrozi accused his brother .\t\"Referring to him\" , Amrozi said .",
		"0\t2108705\t2108831\tYucaipa owned Dominick 's\tYucaipa bought Dominick 's\r")
	writeCorpus(t, dir, "test.tsv",
		"Quality\t#1 ID\t#2 ID\t#1 String\t#2 String",
		"1\t1089874\t1089925\tPCCW 's chief\tCurrent Chief")

	processor := MrpcProcessor{}
	examples, err := processor.TrainExamples(dir)
	require.NoError(t, err)
	require.Len(t, examples, 2)
	assert.Equal(t, Example{
		Guid:  "train-1",
		TextA: "Amrozi accused his brother .",
		TextB: "\"Referring to him\" , Amrozi said .",
		Label: "1",
	}, examples[0])
	assert.Equal(t, "Yucaipa bought Dominick 's", examples[1].TextB)
	assert.Equal(t, "0", examples[1].Label)

	examples, err = processor.TestExamples(dir)
	require.NoError(t, err)
	require.Len(t, examples, 1)
	assert.Equal(t, "test-1", examples[0].Guid)
	assert.Equal(t, "0", examples[0].Label)

	_, err = processor.DevExamples(dir)
	var formatErr *DataFormatError
	require.True(t, errors.As(err, &formatErr))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestMrpcShortRow(t *testing.T) {
	dir := t.TempDir()
	writeCorpus(t, dir, "train.tsv",
		"Quality\t#1 ID\t#2 ID\t#1 String\t#2 String",
		"1\t702876\t702977\tonly one string")
	_, err := MrpcProcessor{}.TrainExamples(dir)
	var formatErr *DataFormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, 2, formatErr.Line)
	assert.Contains(t, err.Error(), "expected at least 5 columns, found 4")
}

func TestMnliProcessor(t *testing.T) {
	dir := t.TempDir()
	header := "index\tpromptID\tpairID\tgenre\tb1\tb2\tp1\tp2\tsentence1\tsentence2\tlabel1\tgold_label"
	writeCorpus(t, dir, "train.tsv", header,
		"0\t31193\t31193n\tgov\t-\t-\t-\t-\tConceptually cream skimming\tProduct and geography\tneutral\tneutral")
	writeCorpus(t, dir, "test_matched.tsv",
		"index\tpromptID\tpairID\tgenre\tb1\tb2\tp1\tp2\tsentence1\tsentence2",
		"7\t1\t1n\tgov\t-\t-\t-\t-\tHello\tWorld")

	processor := MnliProcessor{}
	examples, err := processor.TrainExamples(dir)
	require.NoError(t, err)
	require.Len(t, examples, 1)
	assert.Equal(t, Example{
		Guid:  "train-0",
		TextA: "Conceptually cream skimming",
		TextB: "Product and geography",
		Label: "neutral",
	}, examples[0])

	examples, err = processor.TestExamples(dir)
	require.NoError(t, err)
	assert.Equal(t, "test-7", examples[0].Guid)
	assert.Equal(t, "contradiction", examples[0].Label)
}

func TestColaProcessor(t *testing.T) {
	dir := t.TempDir()
	writeCorpus(t, dir, "train.tsv",
		"gj04\t1\t\tOur friends won't buy this analysis.",
		"gj04\t0\t*\tOne more pseudo generalization.")
	writeCorpus(t, dir, "test.tsv",
		"index\tsentence",
		"0\tBill whistled past the house.")

	processor := ColaProcessor{}
	examples, err := processor.TrainExamples(dir)
	require.NoError(t, err)
	require.Len(t, examples, 2)
	assert.Equal(t, Example{
		Guid:  "train-0",
		TextA: "Our friends won't buy this analysis.",
		Label: "1",
	}, examples[0])
	assert.Equal(t, "0", examples[1].Label)

	examples, err = processor.TestExamples(dir)
	require.NoError(t, err)
	require.Len(t, examples, 1)
	assert.Equal(t, "Bill whistled past the house.", examples[0].TextA)
	assert.Equal(t, "0", examples[0].Label)
}

func TestXnliProcessor(t *testing.T) {
	dir := t.TempDir()
	writeCorpus(t, dir, "multinli/multinli.train.zh.tsv",
		"premise\thypo\tlabel",
		"你好\t世界\tcontradictory",
		"早上\t晚上\tneutral")
	writeCorpus(t, dir, "xnli.dev.tsv",
		"language\tgold_label\ta\tb\tc\td\tsentence1\tsentence2",
		"en\tneutral\t-\t-\t-\t-\tHello\tWorld",
		"zh\tentailment\t-\t-\t-\t-\t你好\t世界")

	processor := XnliProcessor{Language: "zh"}
	examples, err := processor.TrainExamples(dir)
	require.NoError(t, err)
	require.Len(t, examples, 2)
	assert.Equal(t, "contradiction", examples[0].Label)
	assert.Equal(t, "neutral", examples[1].Label)

	examples, err = processor.DevExamples(dir)
	require.NoError(t, err)
	require.Len(t, examples, 1)
	assert.Equal(t, Example{
		Guid:  "dev-2",
		TextA: "你好",
		TextB: "世界",
		Label: "entailment",
	}, examples[0])
}

func TestSstProcessor(t *testing.T) {
	dir := t.TempDir()
	writeCorpus(t, dir, "dev.tsv",
		"sentence\tlabel",
		"it 's a charming journey . \t1")
	writeCorpus(t, dir, "test.tsv",
		"index\tsentence",
		"0\tuneasy mishmash of styles")

	processor := SstProcessor{}
	examples, err := processor.DevExamples(dir)
	require.NoError(t, err)
	require.Len(t, examples, 1)
	assert.Equal(t, Example{
		Guid:  "dev-1",
		TextA: "it 's a charming journey . ",
		Label: "1",
	}, examples[0])

	examples, err = processor.TestExamples(dir)
	require.NoError(t, err)
	assert.Equal(t, "uneasy mishmash of styles", examples[0].TextA)
	assert.Equal(t, "0", examples[0].Label)
}
