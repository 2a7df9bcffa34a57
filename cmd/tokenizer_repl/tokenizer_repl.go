package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/wbrown/bert_prep"
)

// A REPL for interacting with the wordpiece tokenizer.

// evalLine tokenizes one line of input and prints the wordpieces followed by
// their ids.
func evalLine(w io.Writer, tokenizer *bert_prep.FullTokenizer,
	input string) error {
	// Replace literal \n with newline.
	input = strings.Replace(input, "\\n", "\n", -1)
	pieces := tokenizer.Tokenize(input)
	ids, err := tokenizer.ConvertTokensToIds(pieces)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%v\n", ids)
	for _, piece := range pieces {
		fmt.Fprintf(w, "|%s", piece)
	}
	fmt.Fprintf(w, "\n")
	return nil
}

func main() {
	vocabFile := flag.String("vocab_file",
		"bert_pretrained_models/uncased_L-12_H-768_A-12/vocab.txt",
		"The vocabulary to use, local path or URL.")
	doLowerCase := flag.Bool("do_lower_case", true,
		"Lower case input before tokenizing.")

	flag.Parse()

	tokenizer, err := bert_prep.NewFullTokenizer(*vocabFile, *doLowerCase)
	if err != nil {
		log.Fatal(err)
	}

	reader := bufio.NewReader(os.Stdin)
	// Provide a REPL
	for {
		fmt.Print(">>> ")
		input, err := reader.ReadString('\n')
		if err == io.EOF {
			return
		} else if err != nil {
			log.Fatal(err)
		}
		if err = evalLine(os.Stdout, tokenizer,
			strings.TrimSuffix(input, "\n")); err != nil {
			log.Print(err)
		}
	}
}
