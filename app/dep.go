package app

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"sema/nlp/format/taggedsentence"
	"sema/nlp/model"
	"sema/nlp/parser/dependency/transition"
	nlp "sema/nlp/types"

	"github.com/gonuts/commander"
)

func WriteTrees(writer io.Writer, trees []*nlp.DependencyTree) error {
	for _, tree := range trees {
		if _, err := fmt.Fprintln(writer, tree.Conll()); err != nil {
			return err
		}
	}
	return nil
}

func ParseSentences(parser *transition.Deterministic, sentences []nlp.BasicTaggedSentence) ([]*nlp.DependencyTree, error) {
	trees := make([]*nlp.DependencyTree, len(sentences))
	for i, sent := range sentences {
		labels := make([]string, len(sent))
		for j, tagged := range sent {
			labels[j] = tagged.POS
		}
		tree, err := parser.Parse(sent.Tokens(), labels)
		if err != nil {
			return nil, fmt.Errorf("sentence %d: %w", i, err)
		}
		trees[i] = tree
	}
	return trees, nil
}

func DepRun(cmd *commander.Command, args []string) error {
	if err := VerifyFlags(cmd, []string{"m", "in"}); err != nil {
		return err
	}
	logProgress("Loading dependency model from %s", depModelFile)
	m, err := LoadModelFile(depModelFile, model.ModelTypeDep)
	if err != nil {
		return err
	}
	parser, err := transition.NewDeterministic(m)
	if err != nil {
		return err
	}
	logProgress("Loaded model trained on %s (dev accuracy %.4f)",
		m.Provenance.TrainCorpus, m.Provenance.DevAccuracy)

	sentences, err := taggedsentence.ReadFile(inputFile)
	if err != nil {
		return err
	}
	logProgress("Read %d tagged sentences from %s", len(sentences), inputFile)

	trees, err := ParseSentences(parser, sentences)
	if err != nil {
		return err
	}
	if outputFile == "" {
		return WriteTrees(os.Stdout, trees)
	}
	file, err := os.Create(outputFile)
	if err != nil {
		return err
	}
	defer file.Close()
	if err := WriteTrees(file, trees); err != nil {
		return err
	}
	log.Println("Wrote", len(trees), "parses in conll format to", outputFile)
	return nil
}

func DepCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       DepRun,
		UsageLine: "dep -m <model> -in <tagged sentences> [-oc <out conll>]",
		Short:     "runs dependency parsing",
		Long: `
runs arc-eager dependency parsing over tagged sentences (word/POS format)

	$ ./sema dep -m dep.model -in tagged.txt -oc parsed.conll

`,
		Flag: *flag.NewFlagSet("dep", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&depModelFile, "m", "dep.model", "Dependency Model File (binary or structured)")
	cmd.Flag.StringVar(&inputFile, "in", "", "Input Tagged Sentences File")
	cmd.Flag.StringVar(&outputFile, "oc", "", "Output Conll File (default stdout)")
	return cmd
}
