package app

import (
	"flag"
	"log"
	"os"

	"sema/nlp/format/raw"
	"sema/nlp/format/taggedsentence"
	"sema/nlp/model"
	"sema/nlp/tagger"
	nlp "sema/nlp/types"

	"github.com/gonuts/commander"
)

func TagSentences(t *tagger.Tagger, sentences []nlp.BasicSentence) []nlp.BasicTaggedSentence {
	tagged := make([]nlp.BasicTaggedSentence, len(sentences))
	for i, sent := range sentences {
		tagged[i] = nlp.BasicTaggedSentence(t.TagFormatted(sent.Tokens()))
	}
	return tagged
}

func TagRun(cmd *commander.Command, args []string) error {
	if err := VerifyFlags(cmd, []string{"m", "in"}); err != nil {
		return err
	}
	logProgress("Loading POS model from %s", posModelFile)
	m, err := LoadModelFile(posModelFile, model.ModelTypePOS)
	if err != nil {
		return err
	}
	t, err := tagger.New(m)
	if err != nil {
		return err
	}
	logProgress("Loaded model trained on %s (dev accuracy %.4f)",
		m.Provenance.TrainCorpus, m.Provenance.DevAccuracy)

	sentences, err := raw.ReadFile(inputFile)
	if err != nil {
		return err
	}
	logProgress("Read %d sentences from %s", len(sentences), inputFile)

	tagged := TagSentences(t, sentences)
	if outputFile == "" {
		return taggedsentence.Write(os.Stdout, tagged)
	}
	if err := taggedsentence.WriteFile(outputFile, tagged); err != nil {
		return err
	}
	log.Println("Wrote", len(tagged), "tagged sentences to", outputFile)
	return nil
}

func TagCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       TagRun,
		UsageLine: "tag -m <model> -in <raw sentences> [-o <tagged output>]",
		Short:     "runs part-of-speech tagging",
		Long: `
runs part-of-speech tagging over pre-tokenized sentences

	$ ./sema tag -m pos.model -in sentences.txt -o tagged.txt

`,
		Flag: *flag.NewFlagSet("tag", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&posModelFile, "m", "pos.model", "POS Model File (binary or structured)")
	cmd.Flag.StringVar(&inputFile, "in", "", "Input Raw Sentences File")
	cmd.Flag.StringVar(&outputFile, "o", "", "Output Tagged Sentences File (default stdout)")
	return cmd
}
