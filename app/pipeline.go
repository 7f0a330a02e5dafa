package app

import (
	"flag"
	"fmt"
	"log"
	"os"

	"sema/nlp/format/raw"
	"sema/nlp/model"
	"sema/nlp/pipeline"

	"github.com/gonuts/commander"
)

func PipelineRun(cmd *commander.Command, args []string) error {
	if err := VerifyFlags(cmd, []string{"pm", "dm", "in"}); err != nil {
		return err
	}
	logProgress("Loading POS model from %s", posModelFile)
	posModel, err := LoadModelFile(posModelFile, model.ModelTypePOS)
	if err != nil {
		return err
	}
	logProgress("Loading dependency model from %s", depModelFile)
	depModel, err := LoadModelFile(depModelFile, model.ModelTypeDep)
	if err != nil {
		return err
	}
	pipe, err := pipeline.New(posModel, depModel)
	if err != nil {
		return err
	}

	sentences, err := raw.ReadFile(inputFile)
	if err != nil {
		return err
	}
	logProgress("Read %d sentences from %s", len(sentences), inputFile)

	out := os.Stdout
	if outputFile != "" {
		file, err := os.Create(outputFile)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}
	for i, sent := range sentences {
		annotated, err := pipe.Annotate(sent.Tokens())
		if err != nil {
			return fmt.Errorf("sentence %d: %w", i, err)
		}
		fmt.Fprintln(out, annotated.Tree.Conll())
		if showScores {
			for _, score := range annotated.Scores {
				fmt.Fprintf(out, "# %s margin=%.4f confidence=%.4f\n",
					score.Transition, score.Margin, score.Confidence)
			}
		}
	}
	if outputFile != "" {
		log.Println("Wrote", len(sentences), "annotated sentences to", outputFile)
	}
	return nil
}

func PipelineCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       PipelineRun,
		UsageLine: "pipeline -pm <pos model> -dm <dep model> -in <raw sentences> [-oc <out conll>] [-scores]",
		Short:     "runs tagging and parsing in one pass",
		Long: `
runs the full annotation pipeline: tokens -> POS tags -> dependency tree

	$ ./sema pipeline -pm pos.model -dm dep.model -in sentences.txt -oc parsed.conll

`,
		Flag: *flag.NewFlagSet("pipeline", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&posModelFile, "pm", "pos.model", "POS Model File")
	cmd.Flag.StringVar(&depModelFile, "dm", "dep.model", "Dependency Model File")
	cmd.Flag.StringVar(&inputFile, "in", "", "Input Raw Sentences File")
	cmd.Flag.StringVar(&outputFile, "oc", "", "Output Conll File (default stdout)")
	cmd.Flag.BoolVar(&showScores, "scores", false, "Print calibrated transition confidences")
	return cmd
}
