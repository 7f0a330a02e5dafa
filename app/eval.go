package app

import (
	"flag"
	"fmt"

	"sema/eval"
	"sema/nlp/format/taggedsentence"

	"github.com/gonuts/commander"
)

var goldFile string

func EvalRun(cmd *commander.Command, args []string) error {
	if err := VerifyFlags(cmd, []string{"in", "gold"}); err != nil {
		return err
	}
	test, err := taggedsentence.ReadFile(inputFile)
	if err != nil {
		return err
	}
	gold, err := taggedsentence.ReadFile(goldFile)
	if err != nil {
		return err
	}
	if len(test) != len(gold) {
		return fmt.Errorf("%s has %d sentences, %s has %d", inputFile, len(test), goldFile, len(gold))
	}
	logProgress("Scoring %d sentences", len(test))

	var total eval.Total
	for i := range test {
		result, err := eval.Tagging(test[i], gold[i])
		if err != nil {
			return fmt.Errorf("sentence %d: %v", i+1, err)
		}
		total.Add(result)
	}
	fmt.Printf("Sentences:   %d\n", total.Population)
	fmt.Printf("Tokens:      %d\n", total.All())
	fmt.Printf("Accuracy:    %.4f\n", total.Accuracy())
	fmt.Printf("Exact match: %.4f\n", total.ExactMatch())
	return nil
}

func EvalCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       EvalRun,
		UsageLine: "eval -in <tagged output> -gold <gold tagged sentences>",
		Short:     "scores tagged output against gold",
		Long: `
scores predicted tags against a gold tagged-sentence file

	$ ./sema eval -in tagged.txt -gold gold.txt

`,
		Flag: *flag.NewFlagSet("eval", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&inputFile, "in", "", "Predicted Tagged Sentences File")
	cmd.Flag.StringVar(&goldFile, "gold", "", "Gold Tagged Sentences File")
	return cmd
}
