package app

import (
	"fmt"
	"log"
	"os"

	"sema/nlp/model"
	"sema/util"

	"github.com/gonuts/commander"
)

var allOut bool = true

// Default search paths for model and config files, in order.
var (
	DEFAULT_MODEL_DIRS = []string{".", "data", "models"}
	DEFAULT_CONF_DIRS  = []string{".", "conf", "data"}
)

// Per-command flag vars, shared across subcommands.
var (
	posModelFile string
	depModelFile string
	inputFile    string
	outputFile   string
	showScores   bool
)

// LoadModelFile reads a trained model from either form: a binary container
// (recognized by its magic) or the structured JSON record. Callers cannot
// tell, by any downstream prediction, which form the model came from.
func LoadModelFile(filename string, expected model.ModelType) (*model.Model, error) {
	location, found := util.LocateFile(filename, DEFAULT_MODEL_DIRS)
	if !found {
		return nil, fmt.Errorf("model file %s not found in default directories", filename)
	}
	data, err := os.ReadFile(location)
	if err != nil {
		return nil, err
	}
	if len(data) >= len(model.Magic) && string(data[:len(model.Magic)]) == model.Magic {
		return model.LoadTyped(data, expected)
	}
	return model.LoadStructured(data)
}

func VerifyFlags(cmd *commander.Command, required []string) error {
	for _, name := range required {
		f := cmd.Flag.Lookup(name)
		if f == nil || f.Value.String() == "" {
			cmd.Usage()
			return fmt.Errorf("required flag -%s not set", name)
		}
	}
	return nil
}

func AllCommands() *commander.Command {
	cmd := &commander.Command{
		UsageLine: os.Args[0] + " tag|dep|pipeline|model|eval",
		Short:     "statistical annotation pipeline",
	}
	cmd.Subcommands = []*commander.Command{
		TagCmd(),
		DepCmd(),
		PipelineCmd(),
		ModelCmd(),
		EvalCmd(),
	}
	return cmd
}

func logProgress(format string, args ...interface{}) {
	if allOut {
		log.Printf(format, args...)
	}
}
