package app

import (
	"flag"
	"fmt"
	"os"

	"sema/nlp/model"
	"sema/util"

	"github.com/gonuts/commander"
)

var (
	modelInspectFile string
	modelConvertOut  string
	modelTypeStr     string
	modelVerifyOnly  bool
)

func modelTypeOf(name string) (model.ModelType, error) {
	switch name {
	case "pos":
		return model.ModelTypePOS, nil
	case "dep", "dependency":
		return model.ModelTypeDep, nil
	default:
		return 0, fmt.Errorf("unknown model type %q, want pos or dep", name)
	}
}

func ModelRun(cmd *commander.Command, args []string) error {
	if err := VerifyFlags(cmd, []string{"m"}); err != nil {
		return err
	}
	location, found := util.LocateFile(modelInspectFile, DEFAULT_MODEL_DIRS)
	if !found {
		return fmt.Errorf("model file %s not found in default directories", modelInspectFile)
	}
	data, err := os.ReadFile(location)
	if err != nil {
		return err
	}

	isBinary := len(data) >= len(model.Magic) && string(data[:len(model.Magic)]) == model.Magic
	if modelVerifyOnly {
		if !isBinary {
			return fmt.Errorf("%s is not a binary model container", location)
		}
		if !model.VerifyChecksum(data) {
			return fmt.Errorf("%s: payload checksum mismatch", location)
		}
		fmt.Println("checksum ok")
		return nil
	}

	var (
		m         *model.Model
		modelType model.ModelType
	)
	if isBinary {
		m, modelType, err = model.Load(data)
	} else {
		modelType, err = modelTypeOf(modelTypeStr)
		if err == nil {
			m, err = model.LoadStructured(data)
		}
	}
	if err != nil {
		return err
	}

	fmt.Printf("file:           %s\n", location)
	fmt.Printf("type:           %s\n", modelType)
	fmt.Printf("labels:         %d\n", len(m.Labels))
	fmt.Printf("features:       %d\n", len(m.Weights))
	fmt.Printf("dictionary:     %d entries\n", len(m.Dictionary))
	fmt.Printf("train corpus:   %s (version %s)\n", m.Provenance.TrainCorpus, m.Provenance.CorpusVersion)
	fmt.Printf("training date:  %s\n", m.Provenance.TrainingDate)
	fmt.Printf("dev accuracy:   %.4f (post-prune %.4f, threshold %g)\n",
		m.Provenance.DevAccuracy, m.Provenance.PostPruneDevAccuracy, m.Provenance.PruneThreshold)

	if modelConvertOut == "" {
		return nil
	}
	var out []byte
	if isBinary {
		out, err = model.EncodeStructured(m)
	} else {
		out, err = model.Encode(m, modelType)
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(modelConvertOut, out, 0644); err != nil {
		return err
	}
	fmt.Printf("converted to %s\n", modelConvertOut)
	return nil
}

func ModelCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       ModelRun,
		UsageLine: "model -m <model file> [-t pos|dep] [-verify] [-convert <out file>]",
		Short:     "inspects, verifies and converts trained models",
		Long: `
inspects a trained model's provenance and inventory, verifies a binary
container's checksum, or converts between structured and binary forms

	$ ./sema model -m pos.model
	$ ./sema model -m pos.model -verify
	$ ./sema model -m pos.json -t pos -convert pos.model

`,
		Flag: *flag.NewFlagSet("model", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&modelInspectFile, "m", "", "Model File (binary or structured)")
	cmd.Flag.StringVar(&modelTypeStr, "t", "pos", "Model type for structured input [pos, dep]")
	cmd.Flag.BoolVar(&modelVerifyOnly, "verify", false, "Only verify the container checksum")
	cmd.Flag.StringVar(&modelConvertOut, "convert", "", "Convert to the other form, writing to this file")
	return cmd
}
