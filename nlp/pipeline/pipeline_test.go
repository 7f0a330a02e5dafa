package pipeline

import (
	"reflect"
	"testing"

	"sema/nlp/model"
	"sema/nlp/parser/dependency/transition"
	nlp "sema/nlp/types"
)

func testPOSModel() *model.Model {
	return &model.Model{
		Weights: map[string]map[string]float64{
			"w=doctor":  {"NN": 2.0},
			"w=treated": {"VBD": 2.0},
			"w=patient": {"NN": 2.0},
		},
		Labels:     []string{"NN", "VBD", "DT"},
		Dictionary: map[string]string{"The": "DT", "the": "DT"},
	}
}

func testDepModel() *model.Model {
	return &model.Model{
		Weights: map[string]map[string]float64{
			"s0.t|b0.t=ROOT|DT":  {"SH": 1},
			"s0.t|b0.t=DT|NN":    {"LA-det": 1},
			"s0.t|b0.t=ROOT|NN":  {"SH": 1},
			"s0.t|b0.t=NN|VBD":   {"LA-nsubj": 1},
			"s0.t|b0.t=ROOT|VBD": {"RA-ROOT": 1},
			"s0.t|b0.t=VBD|DT":   {"SH": 1},
			"s0.t|b0.t=VBD|NN":   {"RA-dobj": 1},
		},
		Labels: transition.TransitionInventory(nlp.DepRelSet()),
	}
}

func TestAnnotate(t *testing.T) {
	pipeline, err := New(testPOSModel(), testDepModel())
	if err != nil {
		t.Fatal("pipeline construction failed:", err)
	}
	annotated, err := pipeline.Annotate([]string{"The", "doctor", "treated", "the", "patient"})
	if err != nil {
		t.Fatal("annotation failed:", err)
	}

	tags := make([]string, len(annotated.Pairs))
	for i, pair := range annotated.Pairs {
		tags[i] = pair.POS
	}
	if !reflect.DeepEqual(tags, []string{"DT", "NN", "VBD", "DT", "NN"}) {
		t.Error("unexpected tags:", tags)
	}

	if annotated.Tree.Root() != 3 {
		t.Error("expected treated as root, got node", annotated.Tree.Root())
	}
	if annotated.Tree.HeadOf(2) != 3 || annotated.Tree.RelationOf(2) != "nsubj" {
		t.Error("doctor must attach to treated as nsubj")
	}
	if annotated.Tree.HeadOf(5) != 3 || annotated.Tree.RelationOf(5) != "dobj" {
		t.Error("patient must attach to treated as dobj")
	}
	if err := annotated.Tree.Validate(); err != nil {
		t.Error("annotated tree failed validation:", err)
	}

	if len(annotated.Scores) != 10 {
		t.Error("expected 10 transition scores, got", len(annotated.Scores))
	}
	for i, score := range annotated.Scores {
		if score.Confidence <= 0 || score.Confidence > 1 {
			t.Error("confidence out of range at step", i, score.Confidence)
		}
	}
}

func TestAnnotateEmptySentence(t *testing.T) {
	pipeline, err := New(testPOSModel(), testDepModel())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := pipeline.Annotate(nil); err == nil {
		t.Fatal("expected failure for an empty sentence")
	}
}

func TestNewRejectsSwappedModels(t *testing.T) {
	if _, err := New(testDepModel(), testPOSModel()); err == nil {
		t.Fatal("a dependency model must not construct a tagger")
	}
}

// binary and structured forms of the same model must annotate identically
func TestModelFormsAreInterchangeable(t *testing.T) {
	binaryPOS, err := model.Encode(testPOSModel(), model.ModelTypePOS)
	if err != nil {
		t.Fatal(err)
	}
	structuredPOS, err := model.EncodeStructured(testPOSModel())
	if err != nil {
		t.Fatal(err)
	}
	fromBinary, err := model.LoadTyped(binaryPOS, model.ModelTypePOS)
	if err != nil {
		t.Fatal(err)
	}
	fromStructured, err := model.LoadStructured(structuredPOS)
	if err != nil {
		t.Fatal(err)
	}

	tokens := []string{"The", "doctor", "treated", "the", "patient"}
	pipelineA, err := New(fromBinary, testDepModel())
	if err != nil {
		t.Fatal(err)
	}
	pipelineB, err := New(fromStructured, testDepModel())
	if err != nil {
		t.Fatal(err)
	}
	annotatedA, err := pipelineA.Annotate(tokens)
	if err != nil {
		t.Fatal(err)
	}
	annotatedB, err := pipelineB.Annotate(tokens)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(annotatedA.Pairs, annotatedB.Pairs) {
		t.Error("tag output differs between model forms")
	}
	if !annotatedA.Tree.Equal(annotatedB.Tree) {
		t.Error("parse output differs between model forms")
	}
}
