package transition

import (
	"math"
	"reflect"
	"testing"

	"sema/nlp/model"
	nlp "sema/nlp/types"
)

// testParserModel drives the gold sequence for the doctor sentence through
// weights on the decision-point tag pair alone.
func testParserModel() *model.Model {
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
		Labels: TransitionInventory(nlp.DepRelSet()),
	}
}

func newTestParser(t *testing.T) *Deterministic {
	t.Helper()
	parser, err := NewDeterministic(testParserModel())
	if err != nil {
		t.Fatal("parser construction failed:", err)
	}
	return parser
}

var (
	doctorTokens = []string{"The", "doctor", "treated", "the", "patient"}
	doctorTags   = []string{"DT", "NN", "VBD", "DT", "NN"}
)

func TestNewDeterministicRejectsWrongInventorySize(t *testing.T) {
	m := testParserModel()
	m.Labels = m.Labels[:5]
	m.Weights = map[string]map[string]float64{}
	_, err := NewDeterministic(m)
	if err == nil || model.ReasonOf(err) != model.ReasonMalformed {
		t.Fatal("expected", model.ReasonMalformed, "got", err)
	}
}

func TestNewDeterministicRejectsPermutedInventory(t *testing.T) {
	m := testParserModel()
	m.Labels = append([]string{}, m.Labels...)
	m.Labels[0], m.Labels[1] = m.Labels[1], m.Labels[0]
	_, err := NewDeterministic(m)
	if err == nil || model.ReasonOf(err) != model.ReasonMalformed {
		t.Fatal("expected", model.ReasonMalformed, "got", err)
	}
}

func TestParse(t *testing.T) {
	parser := newTestParser(t)
	tree, err := parser.Parse(doctorTokens, doctorTags)
	if err != nil {
		t.Fatal("parse failed:", err)
	}
	expected := []nlp.DepArc{
		{Modifier: 1, Head: 2, Relation: "det"},
		{Modifier: 2, Head: 3, Relation: "nsubj"},
		{Modifier: 3, Head: 0, Relation: nlp.ROOT_LABEL},
		{Modifier: 4, Head: 5, Relation: "det"},
		{Modifier: 5, Head: 3, Relation: "dobj"},
	}
	if !reflect.DeepEqual(tree.Arcs, expected) {
		t.Errorf("expected arcs %v, got %v", expected, tree.Arcs)
	}
	if err := tree.Validate(); err != nil {
		t.Error("decoded tree failed validation:", err)
	}
}

func TestParseDeterministic(t *testing.T) {
	parser := newTestParser(t)
	first, err := parser.Parse(doctorTokens, doctorTags)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		tree, err := parser.Parse(doctorTokens, doctorTags)
		if err != nil {
			t.Fatal(err)
		}
		if !tree.Equal(first) {
			t.Fatal("repeated parses of the same input must agree")
		}
	}
}

func TestParseWithScores(t *testing.T) {
	parser := newTestParser(t)
	_, scores, err := parser.ParseWithScores(doctorTokens, doctorTags)
	if err != nil {
		t.Fatal(err)
	}
	sequence := make([]string, len(scores))
	for i, score := range scores {
		sequence[i] = score.Transition
	}
	expected := []string{
		"SH", "LA-det", "SH", "LA-nsubj", "RA-ROOT",
		"SH", "LA-det", "RA-dobj", "RE", "RE",
	}
	if !reflect.DeepEqual(sequence, expected) {
		t.Errorf("expected sequence %v, got %v", expected, sequence)
	}
	if scores[0].Margin != 1 {
		t.Error("expected margin 1 for the opening shift, got", scores[0].Margin)
	}
	for i, score := range scores {
		if score.Confidence != 1 {
			t.Error("uncalibrated confidence must be 1, step", i, "got", score.Confidence)
		}
	}
}

func TestParseEmptySentence(t *testing.T) {
	parser := newTestParser(t)
	_, err := parser.Parse(nil, nil)
	if err == nil {
		t.Fatal("expected failure for an empty sentence")
	}
	if _, ok := err.(*DecodeError); !ok {
		t.Error("expected *DecodeError, got", err)
	}
}

func TestParseLengthMismatch(t *testing.T) {
	parser := newTestParser(t)
	if _, err := parser.Parse(doctorTokens, doctorTags[:3]); err == nil {
		t.Fatal("expected failure for token/label length mismatch")
	}
}

func TestParseRejectsOutOfSetTags(t *testing.T) {
	parser := newTestParser(t)
	_, err := parser.Parse([]string{"the"}, []string{"DET"})
	if err == nil {
		t.Fatal("expected failure for out-of-set POS tag")
	}
	if _, ok := err.(*nlp.LabelConventionError); !ok {
		t.Error("expected *LabelConventionError, got", err)
	}
}

func TestParseStuckIsDecodeError(t *testing.T) {
	// with no weights the argmax always shifts, draining the queue and
	// stranding headless tokens on the stack
	m := testParserModel()
	m.Weights = map[string]map[string]float64{}
	parser, err := NewDeterministic(m)
	if err != nil {
		t.Fatal(err)
	}
	_, err = parser.Parse(doctorTokens, doctorTags)
	if err == nil {
		t.Fatal("expected a stuck parse to fail")
	}
	decodeErr, ok := err.(*DecodeError)
	if !ok {
		t.Fatal("expected *DecodeError, got", err)
	}
	if decodeErr.Reason() != "decode_invariant" {
		t.Error("unexpected reason", decodeErr.Reason())
	}
}

func TestCalibration(t *testing.T) {
	var nilCalibration *Calibration
	if nilCalibration.Confidence(3.7) != 1 {
		t.Error("nil calibration must report confidence 1")
	}
	c := &Calibration{Scale: 1}
	if got := c.Confidence(0); got != 0.5 {
		t.Error("zero margin must calibrate to 0.5, got", got)
	}
	if c.Confidence(1) <= c.Confidence(0.5) {
		t.Error("confidence must grow with the margin")
	}
	if got := c.Confidence(2); got <= 0.5 || got >= 1 {
		t.Error("confidence must stay in (0.5,1) for positive margins, got", got)
	}
	expected := 1 / (1 + math.Exp(-2))
	if math.Abs(c.Confidence(2)-expected) > 1e-12 {
		t.Error("unexpected logistic value", c.Confidence(2))
	}
	degenerate := &Calibration{Scale: -1}
	if degenerate.Confidence(1) != c.Confidence(1) {
		t.Error("non-positive scales must fall back to 1")
	}
}

func TestCalibrationDoesNotChangeSelection(t *testing.T) {
	parser := newTestParser(t)
	plain, err := parser.Parse(doctorTokens, doctorTags)
	if err != nil {
		t.Fatal(err)
	}
	parser.Calibration = &Calibration{Scale: 0.1}
	calibrated, scores, err := parser.ParseWithScores(doctorTokens, doctorTags)
	if err != nil {
		t.Fatal(err)
	}
	if !calibrated.Equal(plain) {
		t.Error("calibration must never change the decoded tree")
	}
	for i, score := range scores {
		if score.Confidence <= 0 || score.Confidence >= 1 {
			t.Error("calibrated confidence out of range at step", i, score.Confidence)
		}
	}
}
