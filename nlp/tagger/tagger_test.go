package tagger

import (
	"reflect"
	"testing"

	"sema/nlp/model"
)

func testTaggerModel() *model.Model {
	return &model.Model{
		Weights: map[string]map[string]float64{
			"w=doctor":  {"NN": 2.0},
			"w=treated": {"VBD": 2.0},
			"w=patient": {"NN": 2.0},
		},
		Labels:     []string{"NN", "VBD", "DT", "JJ"},
		Dictionary: map[string]string{"The": "DT", "the": "DT"},
	}
}

func newTestTagger(t *testing.T) *Tagger {
	t.Helper()
	tagger, err := New(testTaggerModel())
	if err != nil {
		t.Fatal("tagger construction failed:", err)
	}
	return tagger
}

func TestNewRejectsOutOfSetLabels(t *testing.T) {
	m := testTaggerModel()
	m.Labels = append(m.Labels, "NOUN")
	if _, err := New(m); err == nil {
		t.Fatal("expected rejection of a label outside the POS tag set")
	}
}

func TestTag(t *testing.T) {
	tagger := newTestTagger(t)
	tags := tagger.Tag([]string{"The", "doctor", "treated", "the", "patient"})
	expected := []string{"DT", "NN", "VBD", "DT", "NN"}
	if !reflect.DeepEqual(tags, expected) {
		t.Errorf("expected %v, got %v", expected, tags)
	}
}

func TestTagDeterministic(t *testing.T) {
	tagger := newTestTagger(t)
	tokens := []string{"The", "doctor", "treated", "the", "patient"}
	first := tagger.Tag(tokens)
	for i := 0; i < 10; i++ {
		if !reflect.DeepEqual(tagger.Tag(tokens), first) {
			t.Fatal("repeated runs over the same input must agree")
		}
	}
}

func TestTagDictionaryPrecedence(t *testing.T) {
	// the dictionary answer wins even when the weights pull elsewhere
	m := testTaggerModel()
	m.Weights["w=the"] = map[string]float64{"JJ": 10.0}
	tagger, err := New(m)
	if err != nil {
		t.Fatal(err)
	}
	if tags := tagger.Tag([]string{"the"}); tags[0] != "DT" {
		t.Error("dictionary lookup must bypass scoring, got", tags[0])
	}
}

func TestTagDictionaryIsCaseSensitive(t *testing.T) {
	tagger := newTestTagger(t)
	// "THE" misses the dictionary and has no weight, so the argmax falls
	// through to the first inventory label
	if tags := tagger.Tag([]string{"THE"}); tags[0] != "NN" {
		t.Error("uncovered token must fall to the inventory tie-break, got", tags[0])
	}
}

func TestTagUnseenTieBreak(t *testing.T) {
	tagger := newTestTagger(t)
	tags := tagger.Tag([]string{"flurbl"})
	if tags[0] != "NN" {
		t.Error("all-zero scores must pick the first inventory label, got", tags[0])
	}
}

func TestTagEmptySentence(t *testing.T) {
	tagger := newTestTagger(t)
	if tags := tagger.Tag(nil); len(tags) != 0 {
		t.Error("empty input must yield empty output")
	}
}

func TestTagFormatted(t *testing.T) {
	tagger := newTestTagger(t)
	pairs := tagger.TagFormatted([]string{"The", "doctor"})
	if len(pairs) != 2 {
		t.Fatal("expected 2 pairs, got", len(pairs))
	}
	if pairs[0].Token != "The" || pairs[0].POS != "DT" {
		t.Error("unexpected first pair:", pairs[0])
	}
	if pairs[1].Token != "doctor" || pairs[1].POS != "NN" {
		t.Error("unexpected second pair:", pairs[1])
	}
}

func TestDictionaryHitFeedsContext(t *testing.T) {
	// dictionary answers must still advance the rolling tag history: a
	// weight on t-1=DT decides the following token
	m := testTaggerModel()
	m.Weights["t-1=DT"] = map[string]float64{"JJ": 5.0}
	tagger, err := New(m)
	if err != nil {
		t.Fatal(err)
	}
	tags := tagger.Tag([]string{"the", "flurbl"})
	if tags[1] != "JJ" {
		t.Error("tag context after a dictionary hit must be the dictionary tag, got", tags[1])
	}
}

func TestExtractFeatureCount(t *testing.T) {
	tokens := []string{"The", "doctor"}
	features := extract(tokens, 0, initialContext)
	// 18 base features plus the title and first flags
	if len(features) != 20 {
		t.Errorf("expected 20 features for sentence-initial %q, got %d: %v", tokens[0], len(features), features)
	}
	features = extract(tokens, 1, initialContext.advance("DT"))
	if len(features) != 18 {
		t.Errorf("expected 18 features for %q, got %d: %v", tokens[1], len(features), features)
	}
}

func TestExtractEdgePlaceholders(t *testing.T) {
	features := extract([]string{"lone"}, 0, initialContext)
	want := map[string]bool{
		"w-1=" + START:  true,
		"w+1=" + END:    true,
		"t-1=" + START:  true,
		"t-2=" + START2: true,
	}
	for _, f := range features {
		delete(want, f)
	}
	for f := range want {
		t.Error("missing edge feature", f)
	}
}

func TestShape(t *testing.T) {
	cases := []struct{ word, shape string }{
		{"iPhone-11", "xXx-d"},
		{"USA", "X"},
		{"hello", "x"},
		{"2024", "d"},
		{"McDonald's", "XxXx'x"},
		{"", ""},
	}
	for _, c := range cases {
		if got := Shape(c.word); got != c.shape {
			t.Errorf("Shape(%q) = %q, want %q", c.word, got, c.shape)
		}
	}
}

func TestFlags(t *testing.T) {
	if !isUpper("USA") || isUpper("Usa") || isUpper("123") {
		t.Error("isUpper misclassifies")
	}
	if !isTitle("The") || isTitle("THE") || isTitle("the") {
		t.Error("isTitle misclassifies")
	}
	if !isDigit("-42") || !isDigit("42") || isDigit("4x2") {
		t.Error("isDigit misclassifies")
	}
	if !hasDigit("x2") || hasDigit("xx") {
		t.Error("hasDigit misclassifies")
	}
}
