package types

import "testing"

func TestPOSTagSetClosed(t *testing.T) {
	for _, tag := range []string{"NN", "VBD", "DT", ",", "PRP$"} {
		if !IsPOSTag(tag) {
			t.Error(tag, "must be in the POS tag set")
		}
	}
	for _, tag := range []string{"NOUN", "nn", "", "ROOT"} {
		if IsPOSTag(tag) {
			t.Error(tag, "must not be in the POS tag set")
		}
	}
}

func TestDepRelSetClosed(t *testing.T) {
	for _, rel := range []string{ROOT_LABEL, "nsubj", "dobj", "det", "punct"} {
		if !IsDepRel(rel) {
			t.Error(rel, "must be in the dependency relation set")
		}
	}
	if IsDepRel("subj") || IsDepRel("NSUBJ") {
		t.Error("near-miss relations must not be in the set")
	}
}

func TestDepRelSetRootFirst(t *testing.T) {
	set := DepRelSet()
	if index, exists := set.IndexOf(ROOT_LABEL); !exists || index != 0 {
		t.Error("ROOT must be element 0 of the relation set")
	}
	if !set.Frozen {
		t.Error("relation set must be frozen")
	}
}

func TestVerifyPOSTags(t *testing.T) {
	if err := VerifyPOSTags([]string{"DT", "NN", "VBD"}); err != nil {
		t.Fatal("in-set tags must verify:", err)
	}
	err := VerifyPOSTags([]string{"DT", "NOUN"})
	if err == nil {
		t.Fatal("expected a violation for NOUN")
	}
	violation, ok := err.(*LabelConventionError)
	if !ok {
		t.Fatal("expected *LabelConventionError, got", err)
	}
	if violation.Label != "NOUN" {
		t.Error("violation must name the offending label, got", violation.Label)
	}
	if violation.Reason() != "label_violation" {
		t.Error("unexpected reason", violation.Reason())
	}
}

func TestVerifyDepRels(t *testing.T) {
	if err := VerifyDepRels([]string{"nsubj", ROOT_LABEL}); err != nil {
		t.Fatal("in-set relations must verify:", err)
	}
	if VerifyDepRels([]string{"nsubj", "subj"}) == nil {
		t.Fatal("expected a violation for subj")
	}
}
