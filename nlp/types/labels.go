package types

import (
	"fmt"

	"sema/util"
)

// The Label Convention: the canonical closed sets of POS tags and dependency
// relations. Trained models and inference code must agree on these; a label
// emitted outside its set indicates trainer/inference skew and fails loudly.

var posTagValues = []string{
	"CC", "CD", "DT", "EX", "FW", "IN", "JJ", "JJR", "JJS", "LS", "MD",
	"NN", "NNS", "NNP", "NNPS", "PDT", "POS", "PRP", "PRP$",
	"RB", "RBR", "RBS", "RP", "SYM", "TO", "UH",
	"VB", "VBD", "VBG", "VBN", "VBP", "VBZ",
	"WDT", "WP", "WP$", "WRB",
	".", ",", ":", "(", ")", "``", "''", "#", "$",
}

var depRelValues = []string{
	ROOT_LABEL,
	"acomp", "advcl", "advmod", "amod", "appos", "aux", "auxpass",
	"cc", "ccomp", "conj", "cop", "csubj", "dep", "det", "dobj",
	"expl", "iobj", "mark", "neg", "nn", "npadvmod",
	"nsubj", "nsubjpass", "num", "parataxis", "pcomp", "pobj",
	"poss", "preconj", "predet", "prep", "prt", "punct",
	"quantmod", "rcmod", "tmod", "vmod", "xcomp",
}

var (
	ePOSTag = util.NewEnumSetOf(posTagValues)
	eDepRel = util.NewEnumSetOf(depRelValues)
)

// POSTagSet returns the frozen POS tag enumeration.
func POSTagSet() *util.EnumSet {
	return ePOSTag
}

// DepRelSet returns the frozen dependency relation enumeration. ROOT is
// element 0.
func DepRelSet() *util.EnumSet {
	return eDepRel
}

func IsPOSTag(label string) bool {
	return ePOSTag.Contains(label)
}

func IsDepRel(label string) bool {
	return eDepRel.Contains(label)
}

// LabelConventionError reports a label outside its closed set.
type LabelConventionError struct {
	Set   string
	Label string
}

func (e *LabelConventionError) Error() string {
	return fmt.Sprintf("label convention violation: %q is not in the closed %s set", e.Label, e.Set)
}

func (e *LabelConventionError) Reason() string {
	return "label_violation"
}

// VerifyPOSTags checks every label against the closed POS tag set.
func VerifyPOSTags(labels []string) error {
	for _, label := range labels {
		if !IsPOSTag(label) {
			return &LabelConventionError{"POS tag", label}
		}
	}
	return nil
}

// VerifyDepRels checks every relation against the closed dependency
// relation set.
func VerifyDepRels(relations []string) error {
	for _, relation := range relations {
		if !IsDepRel(relation) {
			return &LabelConventionError{"dependency relation", relation}
		}
	}
	return nil
}
