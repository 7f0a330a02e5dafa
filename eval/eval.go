// Package eval scores predicted annotations against gold ones: token-level
// tagging accuracy and labeled/unlabeled attachment for dependency trees.
package eval

import (
	"fmt"

	nlp "sema/nlp/types"
)

func Precision(truePositives, testPositives int) float64 {
	return float64(truePositives) / float64(testPositives)
}

func Recall(truePositives, conditionPositives int) float64 {
	return float64(truePositives) / float64(conditionPositives)
}

func F1(precision, recall float64) float64 {
	return 2.0 * (precision * recall) / (precision + recall)
}

// Result is one sentence's score. Forced-choice tasks (one tag or head per
// token) count correct decisions as TP and wrong ones as FP, so Accuracy
// is the per-token rate.
type Result struct {
	TP, FP, TN, FN int
}

func (r *Result) All() int {
	return r.TP + r.FP + r.TN + r.FN
}

func (r *Result) Correct() int {
	return r.TP + r.TN
}

func (r *Result) Incorrect() int {
	return r.FP + r.FN
}

func (r *Result) Precision() float64 {
	return Precision(r.TP, r.TP+r.FP)
}

func (r *Result) Recall() float64 {
	return Recall(r.TP, r.TP+r.FN)
}

func (r *Result) Accuracy() float64 {
	return float64(r.Correct()) / float64(r.All())
}

func (r *Result) F1() float64 {
	return F1(r.Precision(), r.Recall())
}

// Total accumulates per-sentence results and tracks exact matches.
type Total struct {
	Result
	Exact, Population int
}

func (t *Total) Add(r *Result) {
	t.TP += r.TP
	t.FP += r.FP
	t.TN += r.TN
	t.FN += r.FN
	if r.Incorrect() == 0 {
		t.Exact += 1
	}
	t.Population += 1
}

func (t *Total) ExactMatch() float64 {
	return float64(t.Exact) / float64(t.Population)
}

// Tagging scores one predicted tagged sentence against gold. Both must
// cover the same tokens.
func Tagging(test, gold nlp.BasicTaggedSentence) (*Result, error) {
	if len(test) != len(gold) {
		return nil, fmt.Errorf("test sentence has %d tokens, gold has %d", len(test), len(gold))
	}
	result := new(Result)
	for i, predicted := range test {
		if predicted.Token != gold[i].Token {
			return nil, fmt.Errorf("token %d is %q in test but %q in gold", i+1, predicted.Token, gold[i].Token)
		}
		if predicted.POS == gold[i].POS {
			result.TP++
		} else {
			result.FP++
		}
	}
	return result, nil
}

// Attachment scores a predicted tree against gold: the unlabeled result
// counts head matches, the labeled one requires the relation to match too.
func Attachment(test, gold *nlp.DependencyTree) (unlabeled, labeled *Result, err error) {
	if test.NumberOfArcs() != gold.NumberOfArcs() {
		return nil, nil, fmt.Errorf("test tree has %d arcs, gold has %d", test.NumberOfArcs(), gold.NumberOfArcs())
	}
	unlabeled, labeled = new(Result), new(Result)
	for i := 1; i <= test.NumberOfArcs(); i++ {
		headMatch := test.HeadOf(i) == gold.HeadOf(i)
		if headMatch {
			unlabeled.TP++
		} else {
			unlabeled.FP++
		}
		if headMatch && test.RelationOf(i) == gold.RelationOf(i) {
			labeled.TP++
		} else {
			labeled.FP++
		}
	}
	return unlabeled, labeled, nil
}
