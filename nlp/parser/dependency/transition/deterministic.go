package transition

import (
	"fmt"
	"math"

	"sema/nlp/model"
	nlp "sema/nlp/types"
)

// Deterministic is the greedy arc-eager parser: at each configuration it
// scores every legal transition with the model's feature-weighted sum and
// applies the argmax, ties broken by the model's label order. Parse is a
// pure function over the immutable model, so one parser may serve
// concurrent callers.
type Deterministic struct {
	TransFunc *ArcEager
	Model     *model.Model

	// Calibration optionally rescales raw transition margins into
	// confidence-like numbers. It never changes the selected transition.
	Calibration *Calibration
}

// NewDeterministic validates a trained dependency model against the Label
// Convention: its label inventory must be exactly the transition inventory
// derived from the closed relation set, in trainer order.
func NewDeterministic(m *model.Model) (*Deterministic, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	system := NewArcEager(nlp.DepRelSet())
	expected := system.Transitions.Values()
	if len(m.Labels) != len(expected) {
		return nil, &model.LoadError{
			LoadReason: model.ReasonMalformed,
			Message: fmt.Sprintf("dependency model carries %d transition labels, convention derives %d",
				len(m.Labels), len(expected)),
		}
	}
	for i, label := range m.Labels {
		if label != expected[i] {
			return nil, &model.LoadError{
				LoadReason: model.ReasonMalformed,
				Message: fmt.Sprintf("dependency model transition %d is %q, convention derives %q",
					i, label, expected[i]),
			}
		}
	}
	return &Deterministic{TransFunc: system, Model: m}, nil
}

// TransitionScore is one decoding step's outcome: the applied transition,
// its raw margin over the runner-up, and the calibrated confidence (1.0
// when no calibration is configured).
type TransitionScore struct {
	Transition string
	Margin     float64
	Confidence float64
}

// Parse decodes a labeled dependency tree for the tagged sentence.
func (d *Deterministic) Parse(tokens []string, posLabels []string) (*nlp.DependencyTree, error) {
	tree, _, err := d.parse(tokens, posLabels, false)
	return tree, err
}

// ParseWithScores additionally reports the per-transition margins and
// calibrated confidences of the decoded sequence.
func (d *Deterministic) ParseWithScores(tokens []string, posLabels []string) (*nlp.DependencyTree, []TransitionScore, error) {
	return d.parse(tokens, posLabels, true)
}

func (d *Deterministic) parse(tokens []string, posLabels []string, withScores bool) (*nlp.DependencyTree, []TransitionScore, error) {
	if len(tokens) == 0 {
		return nil, nil, &DecodeError{"cannot parse an empty sentence"}
	}
	if len(tokens) != len(posLabels) {
		return nil, nil, &DecodeError{
			fmt.Sprintf("got %d tokens but %d POS labels", len(tokens), len(posLabels))}
	}
	if err := nlp.VerifyPOSTags(posLabels); err != nil {
		return nil, nil, err
	}

	conf := NewSimpleConfiguration(nlp.Zip(tokens, posLabels))
	var scores []TransitionScore
	if withScores {
		scores = make([]TransitionScore, 0, 2*len(tokens))
	}
	// arc-eager touches each token at most twice (shift/right then
	// left/reduce); anything past that bound is a broken sequence
	maxSteps := 2*len(tokens) + 2
	for steps := 0; !conf.Terminal(); steps++ {
		if steps > maxSteps {
			return nil, nil, &DecodeError{
				fmt.Sprintf("no terminal configuration after %d transitions", steps)}
		}
		legal := d.TransFunc.PossibleTransitions(conf)
		if len(legal) == 0 {
			return nil, nil, &DecodeError{
				fmt.Sprintf("no legal transition in non-terminal configuration %s", conf)}
		}
		best, margin := d.argmax(conf.Features(), legal)
		if withScores {
			scores = append(scores, TransitionScore{
				Transition: d.TransFunc.Name(best),
				Margin:     margin,
				Confidence: d.Calibration.Confidence(margin),
			})
		}
		d.TransFunc.Apply(conf, best)
	}
	tree, err := conf.Tree()
	if err != nil {
		return nil, nil, err
	}
	return tree, scores, nil
}

// argmax scores the legal transitions and returns the winner plus its
// margin over the runner-up. legal is in inventory order, so the first
// maximum wins ties.
func (d *Deterministic) argmax(features []string, legal []Transition) (Transition, float64) {
	var (
		best                Transition
		bestScore, runnerUp float64
		notFirst, hasRunner bool
	)
	for _, transition := range legal {
		score := d.Model.Score(features, d.Model.Labels[transition])
		switch {
		case !notFirst:
			best, bestScore = transition, score
			notFirst = true
		case score > bestScore:
			runnerUp, hasRunner = bestScore, true
			best, bestScore = transition, score
		case !hasRunner || score > runnerUp:
			runnerUp, hasRunner = score, true
		}
	}
	if !hasRunner {
		return best, 0
	}
	return best, bestScore - runnerUp
}

// Calibration rescales a raw margin into (0,1) with a logistic curve. A
// nil Calibration reports confidence 1 for every transition.
type Calibration struct {
	Scale float64
}

func (c *Calibration) Confidence(margin float64) float64 {
	if c == nil {
		return 1
	}
	scale := c.Scale
	if scale <= 0 {
		scale = 1
	}
	return 1 / (1 + math.Exp(-margin/scale))
}
