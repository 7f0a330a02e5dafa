// Package tagger implements the greedy averaged-perceptron part-of-speech
// tagger. Decoding is left to right with no backtracking: the dictionary
// fast path answers unambiguous tokens in O(1), everything else is scored
// as a weighted feature sum over the model's label inventory.
package tagger

import (
	"sema/nlp/model"
	nlp "sema/nlp/types"
)

type Tagger struct {
	model *model.Model
}

// New validates the trained model against the tagger's contract: structural
// validity plus label closure against the Label Convention's POS tag set.
// Closure here is what guarantees Tag can never emit an out-of-set label.
func New(m *model.Model) (*Tagger, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := nlp.VerifyPOSTags(m.Labels); err != nil {
		return nil, err
	}
	return &Tagger{model: m}, nil
}

func (t *Tagger) Model() *model.Model {
	return t.model
}

// Tag emits one POS label per token. Dictionary hits bypass scoring but
// still feed the rolling tag context for later positions.
func (t *Tagger) Tag(tokens []string) []string {
	labels := make([]string, len(tokens))
	ctx := initialContext
	for i, token := range tokens {
		label, inDict := t.model.DictLookup(token)
		if !inDict {
			label, _ = t.model.Predict(extract(tokens, i, ctx))
		}
		labels[i] = label
		ctx = ctx.advance(label)
	}
	return labels
}

// TagFormatted returns (word, label) pairs for downstream consumers.
func (t *Tagger) TagFormatted(tokens []string) []nlp.TaggedToken {
	return nlp.Zip(tokens, t.Tag(tokens))
}
