// Package pipeline chains the POS tagger and the dependency parser into
// the annotation flow consumed by the semantic layers: tokens in, tagged
// pairs and a labeled dependency tree out.
package pipeline

import (
	"sema/nlp/model"
	"sema/nlp/parser/dependency/transition"
	"sema/nlp/tagger"
	nlp "sema/nlp/types"
)

type Pipeline struct {
	Tagger *tagger.Tagger
	Parser *transition.Deterministic
}

// Annotated is one sentence's full annotation.
type Annotated struct {
	Pairs  []nlp.TaggedToken
	Tree   *nlp.DependencyTree
	Scores []transition.TransitionScore
}

func New(posModel, depModel *model.Model) (*Pipeline, error) {
	t, err := tagger.New(posModel)
	if err != nil {
		return nil, err
	}
	parser, err := transition.NewDeterministic(depModel)
	if err != nil {
		return nil, err
	}
	parser.Calibration = &transition.Calibration{Scale: 1}
	return &Pipeline{Tagger: t, Parser: parser}, nil
}

// Annotate tags and parses one pre-tokenized sentence.
func (p *Pipeline) Annotate(tokens []string) (*Annotated, error) {
	pairs := p.Tagger.TagFormatted(tokens)
	labels := make([]string, len(pairs))
	for i, pair := range pairs {
		labels[i] = pair.POS
	}
	tree, scores, err := p.Parser.ParseWithScores(tokens, labels)
	if err != nil {
		return nil, err
	}
	return &Annotated{Pairs: pairs, Tree: tree, Scores: scores}, nil
}
