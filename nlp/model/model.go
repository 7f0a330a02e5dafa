// Package model holds the trained-model contract shared by the POS tagger
// and the dependency parser: a feature-to-label weight table, an ordered
// label inventory, an optional exact-match dictionary and provenance
// metadata, together with the structured and binary codecs that produce it.
//
// Models are produced offline, loaded once per process and never mutated
// afterward; a loaded *Model is safe for concurrent readers.
package model

import "fmt"

// ModelType discriminates the two model kinds in the binary container.
type ModelType byte

const (
	ModelTypePOS ModelType = 0x01
	ModelTypeDep ModelType = 0x02
)

func (t ModelType) String() string {
	switch t {
	case ModelTypePOS:
		return "pos"
	case ModelTypeDep:
		return "dependency"
	default:
		return fmt.Sprintf("unknown(0x%02x)", byte(t))
	}
}

// Provenance records where a model came from and how well it did.
type Provenance struct {
	TrainCorpus          string  `json:"trainCorpus"`
	CorpusVersion        string  `json:"corpusVersion"`
	TrainingDate         string  `json:"trainingDate"`
	DevAccuracy          float64 `json:"devAccuracy"`
	PruneThreshold       float64 `json:"pruneThreshold"`
	PostPruneDevAccuracy float64 `json:"postPruneDevAccuracy"`
}

// Model is the in-memory trained model. Weights maps feature string to
// per-label weight; Labels is the trainer's ordered label inventory (ties
// in scoring break toward the earlier label); Dictionary is the optional
// fast-path word-to-label table, frozen once loaded.
type Model struct {
	Weights    map[string]map[string]float64
	Labels     []string
	Dictionary map[string]string
	Provenance Provenance
}

// Validate checks the structural invariants: a non-empty label inventory,
// and every label referenced by Weights or Dictionary belonging to it.
// A model failing validation is malformed and must not be used.
func (m *Model) Validate() error {
	if m.Weights == nil {
		return &LoadError{ReasonMalformed, "model has no weight table"}
	}
	if len(m.Labels) == 0 {
		return &LoadError{ReasonMalformed, "model has an empty label inventory"}
	}
	inventory := make(map[string]bool, len(m.Labels))
	for _, label := range m.Labels {
		if inventory[label] {
			return &LoadError{ReasonMalformed, fmt.Sprintf("duplicate label %q in inventory", label)}
		}
		inventory[label] = true
	}
	for feature, labelWeights := range m.Weights {
		for label := range labelWeights {
			if !inventory[label] {
				return &LoadError{ReasonMalformed,
					fmt.Sprintf("weight for feature %q references label %q outside the inventory", feature, label)}
			}
		}
	}
	for word, label := range m.Dictionary {
		if !inventory[label] {
			return &LoadError{ReasonMalformed,
				fmt.Sprintf("dictionary entry %q references label %q outside the inventory", word, label)}
		}
	}
	return nil
}

// DictLookup is the fast-path dictionary probe: exact, case-sensitive.
func (m *Model) DictLookup(word string) (string, bool) {
	label, exists := m.Dictionary[word]
	return label, exists
}

// Score sums the weights of the present features for one label. Unseen
// features and unseen feature/label pairs contribute zero; that is a
// feature miss, not an error.
func (m *Model) Score(features []string, label string) float64 {
	var sum float64
	for _, feature := range features {
		labelWeights, exists := m.Weights[feature]
		if !exists {
			continue
		}
		sum += labelWeights[label]
	}
	return sum
}

// Predict returns the argmax label over the full inventory, ties broken by
// inventory order, along with its score.
func (m *Model) Predict(features []string) (string, float64) {
	var (
		best      string
		bestScore float64
		notFirst  bool
	)
	for _, label := range m.Labels {
		score := m.Score(features, label)
		if !notFirst || score > bestScore {
			best, bestScore = label, score
			notFirst = true
		}
	}
	return best, bestScore
}
