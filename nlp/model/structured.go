package model

import (
	"encoding/json"
)

// The structured (non-binary) model form is the trainer's JSON record. The
// trainer historically emitted `classes` for the label inventory and
// `tagdict` for the dictionary; both aliases are accepted on load, the
// canonical names are emitted on save.
type structuredModel struct {
	Weights    map[string]map[string]float64 `json:"weights"`
	Labels     []string                      `json:"labels,omitempty"`
	Classes    []string                      `json:"classes,omitempty"`
	Dictionary map[string]string             `json:"dictionary,omitempty"`
	Tagdict    map[string]string             `json:"tagdict,omitempty"`
	Provenance Provenance                    `json:"provenance"`
}

// LoadStructured decodes and validates a structured model record. The
// result is behaviorally indistinguishable from a binary load of the
// same model.
func LoadStructured(data []byte) (*Model, error) {
	var wire structuredModel
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, &LoadError{ReasonMalformed, err.Error()}
	}
	labels := wire.Labels
	if len(labels) == 0 {
		labels = wire.Classes
	}
	dictionary := wire.Dictionary
	if dictionary == nil {
		dictionary = wire.Tagdict
	}
	m := &Model{
		Weights:    wire.Weights,
		Labels:     labels,
		Dictionary: dictionary,
		Provenance: wire.Provenance,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// EncodeStructured emits the canonical structured form.
func EncodeStructured(m *Model) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	wire := structuredModel{
		Weights:    m.Weights,
		Labels:     m.Labels,
		Dictionary: m.Dictionary,
		Provenance: m.Provenance,
	}
	return json.MarshalIndent(&wire, "", "\t")
}
