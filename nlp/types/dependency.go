package types

import (
	"fmt"
	"strings"
)

type DepRel string

func (d DepRel) String() string {
	return string(d)
}

// DepArc attaches Modifier to Head with the given relation. Node 0 is the
// artificial ROOT; the root token's arc has Head 0 and relation ROOT.
type DepArc struct {
	Modifier int
	Head     int
	Relation DepRel
}

func (arc DepArc) String() string {
	return fmt.Sprintf("(%d,%s,%d)", arc.Head, arc.Relation, arc.Modifier)
}

// DependencyTree is the parse over a tagged sentence. Nodes[0] is the
// artificial ROOT node; tokens occupy nodes 1..N. Arcs is indexed by
// modifier: Arcs[i-1] is the arc whose modifier is node i, so a tree over
// N tokens carries exactly N arcs including the root's sentinel arc.
type DependencyTree struct {
	Nodes []TaggedToken
	Arcs  []DepArc
}

func (t *DependencyTree) NumberOfNodes() int {
	return len(t.Nodes)
}

func (t *DependencyTree) NumberOfArcs() int {
	return len(t.Arcs)
}

// HeadOf returns the head node of token node i, or -1 if unattached.
func (t *DependencyTree) HeadOf(i int) int {
	if i <= 0 || i > len(t.Arcs) {
		return -1
	}
	return t.Arcs[i-1].Head
}

func (t *DependencyTree) RelationOf(i int) DepRel {
	if i <= 0 || i > len(t.Arcs) {
		return DepRel("")
	}
	return t.Arcs[i-1].Relation
}

// Root returns the node index of the token attached to the artificial ROOT,
// or 0 if there is none.
func (t *DependencyTree) Root() int {
	for _, arc := range t.Arcs {
		if arc.Head == 0 {
			return arc.Modifier
		}
	}
	return 0
}

// Validate checks tree well-formedness: one arc per non-root token, a single
// arc headed by the artificial root, and no cycles.
func (t *DependencyTree) Validate() error {
	numTokens := len(t.Nodes) - 1
	if len(t.Arcs) != numTokens {
		return fmt.Errorf("tree over %d tokens has %d arcs", numTokens, len(t.Arcs))
	}
	roots := 0
	for i, arc := range t.Arcs {
		if arc.Modifier != i+1 {
			return fmt.Errorf("arc %d has modifier %d", i, arc.Modifier)
		}
		if arc.Head < 0 || arc.Head > numTokens {
			return fmt.Errorf("arc %d has head %d out of range", i, arc.Head)
		}
		if arc.Head == 0 {
			roots++
		}
	}
	if roots != 1 {
		return fmt.Errorf("tree has %d arcs headed by root", roots)
	}
	// walking up from any node must reach ROOT
	for i := 1; i <= numTokens; i++ {
		current := i
		for steps := 0; current != 0; steps++ {
			if steps > numTokens {
				return fmt.Errorf("cycle reachable from node %d", i)
			}
			current = t.HeadOf(current)
			if current < 0 {
				return fmt.Errorf("node %d is unattached", i)
			}
		}
	}
	return nil
}

func (t *DependencyTree) TaggedSentence() TaggedSentence {
	return BasicTaggedSentence(t.Nodes[1:])
}

func (t *DependencyTree) String() string {
	arcs := make([]string, len(t.Arcs))
	for i, arc := range t.Arcs {
		arcs[i] = arc.String()
	}
	return strings.Join(arcs, "\n")
}

// Conll writes the tree in a reduced CoNLL-X layout: id, form, postag,
// head, deprel.
func (t *DependencyTree) Conll() string {
	var buf strings.Builder
	for i, node := range t.Nodes[1:] {
		arc := t.Arcs[i]
		fmt.Fprintf(&buf, "%d\t%s\t%s\t%d\t%s\n", i+1, node.Token, node.POS, arc.Head, arc.Relation)
	}
	return buf.String()
}

func (t *DependencyTree) Equal(other *DependencyTree) bool {
	if t.NumberOfNodes() != other.NumberOfNodes() || t.NumberOfArcs() != other.NumberOfArcs() {
		return false
	}
	for i, node := range t.Nodes {
		if node != other.Nodes[i] {
			return false
		}
	}
	for i, arc := range t.Arcs {
		if arc != other.Arcs[i] {
			return false
		}
	}
	return true
}
