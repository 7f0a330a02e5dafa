// Package transition implements arc-eager transition-based dependency
// parsing over a stack/buffer configuration, decoded greedily with a
// feature-weighted linear model.
package transition

import (
	"fmt"
	"sort"
	"strings"

	"sema/alg"
	nlp "sema/nlp/types"
	"sema/util"
)

// Transition is an index into the transition inventory.
type Transition int

// DecodeError is a fatal decoding-invariant violation: the parser
// terminated with an unattached token or an illegal transition sequence.
// It is surfaced, never silently patched.
type DecodeError struct {
	Message string
}

func (e *DecodeError) Error() string {
	return "decode invariant violated: " + e.Message
}

func (e *DecodeError) Reason() string {
	return "decode_invariant"
}

// SimpleConfiguration is the parser state: a stack, a buffer (queue) and
// the arc set built so far. Node 0 is the artificial ROOT and starts on
// the stack; tokens occupy nodes 1..N and start on the queue in order.
type SimpleConfiguration struct {
	Nodes []nlp.TaggedToken

	InternalStack *alg.StackArray
	InternalQueue *alg.QueueSlice

	arcs        []nlp.DepArc
	heads       []int
	relations   []nlp.DepRel
	childLabels [][]string

	Last Transition
}

func NewSimpleConfiguration(sent nlp.TaggedSentence) *SimpleConfiguration {
	tokens := sent.TaggedTokens()
	c := &SimpleConfiguration{
		Nodes:         make([]nlp.TaggedToken, 0, len(tokens)+1),
		InternalStack: alg.NewStackArray(len(tokens) + 1),
		InternalQueue: alg.NewQueueSlice(len(tokens)),
		arcs:          make([]nlp.DepArc, 0, len(tokens)),
		heads:         make([]int, len(tokens)+1),
		relations:     make([]nlp.DepRel, len(tokens)+1),
		childLabels:   make([][]string, len(tokens)+1),
		Last:          Transition(-1),
	}
	c.Nodes = append(c.Nodes, nlp.TaggedToken{Token: nlp.ROOT_TOKEN, POS: nlp.ROOT_LABEL})
	c.Nodes = append(c.Nodes, tokens...)
	for i := range c.heads {
		c.heads[i] = -1
	}
	c.InternalStack.Push(0)
	for i := 1; i <= len(tokens); i++ {
		c.InternalQueue.Enqueue(i)
	}
	return c
}

func (c *SimpleConfiguration) Stack() *alg.StackArray {
	return c.InternalStack
}

func (c *SimpleConfiguration) Queue() *alg.QueueSlice {
	return c.InternalQueue
}

// Terminal holds when the buffer is drained and only ROOT remains on the
// stack.
func (c *SimpleConfiguration) Terminal() bool {
	return c.Queue().Size() == 0 && c.Stack().Size() == 1
}

func (c *SimpleConfiguration) HasHead(node int) bool {
	return c.heads[node] >= 0
}

func (c *SimpleConfiguration) AddArc(arc nlp.DepArc) {
	if c.heads[arc.Modifier] >= 0 {
		panic(fmt.Sprintf("Can't attach node %d, it already has a head", arc.Modifier))
	}
	c.arcs = append(c.arcs, arc)
	c.heads[arc.Modifier] = arc.Head
	c.relations[arc.Modifier] = arc.Relation
	c.addChildLabel(arc.Head, string(arc.Relation))
}

// addChildLabel keeps each node's child label set sorted and unique so the
// extracted feature string is independent of attachment order.
func (c *SimpleConfiguration) addChildLabel(node int, label string) {
	labels := c.childLabels[node]
	pos := sort.SearchStrings(labels, label)
	if pos < len(labels) && labels[pos] == label {
		return
	}
	labels = append(labels, "")
	copy(labels[pos+1:], labels[pos:])
	labels[pos] = label
	c.childLabels[node] = labels
}

func (c *SimpleConfiguration) ChildLabels(node int) []string {
	return c.childLabels[node]
}

func (c *SimpleConfiguration) Arcs() []nlp.DepArc {
	return c.arcs
}

func (c *SimpleConfiguration) NumTokens() int {
	return len(c.Nodes) - 1
}

// Tree converts a terminal configuration into a well-formed dependency
// tree, or fails with a DecodeError naming the first unattached token.
func (c *SimpleConfiguration) Tree() (*nlp.DependencyTree, error) {
	tree := &nlp.DependencyTree{
		Nodes: c.Nodes,
		Arcs:  make([]nlp.DepArc, c.NumTokens()),
	}
	for i := 1; i <= c.NumTokens(); i++ {
		if c.heads[i] < 0 {
			return nil, &DecodeError{fmt.Sprintf("token %d (%q) terminated without a head", i, c.Nodes[i].Token)}
		}
		tree.Arcs[i-1] = nlp.DepArc{Modifier: i, Head: c.heads[i], Relation: c.relations[i]}
	}
	if err := tree.Validate(); err != nil {
		return nil, &DecodeError{err.Error()}
	}
	return tree, nil
}

func (c *SimpleConfiguration) String() string {
	stackStrings := make([]string, 0, c.Stack().Size())
	for i := c.Stack().Size() - 1; i >= 0; i-- {
		atI, _ := c.Stack().Index(i)
		stackStrings = append(stackStrings, c.Nodes[atI].Token)
	}
	queueStrings := make([]string, 0, c.Queue().Size())
	for i := 0; i < c.Queue().Size(); i++ {
		atI, _ := c.Queue().Index(i)
		queueStrings = append(queueStrings, c.Nodes[atI].Token)
	}
	return fmt.Sprintf("([%s],\t[%s],\tA%d)",
		strings.Join(stackStrings, ","), strings.Join(queueStrings, ","), len(c.arcs))
}

// TransitionInventory builds the ordered transition label list for a
// relation set: SH, RE, then the LA block, then the RA block. Trained
// dependency models carry exactly this inventory as their labels.
func TransitionInventory(relations *util.EnumSet) []string {
	inventory := make([]string, 0, relations.Len()*2+2)
	inventory = append(inventory, "SH", "RE")
	for _, relation := range relations.Values() {
		inventory = append(inventory, "LA-"+relation)
	}
	for _, relation := range relations.Values() {
		inventory = append(inventory, "RA-"+relation)
	}
	return inventory
}
