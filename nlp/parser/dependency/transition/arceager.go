package transition

import (
	"fmt"

	nlp "sema/nlp/types"
	"sema/util"
)

// ArcEager is the arc-eager transition system:
//
//	LA-r	(S|wi, wj|B, A) => (S,       wj|B, A+{(wj,r,wi)})  if wi has no head; wi != ROOT
//	RA-r	(S|wi, wj|B, A) => (S|wi|wj, B,    A+{(wi,r,wj)})
//	RE	(S|wi, B,    A) => (S,       B,    A)              if wi has a head
//	SH	(S,    wi|B, A) => (S|wi,    B,    A)
//
// Right arcs are created eagerly, before reduction. The ROOT node sits at
// the bottom of the stack; the root token's sentinel arc is a plain RA-ROOT
// from it.
type ArcEager struct {
	SHIFT, REDUCE Transition
	LEFT, RIGHT   Transition

	Relations   *util.EnumSet
	Transitions *util.EnumSet
}

func NewArcEager(relations *util.EnumSet) *ArcEager {
	transitions := util.NewEnumSet(relations.Len()*2 + 2)
	for _, name := range TransitionInventory(relations) {
		transitions.Add(name)
	}
	transitions.Frozen = true
	iSH, _ := transitions.IndexOf("SH")
	iRE, _ := transitions.IndexOf("RE")
	return &ArcEager{
		SHIFT:       Transition(iSH),
		REDUCE:      Transition(iRE),
		LEFT:        Transition(iRE + 1),
		RIGHT:       Transition(iRE + 1 + relations.Len()),
		Relations:   relations,
		Transitions: transitions,
	}
}

func (a *ArcEager) TransitionTypes() []string {
	return []string{"SH", "RE", "LA-*", "RA-*"}
}

// Apply mutates the configuration with the given transition. Illegal
// transitions are programmer errors here; legality is decided by
// PossibleTransitions before the argmax.
func (a *ArcEager) Apply(conf *SimpleConfiguration, transition Transition) {
	switch {
	case transition >= a.LEFT && transition < a.RIGHT:
		wi, wiExists := conf.Stack().Pop()
		if conf.HasHead(wi) {
			panic("Can't LA, stack top already has a head")
		}
		wj, wjExists := conf.Queue().Peek()
		if !(wiExists && wjExists) {
			panic("Can't LA, stack and/or queue are/is empty")
		}
		relation := a.relationOf(transition, a.LEFT)
		conf.AddArc(nlp.DepArc{Modifier: wi, Head: wj, Relation: relation})
	case transition >= a.RIGHT:
		wi, wiExists := conf.Stack().Peek()
		wj, wjExists := conf.Queue().Pop()
		if !(wiExists && wjExists) {
			panic("Can't RA, stack and/or queue are/is empty")
		}
		relation := a.relationOf(transition, a.RIGHT)
		conf.Stack().Push(wj)
		conf.AddArc(nlp.DepArc{Modifier: wj, Head: wi, Relation: relation})
	case transition == a.REDUCE:
		if conf.Stack().Size() == 1 {
			panic("Attempted to reduce the ROOT node")
		}
		wi, wiExists := conf.Stack().Pop()
		if !wiExists {
			panic("Can't reduce, stack is empty")
		}
		if !conf.HasHead(wi) {
			panic(fmt.Sprintf("Can't reduce %d if it doesn't have a head", wi))
		}
	case transition == a.SHIFT:
		wi, wiExists := conf.Queue().Pop()
		if !wiExists {
			panic("Can't shift, queue is empty")
		}
		conf.Stack().Push(wi)
	default:
		panic(fmt.Sprintf("Unknown transition %d", transition))
	}
	conf.Last = transition
}

// PossibleTransitions yields the transitions legal in the configuration,
// in inventory order. The mask is what keeps the greedy argmax inside the
// transition system:
//   - SH needs a non-empty queue
//   - RE needs a non-ROOT stack top that already has a head
//   - LA-r needs a headless non-ROOT stack top and a non-empty queue
//   - RA-r needs a stack top and a non-empty queue; from ROOT only RA-ROOT
//     is legal, and only once, preserving the single-root invariant
func (a *ArcEager) PossibleTransitions(conf *SimpleConfiguration) []Transition {
	legal := make([]Transition, 0, a.Transitions.Len())
	sPeek, sExists := conf.Stack().Peek()
	_, qExists := conf.Queue().Peek()

	if qExists {
		legal = append(legal, a.SHIFT)
	}
	if sExists && sPeek != 0 && conf.HasHead(sPeek) {
		legal = append(legal, a.REDUCE)
	}
	if sExists && qExists {
		if sPeek != 0 && !conf.HasHead(sPeek) {
			for rel := 0; rel < a.Relations.Len(); rel++ {
				legal = append(legal, a.LEFT+Transition(rel))
			}
		}
		if sPeek == 0 {
			if len(conf.ChildLabels(0)) == 0 {
				rootRel, _ := a.Relations.IndexOf(nlp.ROOT_LABEL)
				legal = append(legal, a.RIGHT+Transition(rootRel))
			}
		} else {
			for rel := 0; rel < a.Relations.Len(); rel++ {
				legal = append(legal, a.RIGHT+Transition(rel))
			}
		}
	}
	return legal
}

func (a *ArcEager) relationOf(transition, base Transition) nlp.DepRel {
	return nlp.DepRel(a.Relations.ValueOf(int(transition - base)))
}

// Name returns the inventory name of a transition, e.g. "RA-nsubj".
func (a *ArcEager) Name(transition Transition) string {
	return a.Transitions.ValueOf(int(transition))
}
