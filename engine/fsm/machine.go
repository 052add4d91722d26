package fsm

import "fmt"

// Machine is a hierarchical finite state machine driven by events
// T is the context passed to guards and actions. Not safe for concurrent use
type Machine[T any] struct {
	nodes    map[StateID]*Node[T]
	compiled bool

	activeID   StateID
	activePath []StateID

	// OnTransition, when set, observes each state change
	OnTransition TransitionHook
}

// NewMachine creates an empty machine
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes:    make(map[StateID]*Node[T]),
		activeID: StateNone,
	}
}

// Init enters initialID, running OnEnter along its path from the outermost ancestor
func (m *Machine[T]) Init(ctx T, initialID StateID) error {
	if !m.compiled {
		return fmt.Errorf("FSM not compiled")
	}
	node, ok := m.nodes[initialID]
	if !ok {
		return fmt.Errorf("initial state ID %d not found", initialID)
	}

	m.activeID = initialID
	m.activePath = append(m.activePath[:0], node.Path...)
	for _, id := range m.activePath {
		runActions(ctx, m.nodes[id].OnEnter)
	}
	return nil
}

// Current returns the active leaf, StateNone before Init
func (m *Machine[T]) Current() StateID {
	return m.activeID
}

// In reports whether id is the active leaf or one of its ancestors
func (m *Machine[T]) In(id StateID) bool {
	for _, p := range m.activePath {
		if p == id {
			return true
		}
	}
	return false
}

// StateName returns the name of a node, empty if unknown
func (m *Machine[T]) StateName(id StateID) string {
	if node, ok := m.nodes[id]; ok {
		return node.Name
	}
	return ""
}

// HandleEvent offers ev to the active leaf, bubbling up to its ancestors
// Returns true if a transition fired
func (m *Machine[T]) HandleEvent(ctx T, ev Event) bool {
	for currID := m.activeID; currID != StateNone; {
		node := m.nodes[currID]
		for _, t := range node.Transitions {
			if t.Event != ev {
				continue
			}
			if t.Guard == nil || t.Guard(ctx) {
				m.transition(ctx, t.TargetID)
				return true
			}
		}
		currID = node.ParentID
	}
	return false
}

// transition marks the target active before any action runs, so an action that
// re-enters HandleEvent sees the new state and a repeated event finds no source
func (m *Machine[T]) transition(ctx T, targetID StateID) {
	if m.activeID == targetID {
		return
	}
	target := m.nodes[targetID]

	fromID := m.activeID
	fromPath := make([]StateID, len(m.activePath))
	copy(fromPath, m.activePath)

	// Deepest shared ancestor
	lca := -1
	for i := 0; i < len(fromPath) && i < len(target.Path); i++ {
		if fromPath[i] != target.Path[i] {
			break
		}
		lca = i
	}

	m.activeID = targetID
	m.activePath = append(m.activePath[:0], target.Path...)
	if m.OnTransition != nil {
		m.OnTransition(fromID, targetID)
	}

	// Exit walks up from the old leaf, entry walks down to the new one
	for i := len(fromPath) - 1; i > lca; i-- {
		runActions(ctx, m.nodes[fromPath[i]].OnExit)
	}
	for i := lca + 1; i < len(target.Path); i++ {
		runActions(ctx, m.nodes[target.Path[i]].OnEnter)
	}
}

func runActions[T any](ctx T, fns []ActionFunc[T]) {
	for _, fn := range fns {
		fn(ctx)
	}
}
