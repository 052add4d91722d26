package fsm

// StateID is a unique identifier for a node
type StateID int

// StateNone marks the absence of a node: no parent, or a machine not yet initialized
const StateNone StateID = -1

// Event names an input the machine may react to
type Event uint8

// Node is a state in the hierarchy
type Node[T any] struct {
	ID       StateID
	Name     string
	ParentID StateID

	// Path from the outermost ancestor to this node, filled by CompilePaths
	Path []StateID

	OnEnter []ActionFunc[T]
	OnExit  []ActionFunc[T]

	// Transitions in evaluation order; the first whose guard passes wins
	Transitions []Transition[T]
}

// Transition links a source node to TargetID when Event arrives and Guard passes
type Transition[T any] struct {
	TargetID StateID
	Event    Event
	Guard    GuardFunc[T] // nil = always
}

// GuardFunc returns true if the transition may occur
type GuardFunc[T any] func(ctx T) bool

// ActionFunc executes a side effect on entry or exit
type ActionFunc[T any] func(ctx T)

// TransitionHook observes every completed state change before entry and exit actions run
type TransitionHook func(from, to StateID)
