package fsm

import "fmt"

// AddState adds a node under parentID (StateNone for a top-level node) and returns it
func (m *Machine[T]) AddState(id StateID, name string, parentID StateID) *Node[T] {
	node := &Node[T]{
		ID:       id,
		Name:     name,
		ParentID: parentID,
	}
	m.nodes[id] = node
	m.compiled = false
	return node
}

// AddTransition appends a transition to the source node; unknown sources are ignored
func (m *Machine[T]) AddTransition(sourceID StateID, t Transition[T]) {
	if node, ok := m.nodes[sourceID]; ok {
		node.Transitions = append(node.Transitions, t)
	}
}

// OnEnter appends entry actions to a node
func (m *Machine[T]) OnEnter(id StateID, fns ...ActionFunc[T]) {
	if node, ok := m.nodes[id]; ok {
		node.OnEnter = append(node.OnEnter, fns...)
	}
}

// OnExit appends exit actions to a node
func (m *Machine[T]) OnExit(id StateID, fns ...ActionFunc[T]) {
	if node, ok := m.nodes[id]; ok {
		node.OnExit = append(node.OnExit, fns...)
	}
}

// CompilePaths calculates the Path slice for every node and validates the graph
// Must be called after all nodes and transitions are added and before Init
func (m *Machine[T]) CompilePaths() error {
	for id, node := range m.nodes {
		path := make([]StateID, 0, 4)
		for curr := node; ; {
			path = append(path, curr.ID)
			if len(path) > len(m.nodes) {
				return fmt.Errorf("node %d: parent cycle", id)
			}
			if curr.ParentID == StateNone {
				break
			}
			parent, ok := m.nodes[curr.ParentID]
			if !ok {
				return fmt.Errorf("node %d references missing parent %d", curr.ID, curr.ParentID)
			}
			curr = parent
		}

		// Reverse to get [outermost, ..., node]
		for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
			path[i], path[j] = path[j], path[i]
		}
		node.Path = path

		for _, t := range node.Transitions {
			if _, ok := m.nodes[t.TargetID]; !ok {
				return fmt.Errorf("node %d: transition on event %d targets missing node %d", id, t.Event, t.TargetID)
			}
		}
	}
	m.compiled = true
	return nil
}
