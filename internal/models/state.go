package models

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// State is a node in the internship lifecycle graph.
type State string

const (
	StateCreated    State = "CREATED"
	StateSubmitted  State = "SUBMITTED"
	StateReturned   State = "RETURNED"
	StateApproved   State = "APPROVED"
	StateInProgress State = "IN_PROGRESS"
	StateConcluded  State = "CONCLUDED"
	StateEvaluated  State = "EVALUATED"
	StateCancelled  State = "CANCELLED"
)

// StateGraph is the fixed directed graph of legal lifecycle transitions.
// It is built once at startup and never mutated afterwards.
type StateGraph struct {
	initial State
	edges   map[State][]State
}

// NewStateGraph validates and builds a graph from an adjacency map. Every
// state must be reachable from the initial state and every edge target must
// itself be a declared node.
func NewStateGraph(initial State, edges map[State][]State) (*StateGraph, error) {
	if initial == "" {
		return nil, fmt.Errorf("state graph: initial state is required")
	}
	if _, ok := edges[initial]; !ok {
		return nil, fmt.Errorf("state graph: initial state %q is not a declared node", initial)
	}
	for from, targets := range edges {
		seen := make(map[State]struct{}, len(targets))
		for _, to := range targets {
			if _, ok := edges[to]; !ok {
				return nil, fmt.Errorf("state graph: edge %s -> %s targets an undeclared node", from, to)
			}
			if _, dup := seen[to]; dup {
				return nil, fmt.Errorf("state graph: duplicate edge %s -> %s", from, to)
			}
			seen[to] = struct{}{}
		}
	}

	reachable := map[State]struct{}{initial: {}}
	queue := []State{initial}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range edges[current] {
			if _, ok := reachable[next]; ok {
				continue
			}
			reachable[next] = struct{}{}
			queue = append(queue, next)
		}
	}
	if len(reachable) != len(edges) {
		unreachable := make([]string, 0)
		for node := range edges {
			if _, ok := reachable[node]; !ok {
				unreachable = append(unreachable, string(node))
			}
		}
		sort.Strings(unreachable)
		return nil, fmt.Errorf("state graph: unreachable states: %v", unreachable)
	}

	copied := make(map[State][]State, len(edges))
	for from, targets := range edges {
		copied[from] = append([]State(nil), targets...)
	}
	return &StateGraph{initial: initial, edges: copied}, nil
}

// DefaultStateGraph returns the built-in internship lifecycle.
func DefaultStateGraph() *StateGraph {
	graph, err := NewStateGraph(StateCreated, map[State][]State{
		StateCreated:    {StateSubmitted, StateCancelled},
		StateSubmitted:  {StateApproved, StateReturned, StateCancelled},
		StateReturned:   {StateSubmitted, StateCancelled},
		StateApproved:   {StateInProgress, StateCancelled},
		StateInProgress: {StateConcluded},
		StateConcluded:  {StateEvaluated},
		StateEvaluated:  {},
		StateCancelled:  {},
	})
	if err != nil {
		panic(err)
	}
	return graph
}

// LoadStateGraph reads a graph override from a JSON file of the shape
// {"initial": "...", "edges": {"STATE": ["NEXT", ...]}}.
func LoadStateGraph(path string) (*StateGraph, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read state graph file: %w", err)
	}
	var doc struct {
		Initial State             `json:"initial"`
		Edges   map[State][]State `json:"edges"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode state graph file: %w", err)
	}
	return NewStateGraph(doc.Initial, doc.Edges)
}

// Initial returns the state assigned to freshly created internships.
func (g *StateGraph) Initial() State {
	return g.initial
}

// Contains reports whether the state is a declared node.
func (g *StateGraph) Contains(state State) bool {
	_, ok := g.edges[state]
	return ok
}

// AllowedNext returns the ordered list of legal next states. The returned
// slice is a copy; callers may not mutate the graph through it.
func (g *StateGraph) AllowedNext(current State) []State {
	targets, ok := g.edges[current]
	if !ok {
		return nil
	}
	return append([]State(nil), targets...)
}

// CanTransition reports whether requested is an outgoing edge of current.
func (g *StateGraph) CanTransition(current, requested State) bool {
	for _, next := range g.edges[current] {
		if next == requested {
			return true
		}
	}
	return false
}

// Terminal reports whether the state has no outgoing edges.
func (g *StateGraph) Terminal(state State) bool {
	targets, ok := g.edges[state]
	return ok && len(targets) == 0
}

// States returns every declared node sorted for deterministic output.
func (g *StateGraph) States() []State {
	states := make([]State, 0, len(g.edges))
	for node := range g.edges {
		states = append(states, node)
	}
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })
	return states
}
