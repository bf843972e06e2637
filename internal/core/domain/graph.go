package domain

import (
	"iter"
	"slices"

	"go.trai.ch/zerr"
)

// Graph is the dependency graph of targets selected for one run.
type Graph struct {
	deps           map[string][]string
	executionOrder []string
}

// NewGraph creates an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		deps: make(map[string][]string),
	}
}

// AddTarget adds a target and its dependency edges to the graph.
// It returns an error if the target was already added.
func (g *Graph) AddTarget(name string, deps []string) error {
	if _, exists := g.deps[name]; exists {
		return zerr.With(ErrTargetAlreadyExists, "target", name)
	}
	g.deps[name] = slices.Clone(deps)
	return nil
}

// TargetCount returns the number of targets in the graph.
func (g *Graph) TargetCount() int {
	return len(g.deps)
}

// Validate checks that every dependency is present and that the graph is
// acyclic, and populates the execution order. Iteration is over sorted names
// so the order is deterministic.
func (g *Graph) Validate() error {
	g.executionOrder = make([]string, 0, len(g.deps))
	visited := make(map[string]int) // 0: unvisited, 1: visiting, 2: visited
	var path []string

	var visit func(u string) error
	visit = func(u string) error {
		visited[u] = 1
		path = append(path, u)

		deps, exists := g.deps[u]
		if !exists {
			return zerr.With(ErrMissingDependency, "dependency", u)
		}

		for _, dep := range deps {
			if visited[dep] == 1 {
				return g.buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		g.executionOrder = append(g.executionOrder, u)
		return nil
	}

	for _, name := range g.sortedNames() {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}

	return nil
}

func (g *Graph) sortedNames() []string {
	names := make([]string, 0, len(g.deps))
	for name := range g.deps {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// buildCycleError constructs an error carrying the cycle path as metadata.
func (g *Graph) buildCycleError(path []string, dep string) error {
	cyclePath := ""
	startIdx := slices.Index(path, dep)
	for i := startIdx; i >= 0 && i < len(path); i++ {
		cyclePath += path[i] + " -> "
	}
	cyclePath += dep
	return zerr.With(ErrCycleDetected, "cycle", cyclePath)
}

// Walk returns an iterator yielding target names in execution order.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Walk() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, name := range g.executionOrder {
			if !yield(name) {
				return
			}
		}
	}
}

// Levels groups targets into topological levels: every target's dependencies
// live in strictly earlier levels, so targets within a level are independent
// and may build concurrently. It assumes Validate() has been called.
func (g *Graph) Levels() [][]string {
	if len(g.executionOrder) == 0 {
		return nil
	}
	depth := make(map[string]int, len(g.deps))
	maxDepth := 0
	for _, name := range g.executionOrder {
		d := 0
		for _, dep := range g.deps[name] {
			if depth[dep]+1 > d {
				d = depth[dep] + 1
			}
		}
		depth[name] = d
		if d > maxDepth {
			maxDepth = d
		}
	}

	levels := make([][]string, maxDepth+1)
	for _, name := range g.executionOrder {
		levels[depth[name]] = append(levels[depth[name]], name)
	}
	return levels
}
