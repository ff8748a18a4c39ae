// Package graph implements the Layout Graph: the dependency DAG over
// resolved types, built by collapsing strongly-connected components with
// Tarjan's algorithm so that a true cycle among mutually dependent types is
// reported as a single, clearly-named error rather than a resolver stall.
package graph

import (
	"iter"
	"slices"

	"github.com/layoutforge/abi/internal/debug"
)

// Edges returns, for a node, the set of nodes it directly depends on.
type Edges func(node string) []string

// DAG is the strongly-connected-component condensation of a directed graph
// over type names, in topological order (dependencies before dependents).
type DAG struct {
	keys       map[string]int
	components []Component
}

// Component is a strongly connected component: one node for an acyclic
// dependency, more than one node when types mutually depend on each other.
type Component struct {
	index    int
	members  []string
	deps     []int
	selfLoop bool // single-member component that depends on itself
}

// Members are the type names in this component, in discovery order.
func (c *Component) Members() []string { return slices.Clone(c.members) }

// Cyclic reports whether this component represents a genuine dependency
// cycle: more than one member, or a single type that depends on itself.
func (c *Component) Cyclic() bool { return len(c.members) > 1 || c.selfLoop }

// Index is this component's position in topological order.
func (c *Component) Index() int { return c.index }

// ForNode returns the component containing node, or nil if node is unknown.
func (d *DAG) ForNode(node string) *Component {
	idx, ok := d.keys[node]
	if !ok {
		return nil
	}
	return &d.components[idx]
}

// Topological iterates components in dependency order.
func (d *DAG) Topological() iter.Seq[*Component] {
	return func(yield func(*Component) bool) {
		for i := range d.components {
			if !yield(&d.components[i]) {
				return
			}
		}
	}
}

// Order returns every member name across all components, concatenated in
// topological order. This is the resolution_order exposed to callers.
func (d *DAG) Order() []string {
	out := make([]string, 0, len(d.keys))
	for _, c := range d.components {
		out = append(out, c.members...)
	}
	return out
}

// Cycles returns the member lists of every component that is a genuine
// cycle (more than one member, or a single node that depends on itself).
func (d *DAG) Cycles() [][]string {
	var out [][]string
	for _, c := range d.components {
		if c.Cyclic() {
			out = append(out, slices.Clone(c.members))
		}
	}
	return out
}

// Build computes the Layout Graph over names, using edges to find each
// node's dependencies. names is iterated in sorted order so the resulting
// component discovery order — and therefore Order()'s topological order —
// is deterministic regardless of map iteration order upstream.
func Build(names []string, edges Edges) *DAG {
	sorted := slices.Clone(names)
	slices.Sort(sorted)

	d := &DAG{keys: make(map[string]int, len(sorted))}
	t := &tarjan{
		edges:    edges,
		dag:      d,
		metadata: make(map[string]*nodeMeta, len(sorted)),
		depset:   make(map[int]struct{}),
	}
	for _, n := range sorted {
		if _, ok := t.metadata[n]; !ok {
			t.rec(n)
		}
	}
	return d
}

type nodeMeta struct {
	index, low int
	onStack    bool
}

type tarjan struct {
	edges Edges
	dag   *DAG

	index    int
	stack    []string
	metadata map[string]*nodeMeta
	depset   map[int]struct{}
}

func (t *tarjan) rec(node string) *nodeMeta {
	meta := &nodeMeta{index: t.index, low: t.index, onStack: true}
	debug.Log(nil, "rec", "%s index=%d", node, meta.index)

	t.metadata[node] = meta
	t.index++
	offset := len(t.stack)
	t.stack = append(t.stack, node)

	deps := t.edges(node)
	sortedDeps := slices.Clone(deps)
	slices.Sort(sortedDeps)

	for _, dep := range sortedDeps {
		m := t.metadata[dep]
		if m == nil {
			m = t.rec(dep)
			meta.low = min(meta.low, m.low)
			continue
		}
		if m.onStack {
			meta.low = min(meta.low, m.index)
		}
	}

	if meta.index == meta.low {
		members := slices.Clone(t.stack[offset:])
		t.stack = t.stack[:offset]

		comp := Component{index: len(t.dag.components), members: members}
		if len(members) == 1 && slices.Contains(t.edges(members[0]), members[0]) {
			comp.selfLoop = true
		}

		for _, n := range members {
			t.metadata[n].onStack = false
			t.dag.keys[n] = comp.index
			for _, dep := range t.edges(n) {
				if idx, ok := t.dag.keys[dep]; ok && idx != comp.index {
					t.depset[idx] = struct{}{}
				}
			}
		}
		comp.deps = make([]int, 0, len(t.depset))
		for idx := range t.depset {
			comp.deps = append(comp.deps, idx)
		}
		slices.Sort(comp.deps)
		clear(t.depset)

		t.dag.components = append(t.dag.components, comp)
	}

	return meta
}
