package blueprint

import (
	"fmt"
	"sort"

	"github.com/v0d1ch/aiken/errors"
)

type nodeKind int

const (
	kindOpaque nodeKind = iota // any data value
	kindInteger
	kindBytes
	kindList
	kindMap
	kindUnion
	kindAlias
)

// node is one resolved schema. References are integer edges into the
// owning graph's node slice, so walking a schema never chases names.
type node struct {
	name      string
	kind      nodeKind
	recursive bool // participates in a constructor-mediated cycle

	target     int // kindAlias
	elem       int // kindList
	key, value int // kindMap
	alts       []ctor
}

// ctor is one alternative of a union node.
type ctor struct {
	index       int
	title       string
	fieldTitles []string
	fields      []int
}

// Graph is the fully resolved form of a blueprint's definitions
// table. Every named definition and every inline schema nested under
// one becomes a node; building the graph fails on dangling
// references, malformed nodes, and cycles that no constructor
// bounds.
type Graph struct {
	nodes  []node
	byName map[string]int
}

// resolveGraph builds the graph for a definitions table. Names are
// processed in sorted order so node numbering is deterministic for a
// given document.
func resolveGraph(defs map[string]*Schema) (*Graph, error) {
	g := &Graph{byName: make(map[string]int, len(defs))}
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		g.byName[name] = len(g.nodes)
		g.nodes = append(g.nodes, node{name: name})
	}
	for _, name := range names {
		if err := g.build(g.byName[name], name, defs[name]); err != nil {
			return nil, err
		}
	}
	if err := g.checkCycles(); err != nil {
		return nil, err
	}
	return g, nil
}

// build fills in the node at idx from the raw schema s. Inline
// sub-schemas get synthetic nodes of their own; named references are
// resolved to existing node indexes and never recursed into.
func (g *Graph) build(idx int, name string, s *Schema) error {
	if s == nil {
		return errors.WithDetailf(ErrBadSchema, "definition %s is empty", name)
	}
	if s.Ref != "" {
		target, err := g.refIndex(s.Ref, name)
		if err != nil {
			return err
		}
		g.nodes[idx].kind = kindAlias
		g.nodes[idx].target = target
		return nil
	}
	if len(s.AnyOf) > 0 {
		return g.buildUnion(idx, name, s.AnyOf)
	}
	switch s.DataType {
	case "":
		g.nodes[idx].kind = kindOpaque
	case "integer":
		g.nodes[idx].kind = kindInteger
	case "bytes":
		g.nodes[idx].kind = kindBytes
	case "list":
		if s.Items == nil {
			return errors.WithDetailf(ErrBadSchema, "list definition %s has no items schema", name)
		}
		elem, err := g.child(s.Items, name+"/items")
		if err != nil {
			return err
		}
		g.nodes[idx].kind = kindList
		g.nodes[idx].elem = elem
	case "map":
		if s.Keys == nil || s.Values == nil {
			return errors.WithDetailf(ErrBadSchema, "map definition %s needs both keys and values schemas", name)
		}
		key, err := g.child(s.Keys, name+"/keys")
		if err != nil {
			return err
		}
		value, err := g.child(s.Values, name+"/values")
		if err != nil {
			return err
		}
		g.nodes[idx].kind = kindMap
		g.nodes[idx].key = key
		g.nodes[idx].value = value
	case "constructor":
		// A bare alternative outside an anyOf wrapper is a
		// one-variant union.
		return g.buildUnion(idx, name, []*Schema{s})
	default:
		return errors.WithDetailf(ErrBadSchema, "definition %s has unknown dataType %q", name, s.DataType)
	}
	return nil
}

func (g *Graph) buildUnion(idx int, name string, alts []*Schema) error {
	seen := make(map[int]bool, len(alts))
	ctors := make([]ctor, 0, len(alts))
	for i, alt := range alts {
		if alt == nil || alt.DataType != "constructor" || alt.Index == nil {
			return errors.WithDetailf(ErrBadSchema, "definition %s alternative %d is not a constructor", name, i)
		}
		if seen[*alt.Index] {
			return errors.WithDetailf(ErrDuplicateIndex, "definition %s declares constructor index %d twice", name, *alt.Index)
		}
		seen[*alt.Index] = true
		c := ctor{index: *alt.Index, title: alt.Title}
		for j, f := range alt.Fields {
			fieldName := fmt.Sprintf("%s/%d.%d", name, *alt.Index, j)
			fi, err := g.child(f, fieldName)
			if err != nil {
				return err
			}
			c.fields = append(c.fields, fi)
			c.fieldTitles = append(c.fieldTitles, f.Title)
		}
		ctors = append(ctors, c)
	}
	g.nodes[idx].kind = kindUnion
	g.nodes[idx].alts = ctors
	return nil
}

// child resolves a nested schema position: a reference goes straight
// to its named node, anything else gets a synthetic node built in
// place.
func (g *Graph) child(s *Schema, name string) (int, error) {
	if s == nil {
		return 0, errors.WithDetailf(ErrBadSchema, "schema at %s is empty", name)
	}
	if s.Ref != "" {
		return g.refIndex(s.Ref, name)
	}
	idx := len(g.nodes)
	g.nodes = append(g.nodes, node{name: name})
	if err := g.build(idx, name, s); err != nil {
		return 0, err
	}
	return idx, nil
}

func (g *Graph) refIndex(ref, at string) (int, error) {
	name, err := refName(ref)
	if err != nil {
		return 0, errors.WithDetail(err, "at "+at)
	}
	idx, ok := g.byName[name]
	if !ok {
		return 0, errors.WithDetailf(ErrDanglingRef, "%s references undeclared definition %q", at, name)
	}
	return idx, nil
}

type edge struct {
	to   int
	ctor bool // crosses a constructor field boundary
}

func (g *Graph) edges(n int) []edge {
	nd := &g.nodes[n]
	switch nd.kind {
	case kindAlias:
		return []edge{{nd.target, false}}
	case kindList:
		return []edge{{nd.elem, false}}
	case kindMap:
		return []edge{{nd.key, false}, {nd.value, false}}
	case kindUnion:
		var es []edge
		for _, c := range nd.alts {
			for _, f := range c.fields {
				es = append(es, edge{f, true})
			}
		}
		return es
	}
	return nil
}

const (
	white = iota
	gray
	black
)

// checkCycles rejects cycles that never pass through a constructor
// field, since those describe no finite value. Cycles bounded by a
// constructor are ordinary recursive types and only get flagged.
func (g *Graph) checkCycles() error {
	state := make([]int, len(g.nodes))
	var path []int
	var viaCtor []bool

	var visit func(n int, ctorEdge bool) error
	visit = func(n int, ctorEdge bool) error {
		switch state[n] {
		case black:
			return nil
		case gray:
			k := 0
			for i, p := range path {
				if p == n {
					k = i
					break
				}
			}
			legal := ctorEdge
			for i := k + 1; i < len(path); i++ {
				if viaCtor[i] {
					legal = true
				}
			}
			if !legal {
				return errors.WithDetailf(ErrCycle, "definition %s reaches itself with no constructor indirection", g.nodes[n].name)
			}
			for i := k; i < len(path); i++ {
				g.nodes[path[i]].recursive = true
			}
			return nil
		}
		state[n] = gray
		path = append(path, n)
		viaCtor = append(viaCtor, ctorEdge)
		for _, e := range g.edges(n) {
			if err := visit(e.to, e.ctor); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		viaCtor = viaCtor[:len(viaCtor)-1]
		state[n] = black
		return nil
	}

	for i := range g.nodes {
		if state[i] == white {
			if err := visit(i, false); err != nil {
				return err
			}
		}
	}
	return nil
}

// addInline resolves a schema that lives outside the definitions
// table, such as a validator argument. Inline schemas cannot be
// referenced, so they cannot close new cycles over the checked
// graph.
func (g *Graph) addInline(s *Schema, name string) (int, error) {
	return g.child(s, name)
}

// Lookup returns the node index of a named definition.
func (g *Graph) Lookup(name string) (int, bool) {
	idx, ok := g.byName[name]
	return idx, ok
}

// Recursive reports whether the definition at idx takes part in a
// constructor-bounded cycle.
func (g *Graph) Recursive(idx int) bool {
	return g.nodes[idx].recursive
}
