package blueprint

import (
	"github.com/v0d1ch/aiken/errors"
	"github.com/v0d1ch/aiken/protocol/uplc"
)

// Check validates v against the schema node at idx. Aliases are
// followed, containers recurse into their elements, and a union
// accepts a constructor value when some alternative carries its
// index and every field checks out.
func (g *Graph) Check(v uplc.Data, idx int) error {
	nd := &g.nodes[idx]
	switch nd.kind {
	case kindOpaque:
		return nil
	case kindAlias:
		return g.Check(v, nd.target)
	case kindInteger:
		if _, ok := v.(*uplc.DataInt); !ok {
			return errors.WithDetailf(ErrTypeMismatch, "%s wants an integer, got %s", nd.name, dataKind(v))
		}
		return nil
	case kindBytes:
		if _, ok := v.(*uplc.DataBytes); !ok {
			return errors.WithDetailf(ErrTypeMismatch, "%s wants bytes, got %s", nd.name, dataKind(v))
		}
		return nil
	case kindList:
		l, ok := v.(*uplc.DataList)
		if !ok {
			return errors.WithDetailf(ErrTypeMismatch, "%s wants a list, got %s", nd.name, dataKind(v))
		}
		for i, item := range l.Items {
			if err := g.Check(item, nd.elem); err != nil {
				return errors.WithDetailf(err, "list %s element %d", nd.name, i)
			}
		}
		return nil
	case kindMap:
		m, ok := v.(*uplc.DataMap)
		if !ok {
			return errors.WithDetailf(ErrTypeMismatch, "%s wants a map, got %s", nd.name, dataKind(v))
		}
		for i, p := range m.Pairs {
			if err := g.Check(p.K, nd.key); err != nil {
				return errors.WithDetailf(err, "map %s key %d", nd.name, i)
			}
			if err := g.Check(p.V, nd.value); err != nil {
				return errors.WithDetailf(err, "map %s value %d", nd.name, i)
			}
		}
		return nil
	case kindUnion:
		c, ok := v.(*uplc.DataConstr)
		if !ok {
			return errors.WithDetailf(ErrTypeMismatch, "%s wants a constructor, got %s", nd.name, dataKind(v))
		}
		for _, alt := range nd.alts {
			if uint64(alt.index) != c.Tag {
				continue
			}
			if len(alt.fields) != len(c.Fields) {
				return errors.WithDetailf(ErrTypeMismatch, "%s constructor %d wants %d fields, got %d", nd.name, alt.index, len(alt.fields), len(c.Fields))
			}
			for i, f := range alt.fields {
				if err := g.Check(c.Fields[i], f); err != nil {
					return errors.WithDetailf(err, "%s constructor %d field %d", nd.name, alt.index, i)
				}
			}
			return nil
		}
		return errors.WithDetailf(ErrNoMatchingVariant, "%s declares no constructor with index %d", nd.name, c.Tag)
	}
	return errors.WithDetailf(ErrBadSchema, "unresolved node %s", nd.name)
}

// Encode validates v against the node at idx and lifts it to a term
// constant ready for application.
func (g *Graph) Encode(v uplc.Data, idx int) (uplc.Constant, error) {
	if err := g.Check(v, idx); err != nil {
		return nil, err
	}
	return &uplc.DataConstant{V: v}, nil
}

func dataKind(v uplc.Data) string {
	switch v.(type) {
	case *uplc.DataInt:
		return "an integer"
	case *uplc.DataBytes:
		return "bytes"
	case *uplc.DataList:
		return "a list"
	case *uplc.DataMap:
		return "a map"
	case *uplc.DataConstr:
		return "a constructor"
	}
	return "nothing"
}
