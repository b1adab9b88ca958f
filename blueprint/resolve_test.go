package blueprint

import (
	"math/big"
	"testing"

	"github.com/v0d1ch/aiken/protocol/uplc"
	"github.com/v0d1ch/aiken/testutil"
)

func intp(i int) *int { return &i }

func testGraph(t testing.TB, defs map[string]*Schema) *Graph {
	g, err := resolveGraph(defs)
	if err != nil {
		testutil.FatalErr(t, err)
	}
	return g
}

func TestCheck(t *testing.T) {
	g := testGraph(t, map[string]*Schema{
		"Int":       {DataType: "integer"},
		"ByteArray": {DataType: "bytes"},
		"Any":       {},
		"Ints":      {DataType: "list", Items: &Schema{Ref: "#/definitions/Int"}},
		"Balances": {DataType: "map",
			Keys:   &Schema{Ref: "#/definitions/ByteArray"},
			Values: &Schema{Ref: "#/definitions/Int"}},
		"Option": {AnyOf: []*Schema{
			{DataType: "constructor", Index: intp(0), Fields: []*Schema{{Ref: "#/definitions/Int"}}},
			{DataType: "constructor", Index: intp(1)},
		}},
	})

	one := &uplc.DataInt{V: big.NewInt(1)}
	bs := &uplc.DataBytes{V: []byte{0xab}}

	ok := []struct {
		name string
		def  string
		v    uplc.Data
	}{
		{"integer", "Int", one},
		{"bytes", "ByteArray", bs},
		{"opaque integer", "Any", one},
		{"opaque constructor", "Any", &uplc.DataConstr{Tag: 9}},
		{"empty list", "Ints", &uplc.DataList{}},
		{"list", "Ints", &uplc.DataList{Items: []uplc.Data{one, one}}},
		{"map", "Balances", &uplc.DataMap{Pairs: []uplc.DataPair{{K: bs, V: one}}}},
		{"some", "Option", &uplc.DataConstr{Tag: 0, Fields: []uplc.Data{one}}},
		{"none", "Option", &uplc.DataConstr{Tag: 1}},
	}
	for _, c := range ok {
		idx, found := g.Lookup(c.def)
		if !found {
			t.Fatalf("%s: definition %s missing", c.name, c.def)
		}
		if err := g.Check(c.v, idx); err != nil {
			t.Errorf("%s: unexpected error %v", c.name, err)
		}
	}

	bad := []struct {
		name string
		def  string
		v    uplc.Data
		want error
	}{
		{"bytes for integer", "Int", bs, ErrTypeMismatch},
		{"integer for bytes", "ByteArray", one, ErrTypeMismatch},
		{"scalar for list", "Ints", one, ErrTypeMismatch},
		{"bad list element", "Ints", &uplc.DataList{Items: []uplc.Data{bs}}, ErrTypeMismatch},
		{"bad map key", "Balances", &uplc.DataMap{Pairs: []uplc.DataPair{{K: one, V: one}}}, ErrTypeMismatch},
		{"scalar for union", "Option", one, ErrTypeMismatch},
		{"bad arity", "Option", &uplc.DataConstr{Tag: 0}, ErrTypeMismatch},
		{"unknown index", "Option", &uplc.DataConstr{Tag: 2}, ErrNoMatchingVariant},
	}
	for _, c := range bad {
		idx, found := g.Lookup(c.def)
		if !found {
			t.Fatalf("%s: definition %s missing", c.name, c.def)
		}
		testutil.ExpectError(t, c.want, c.name, func() error {
			return g.Check(c.v, idx)
		})
	}
}

func TestCheckRecursive(t *testing.T) {
	g := testGraph(t, map[string]*Schema{
		"Int": {DataType: "integer"},
		"List": {AnyOf: []*Schema{
			{DataType: "constructor", Index: intp(0)},
			{DataType: "constructor", Index: intp(1), Fields: []*Schema{
				{Ref: "#/definitions/Int"},
				{Ref: "#/definitions/List"},
			}},
		}},
	})
	idx, _ := g.Lookup("List")
	if !g.Recursive(idx) {
		t.Fatal("List should be recursive")
	}

	nil_ := &uplc.DataConstr{Tag: 0}
	cons := func(h int64, tl uplc.Data) uplc.Data {
		return &uplc.DataConstr{Tag: 1, Fields: []uplc.Data{
			&uplc.DataInt{V: big.NewInt(h)}, tl,
		}}
	}
	if err := g.Check(cons(1, cons(2, nil_)), idx); err != nil {
		t.Errorf("well-formed recursive value: %v", err)
	}
	testutil.ExpectError(t, ErrTypeMismatch, "bad tail", func() error {
		return g.Check(cons(1, &uplc.DataInt{V: big.NewInt(0)}), idx)
	})
}

func TestResolveAliasChain(t *testing.T) {
	g := testGraph(t, map[string]*Schema{
		"Int": {DataType: "integer"},
		"A":   {Ref: "#/definitions/B"},
		"B":   {Ref: "#/definitions/Int"},
	})
	idx, _ := g.Lookup("A")
	if err := g.Check(&uplc.DataInt{V: big.NewInt(3)}, idx); err != nil {
		t.Errorf("alias chain: %v", err)
	}
	testutil.ExpectError(t, ErrTypeMismatch, "alias chain mismatch", func() error {
		return g.Check(&uplc.DataBytes{}, idx)
	})
}

func TestResolveInlineNesting(t *testing.T) {
	// Inline schemas nested inside a definition get synthetic nodes
	// of their own.
	g := testGraph(t, map[string]*Schema{
		"Deep": {DataType: "list", Items: &Schema{
			DataType: "map",
			Keys:     &Schema{DataType: "bytes"},
			Values:   &Schema{DataType: "integer"},
		}},
	})
	idx, _ := g.Lookup("Deep")
	v := &uplc.DataList{Items: []uplc.Data{
		&uplc.DataMap{Pairs: []uplc.DataPair{
			{K: &uplc.DataBytes{V: []byte{1}}, V: &uplc.DataInt{V: big.NewInt(1)}},
		}},
	}}
	if err := g.Check(v, idx); err != nil {
		t.Errorf("nested inline: %v", err)
	}
}

func TestRefNameEscaping(t *testing.T) {
	name, err := refName("#/definitions/aiken~1types~1Value")
	if err != nil {
		testutil.FatalErr(t, err)
	}
	testutil.ExpectEqual(t, name, "aiken/types/Value", "slash unescape")

	name, err = refName("#/definitions/weird~0name")
	if err != nil {
		testutil.FatalErr(t, err)
	}
	testutil.ExpectEqual(t, name, "weird~name", "tilde unescape")

	testutil.ExpectError(t, ErrDanglingRef, "empty name", func() error {
		_, err := refName("#/definitions/")
		return err
	})
	testutil.ExpectError(t, ErrDanglingRef, "foreign pointer", func() error {
		_, err := refName("#/properties/x")
		return err
	})
}
