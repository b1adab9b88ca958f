package uplc

import (
	"math/big"
	"testing"
)

func TestApply(t *testing.T) {
	p := &Program{
		Version: [3]uint32{1, 0, 0},
		Term:    &Lambda{Body: &Lambda{Body: &Var{Index: 2}}},
	}

	c1 := &Integer{V: big.NewInt(1)}
	c2 := &Integer{V: big.NewInt(2)}

	got := Apply(p, c1, c2)
	want := &Program{
		Version: [3]uint32{1, 0, 0},
		Term: &Application{
			Function: &Application{
				Function: p.Term,
				Argument: &Const{Value: c1},
			},
			Argument: &Const{Value: c2},
		},
	}
	if !ProgramEqual(got, want) {
		t.Errorf("Apply(p, c1, c2) = %#v want %#v", got, want)
	}

	// The original program is untouched.
	if _, ok := p.Term.(*Lambda); !ok {
		t.Error("Apply modified the input program")
	}
}

func TestApplyZero(t *testing.T) {
	p := &Program{Version: [3]uint32{1, 0, 0}, Term: &ErrorTerm{}}
	got := Apply(p)
	if !ProgramEqual(got, p) {
		t.Errorf("Apply(p) = %#v want %#v", got, p)
	}
	if got == p {
		t.Error("Apply returned the input program instead of a copy")
	}
}

func TestApplyOrderMatters(t *testing.T) {
	p := &Program{Version: [3]uint32{1, 0, 0}, Term: &Lambda{Body: &Var{Index: 1}}}
	a := &Integer{V: big.NewInt(1)}
	b := &Integer{V: big.NewInt(2)}

	if ProgramEqual(Apply(p, a, b), Apply(p, b, a)) {
		t.Error("Apply(p, a, b) == Apply(p, b, a) for a != b")
	}
}
