// Package uplc defines the in-memory form of compiled validator
// programs: a small functional term language with de Bruijn-indexed
// variables, plus the universal data values applied to programs as
// constants.
package uplc

// Program is a versioned program wrapping a single root term.
type Program struct {
	Version [3]uint32
	Term    Term
}

// Term is the in-memory form of one node of a compiled program.
//
// Terms are immutable by convention: transformations build new
// nodes around shared subtrees and never write through these
// pointers.
type Term interface {
	isTerm()
}

// Var is a variable reference. Index is a de Bruijn index,
// counting enclosing Lambda binders starting at 1.
type Var struct {
	Index uint64
}

// Delay suspends evaluation of its body.
type Delay struct {
	Body Term
}

// Force resumes a delayed body.
type Force struct {
	Body Term
}

// Lambda abstracts over one argument. Binder names are not
// represented; Var indices refer to binders positionally.
type Lambda struct {
	Body Term
}

// Application applies Function to Argument.
type Application struct {
	Function Term
	Argument Term
}

// Const embeds a constant value in a term.
type Const struct {
	Value Constant
}

// ErrorTerm aborts evaluation when reached.
type ErrorTerm struct{}

// BuiltinTerm names one of the fixed built-in functions.
type BuiltinTerm struct {
	Fn Builtin
}

func (*Var) isTerm()         {}
func (*Delay) isTerm()       {}
func (*Force) isTerm()       {}
func (*Lambda) isTerm()      {}
func (*Application) isTerm() {}
func (*Const) isTerm()       {}
func (*ErrorTerm) isTerm()   {}
func (*BuiltinTerm) isTerm() {}
