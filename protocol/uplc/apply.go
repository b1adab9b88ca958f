package uplc

// Apply returns a new program whose term is p's term wrapped in
// applications of the given constants, left to right:
//
//	Apply(p, c1, c2).Term == Application(Application(p.Term, c1), c2)
//
// The result is structural wrapping, not evaluation; running the
// returned program later performs the original logic specialized to
// the supplied constants. p is never modified, and the returned
// program shares p's term as a subtree. Applying zero constants
// returns a program equal to p.
func Apply(p *Program, args ...Constant) *Program {
	t := p.Term
	for _, c := range args {
		t = &Application{Function: t, Argument: &Const{Value: c}}
	}
	return &Program{Version: p.Version, Term: t}
}
