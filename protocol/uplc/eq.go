package uplc

import "bytes"

// ProgramEqual reports whether two programs are structurally equal.
func ProgramEqual(a, b *Program) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Version == b.Version && TermEqual(a.Term, b.Term)
}

// TermEqual reports whether two terms are structurally equal.
// Integer constants are compared by value, not representation.
func TermEqual(a, b Term) bool {
	switch a := a.(type) {
	case *Var:
		b, ok := b.(*Var)
		return ok && a.Index == b.Index
	case *Delay:
		b, ok := b.(*Delay)
		return ok && TermEqual(a.Body, b.Body)
	case *Force:
		b, ok := b.(*Force)
		return ok && TermEqual(a.Body, b.Body)
	case *Lambda:
		b, ok := b.(*Lambda)
		return ok && TermEqual(a.Body, b.Body)
	case *Application:
		b, ok := b.(*Application)
		return ok && TermEqual(a.Function, b.Function) && TermEqual(a.Argument, b.Argument)
	case *Const:
		b, ok := b.(*Const)
		return ok && ConstantEqual(a.Value, b.Value)
	case *ErrorTerm:
		_, ok := b.(*ErrorTerm)
		return ok
	case *BuiltinTerm:
		b, ok := b.(*BuiltinTerm)
		return ok && a.Fn == b.Fn
	}
	return false
}

// TypeEqual reports whether two constant types are equal.
func TypeEqual(a, b Type) bool {
	if a.Kind != b.Kind || len(a.Args) != len(b.Args) {
		return false
	}
	for i := range a.Args {
		if !TypeEqual(a.Args[i], b.Args[i]) {
			return false
		}
	}
	return true
}

// ConstantEqual reports whether two constants are equal.
func ConstantEqual(a, b Constant) bool {
	switch a := a.(type) {
	case *Integer:
		b, ok := b.(*Integer)
		return ok && a.V.Cmp(b.V) == 0
	case *ByteString:
		b, ok := b.(*ByteString)
		return ok && bytes.Equal(a.V, b.V)
	case *String:
		b, ok := b.(*String)
		return ok && a.V == b.V
	case *Unit:
		_, ok := b.(*Unit)
		return ok
	case *Bool:
		b, ok := b.(*Bool)
		return ok && a.V == b.V
	case *List:
		b, ok := b.(*List)
		if !ok || !TypeEqual(a.Elem, b.Elem) || len(a.Items) != len(b.Items) {
			return false
		}
		for i := range a.Items {
			if !ConstantEqual(a.Items[i], b.Items[i]) {
				return false
			}
		}
		return true
	case *Pair:
		b, ok := b.(*Pair)
		return ok &&
			TypeEqual(a.FirstType, b.FirstType) &&
			TypeEqual(a.SecondType, b.SecondType) &&
			ConstantEqual(a.First, b.First) &&
			ConstantEqual(a.Second, b.Second)
	case *DataConstant:
		b, ok := b.(*DataConstant)
		return ok && DataEqual(a.V, b.V)
	}
	return false
}

// DataEqual reports whether two data values are equal.
func DataEqual(a, b Data) bool {
	switch a := a.(type) {
	case *DataInt:
		b, ok := b.(*DataInt)
		return ok && a.V.Cmp(b.V) == 0
	case *DataBytes:
		b, ok := b.(*DataBytes)
		return ok && bytes.Equal(a.V, b.V)
	case *DataList:
		b, ok := b.(*DataList)
		if !ok || len(a.Items) != len(b.Items) {
			return false
		}
		for i := range a.Items {
			if !DataEqual(a.Items[i], b.Items[i]) {
				return false
			}
		}
		return true
	case *DataMap:
		b, ok := b.(*DataMap)
		if !ok || len(a.Pairs) != len(b.Pairs) {
			return false
		}
		for i := range a.Pairs {
			if !DataEqual(a.Pairs[i].K, b.Pairs[i].K) || !DataEqual(a.Pairs[i].V, b.Pairs[i].V) {
				return false
			}
		}
		return true
	case *DataConstr:
		b, ok := b.(*DataConstr)
		if !ok || a.Tag != b.Tag || len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			if !DataEqual(a.Fields[i], b.Fields[i]) {
				return false
			}
		}
		return true
	}
	return false
}
