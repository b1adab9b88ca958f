package flat

import (
	"math"

	"github.com/v0d1ch/aiken/errors"
	"github.com/v0d1ch/aiken/protocol/uplc"
)

// Term tags, 4 bits each.
const (
	tagVar = iota
	tagDelay
	tagLambda
	tagApply
	tagConst
	tagForce
	tagError
	tagBuiltin
)

// Constant type tags, 4 bits each. Composite types are spelled as
// applications: list t = [7 5 t], pair a b = [7 7 6 a b].
const (
	typeInteger    = 0
	typeByteString = 1
	typeString     = 2
	typeUnit       = 3
	typeBool       = 4
	typeList       = 5
	typePair       = 6
	typeApply      = 7
	typeData       = 8
)

// DecodeProgram decodes a complete program from b. It rejects
// truncated input, unknown tags, over-long chunk lengths, and any
// residual input after the root term and final padding.
func DecodeProgram(b []byte) (*uplc.Program, error) {
	r := NewReader(b)

	var version [3]uint32
	for i := range version {
		n, err := r.ReadNat()
		if err != nil {
			return nil, errors.Wrap(err, "reading program version")
		}
		if n > math.MaxUint32 {
			return nil, errors.Wrapf(ErrRange, "version component %d", n)
		}
		version[i] = uint32(n)
	}

	t, err := decodeTerm(r)
	if err != nil {
		return nil, err
	}
	if err := r.Finish(); err != nil {
		return nil, err
	}
	return &uplc.Program{Version: version, Term: t}, nil
}

// EncodeProgram encodes p. Encoding is deterministic: the same
// program always serializes to the same bytes.
func EncodeProgram(p *uplc.Program) ([]byte, error) {
	w := NewWriter()
	for _, n := range p.Version {
		w.WriteNat(uint64(n))
	}
	if err := encodeTerm(w, p.Term); err != nil {
		return nil, err
	}
	w.WriteFiller()
	return w.Bytes(), nil
}

func decodeTerm(r *Reader) (uplc.Term, error) {
	tag, err := r.ReadBits(4)
	if err != nil {
		return nil, err
	}

	switch tag {
	case tagVar:
		n, err := r.ReadNat()
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, errors.Wrap(ErrRange, "de Bruijn index 0")
		}
		return &uplc.Var{Index: n}, nil

	case tagDelay:
		body, err := decodeTerm(r)
		if err != nil {
			return nil, err
		}
		return &uplc.Delay{Body: body}, nil

	case tagLambda:
		body, err := decodeTerm(r)
		if err != nil {
			return nil, err
		}
		return &uplc.Lambda{Body: body}, nil

	case tagApply:
		fn, err := decodeTerm(r)
		if err != nil {
			return nil, err
		}
		arg, err := decodeTerm(r)
		if err != nil {
			return nil, err
		}
		return &uplc.Application{Function: fn, Argument: arg}, nil

	case tagConst:
		c, err := decodeConstant(r)
		if err != nil {
			return nil, err
		}
		return &uplc.Const{Value: c}, nil

	case tagForce:
		body, err := decodeTerm(r)
		if err != nil {
			return nil, err
		}
		return &uplc.Force{Body: body}, nil

	case tagError:
		return &uplc.ErrorTerm{}, nil

	case tagBuiltin:
		fn, err := r.ReadBits(7)
		if err != nil {
			return nil, err
		}
		if !uplc.Builtin(fn).Valid() {
			return nil, errors.Wrapf(ErrBadTag, "builtin %d", fn)
		}
		return &uplc.BuiltinTerm{Fn: uplc.Builtin(fn)}, nil
	}
	return nil, errors.Wrapf(ErrBadTag, "term tag %d", tag)
}

func encodeTerm(w *Writer, t uplc.Term) error {
	switch t := t.(type) {
	case *uplc.Var:
		if t.Index == 0 {
			return errors.Wrap(ErrRange, "de Bruijn index 0")
		}
		w.WriteBits(tagVar, 4)
		w.WriteNat(t.Index)
		return nil
	case *uplc.Delay:
		w.WriteBits(tagDelay, 4)
		return encodeTerm(w, t.Body)
	case *uplc.Lambda:
		w.WriteBits(tagLambda, 4)
		return encodeTerm(w, t.Body)
	case *uplc.Application:
		w.WriteBits(tagApply, 4)
		if err := encodeTerm(w, t.Function); err != nil {
			return err
		}
		return encodeTerm(w, t.Argument)
	case *uplc.Const:
		w.WriteBits(tagConst, 4)
		return encodeConstant(w, t.Value)
	case *uplc.Force:
		w.WriteBits(tagForce, 4)
		return encodeTerm(w, t.Body)
	case *uplc.ErrorTerm:
		w.WriteBits(tagError, 4)
		return nil
	case *uplc.BuiltinTerm:
		if !t.Fn.Valid() {
			return errors.Wrapf(ErrBadTag, "builtin %d", t.Fn)
		}
		w.WriteBits(tagBuiltin, 4)
		w.WriteBits(byte(t.Fn), 7)
		return nil
	}
	return errors.Wrapf(ErrBadTag, "unknown term %T", t)
}

// typeTags appends the tag spelling of ty to out.
func typeTags(out []byte, ty uplc.Type) ([]byte, error) {
	switch ty.Kind {
	case uplc.TyInteger:
		return append(out, typeInteger), nil
	case uplc.TyByteString:
		return append(out, typeByteString), nil
	case uplc.TyString:
		return append(out, typeString), nil
	case uplc.TyUnit:
		return append(out, typeUnit), nil
	case uplc.TyBool:
		return append(out, typeBool), nil
	case uplc.TyData:
		return append(out, typeData), nil
	case uplc.TyList:
		if len(ty.Args) != 1 {
			return nil, errors.Wrap(ErrBadTag, "list type wants 1 argument")
		}
		return typeTags(append(out, typeApply, typeList), ty.Args[0])
	case uplc.TyPair:
		if len(ty.Args) != 2 {
			return nil, errors.Wrap(ErrBadTag, "pair type wants 2 arguments")
		}
		out, err := typeTags(append(out, typeApply, typeApply, typePair), ty.Args[0])
		if err != nil {
			return nil, err
		}
		return typeTags(out, ty.Args[1])
	}
	return nil, errors.Wrapf(ErrBadTag, "unknown type kind %d", ty.Kind)
}

// parseTypeTags consumes the tag spelling of one type and returns
// the remaining tags.
func parseTypeTags(tags []byte) (uplc.Type, []byte, error) {
	if len(tags) == 0 {
		return uplc.Type{}, nil, errors.Wrap(ErrBadTag, "empty constant type")
	}
	switch tags[0] {
	case typeInteger:
		return uplc.Type{Kind: uplc.TyInteger}, tags[1:], nil
	case typeByteString:
		return uplc.Type{Kind: uplc.TyByteString}, tags[1:], nil
	case typeString:
		return uplc.Type{Kind: uplc.TyString}, tags[1:], nil
	case typeUnit:
		return uplc.Type{Kind: uplc.TyUnit}, tags[1:], nil
	case typeBool:
		return uplc.Type{Kind: uplc.TyBool}, tags[1:], nil
	case typeData:
		return uplc.Type{Kind: uplc.TyData}, tags[1:], nil
	case typeApply:
		if len(tags) >= 2 && tags[1] == typeList {
			elem, rest, err := parseTypeTags(tags[2:])
			if err != nil {
				return uplc.Type{}, nil, err
			}
			return uplc.ListType(elem), rest, nil
		}
		if len(tags) >= 3 && tags[1] == typeApply && tags[2] == typePair {
			fst, rest, err := parseTypeTags(tags[3:])
			if err != nil {
				return uplc.Type{}, nil, err
			}
			snd, rest, err := parseTypeTags(rest)
			if err != nil {
				return uplc.Type{}, nil, err
			}
			return uplc.PairType(fst, snd), rest, nil
		}
		return uplc.Type{}, nil, errors.Wrap(ErrBadTag, "malformed type application")
	}
	return uplc.Type{}, nil, errors.Wrapf(ErrBadTag, "constant type tag %d", tags[0])
}

func decodeConstant(r *Reader) (uplc.Constant, error) {
	var tags []byte
	for {
		more, err := r.ReadBit()
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
		t, err := r.ReadBits(4)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}

	ty, rest, err := parseTypeTags(tags)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, errors.Wrapf(ErrBadTag, "%d extra constant type tags", len(rest))
	}
	return decodeConstValue(r, ty)
}

func decodeConstValue(r *Reader, ty uplc.Type) (uplc.Constant, error) {
	switch ty.Kind {
	case uplc.TyInteger:
		n, err := r.ReadBigInt()
		if err != nil {
			return nil, err
		}
		return &uplc.Integer{V: n}, nil

	case uplc.TyByteString:
		b, err := r.ReadBytes()
		if err != nil {
			return nil, err
		}
		return &uplc.ByteString{V: b}, nil

	case uplc.TyString:
		b, err := r.ReadBytes()
		if err != nil {
			return nil, err
		}
		return &uplc.String{V: string(b)}, nil

	case uplc.TyUnit:
		return &uplc.Unit{}, nil

	case uplc.TyBool:
		bit, err := r.ReadBit()
		if err != nil {
			return nil, err
		}
		return &uplc.Bool{V: bit}, nil

	case uplc.TyList:
		var items []uplc.Constant
		for {
			more, err := r.ReadBit()
			if err != nil {
				return nil, err
			}
			if !more {
				break
			}
			item, err := decodeConstValue(r, ty.Args[0])
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return &uplc.List{Elem: ty.Args[0], Items: items}, nil

	case uplc.TyPair:
		first, err := decodeConstValue(r, ty.Args[0])
		if err != nil {
			return nil, err
		}
		second, err := decodeConstValue(r, ty.Args[1])
		if err != nil {
			return nil, err
		}
		return &uplc.Pair{
			FirstType:  ty.Args[0],
			SecondType: ty.Args[1],
			First:      first,
			Second:     second,
		}, nil

	case uplc.TyData:
		b, err := r.ReadBytes()
		if err != nil {
			return nil, err
		}
		d, err := uplc.UnmarshalData(b)
		if err != nil {
			return nil, errors.Wrap(err, "decoding data constant")
		}
		return &uplc.DataConstant{V: d}, nil
	}
	return nil, errors.Wrapf(ErrBadTag, "unknown type kind %d", ty.Kind)
}

func encodeConstant(w *Writer, c uplc.Constant) error {
	tags, err := typeTags(nil, c.Type())
	if err != nil {
		return err
	}
	for _, t := range tags {
		w.WriteBit(true)
		w.WriteBits(t, 4)
	}
	w.WriteBit(false)
	return encodeConstValue(w, c)
}

func encodeConstValue(w *Writer, c uplc.Constant) error {
	switch c := c.(type) {
	case *uplc.Integer:
		w.WriteBigInt(c.V)
		return nil
	case *uplc.ByteString:
		w.WriteBytes(c.V)
		return nil
	case *uplc.String:
		w.WriteBytes([]byte(c.V))
		return nil
	case *uplc.Unit:
		return nil
	case *uplc.Bool:
		w.WriteBit(c.V)
		return nil
	case *uplc.List:
		for _, item := range c.Items {
			w.WriteBit(true)
			if err := encodeConstValue(w, item); err != nil {
				return err
			}
		}
		w.WriteBit(false)
		return nil
	case *uplc.Pair:
		if err := encodeConstValue(w, c.First); err != nil {
			return err
		}
		return encodeConstValue(w, c.Second)
	case *uplc.DataConstant:
		b, err := uplc.MarshalData(c.V)
		if err != nil {
			return err
		}
		w.WriteBytes(b)
		return nil
	}
	return errors.Wrapf(ErrBadTag, "unknown constant %T", c)
}
