package uplc

import (
	"math/big"

	"github.com/fxamacker/cbor/v2"

	"github.com/v0d1ch/aiken/errors"
)

// ErrData means a serialized data value is malformed.
var ErrData = errors.New("bad data value")

// Data is the universal on-chain data representation: a value is an
// integer, a byte string, a list, an associative pair list, or a
// tagged constructor. Validator parameters, datums and redeemers are
// all Data values.
type Data interface {
	isData()
}

// DataInt is an arbitrary-precision integer.
type DataInt struct {
	V *big.Int
}

// DataBytes is a byte string.
type DataBytes struct {
	V []byte
}

// DataList is an ordered list of values.
type DataList struct {
	Items []Data
}

// DataPair is one entry of a DataMap.
type DataPair struct {
	K, V Data
}

// DataMap is an ordered association list. Entry order is
// significant and preserved through serialization.
type DataMap struct {
	Pairs []DataPair
}

// DataConstr is a tagged constructor with an ordered field list.
type DataConstr struct {
	Tag    uint64
	Fields []Data
}

func (*DataInt) isData()    {}
func (*DataBytes) isData()  {}
func (*DataList) isData()   {}
func (*DataMap) isData()    {}
func (*DataConstr) isData() {}

// The wire form of a Data value is CBOR. Constructors map to CBOR
// tags: 121+i for i < 7, 1280+(i-7) for 7 <= i < 128, and the
// general tag 102 carrying [i, fields] above that.
var (
	dataEncMode cbor.EncMode
	dataDecMode cbor.DecMode
)

func init() {
	var err error
	dataEncMode, err = cbor.EncOptions{
		BigIntConvert: cbor.BigIntConvertShortest,
		NilContainers: cbor.NilContainerAsEmpty,
	}.EncMode()
	if err != nil {
		panic(err)
	}
	dataDecMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic(err)
	}
}

// MarshalData returns the canonical serialized form of d.
// Serialization is deterministic: equal values always produce
// identical bytes.
func MarshalData(d Data) ([]byte, error) {
	switch d := d.(type) {
	case *DataInt:
		if d.V == nil {
			return nil, errors.Wrap(ErrData, "nil integer")
		}
		return dataEncMode.Marshal(d.V)
	case *DataBytes:
		v := d.V
		if v == nil {
			v = []byte{}
		}
		return dataEncMode.Marshal(v)
	case *DataList:
		items, err := marshalDataItems(d.Items)
		if err != nil {
			return nil, err
		}
		return dataEncMode.Marshal(items)
	case *DataMap:
		out := appendMapHeader(nil, len(d.Pairs))
		for _, p := range d.Pairs {
			k, err := MarshalData(p.K)
			if err != nil {
				return nil, err
			}
			v, err := MarshalData(p.V)
			if err != nil {
				return nil, err
			}
			out = append(out, k...)
			out = append(out, v...)
		}
		return out, nil
	case *DataConstr:
		fields, err := marshalDataItems(d.Fields)
		if err != nil {
			return nil, err
		}
		switch {
		case d.Tag < 7:
			return dataEncMode.Marshal(cbor.Tag{Number: 121 + d.Tag, Content: fields})
		case d.Tag < 128:
			return dataEncMode.Marshal(cbor.Tag{Number: 1280 + d.Tag - 7, Content: fields})
		default:
			return dataEncMode.Marshal(cbor.Tag{
				Number:  102,
				Content: []interface{}{d.Tag, fields},
			})
		}
	}
	return nil, errors.Wrapf(ErrData, "unknown data variant %T", d)
}

func marshalDataItems(items []Data) ([]cbor.RawMessage, error) {
	out := make([]cbor.RawMessage, 0, len(items))
	for _, item := range items {
		b, err := MarshalData(item)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func appendMapHeader(b []byte, n int) []byte {
	switch {
	case n < 24:
		return append(b, 0xa0+byte(n))
	case n <= 0xff:
		return append(b, 0xb8, byte(n))
	case n <= 0xffff:
		return append(b, 0xb9, byte(n>>8), byte(n))
	default:
		return append(b, 0xba, byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
	}
}

// UnmarshalData parses a serialized data value. It rejects input
// with bytes remaining after the value.
func UnmarshalData(b []byte) (Data, error) {
	d, rest, err := unmarshalData(b)
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, errors.Wrapf(ErrData, "%d trailing bytes after value", len(rest))
	}
	return d, nil
}

func unmarshalData(b []byte) (Data, []byte, error) {
	if len(b) == 0 {
		return nil, nil, errors.Wrap(ErrData, "empty input")
	}
	switch b[0] >> 5 {
	case 0, 1: // unsigned, negative
		n := new(big.Int)
		rest, err := dataDecMode.UnmarshalFirst(b, n)
		if err != nil {
			return nil, nil, errors.Wrap(ErrData, err.Error())
		}
		return &DataInt{V: n}, rest, nil
	case 2: // byte string
		var bs []byte
		rest, err := dataDecMode.UnmarshalFirst(b, &bs)
		if err != nil {
			return nil, nil, errors.Wrap(ErrData, err.Error())
		}
		if bs == nil {
			bs = []byte{}
		}
		return &DataBytes{V: bs}, rest, nil
	case 4: // array
		var raw []cbor.RawMessage
		rest, err := dataDecMode.UnmarshalFirst(b, &raw)
		if err != nil {
			return nil, nil, errors.Wrap(ErrData, err.Error())
		}
		items, err := unmarshalDataItems(raw)
		if err != nil {
			return nil, nil, err
		}
		return &DataList{Items: items}, rest, nil
	case 5: // map
		return unmarshalDataMap(b)
	case 6: // tagged
		return unmarshalTagged(b)
	}
	return nil, nil, errors.Wrapf(ErrData, "major type %d not valid in a data value", b[0]>>5)
}

func unmarshalDataItems(raw []cbor.RawMessage) ([]Data, error) {
	items := make([]Data, 0, len(raw))
	for _, r := range raw {
		item, err := UnmarshalData(r)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func unmarshalDataMap(b []byte) (Data, []byte, error) {
	count, indefinite, rest, err := readMapHeader(b)
	if err != nil {
		return nil, nil, err
	}

	pairs := []DataPair{}
	readPair := func() error {
		k, r, err := unmarshalData(rest)
		if err != nil {
			return err
		}
		v, r, err := unmarshalData(r)
		if err != nil {
			return err
		}
		pairs = append(pairs, DataPair{K: k, V: v})
		rest = r
		return nil
	}

	if indefinite {
		for {
			if len(rest) == 0 {
				return nil, nil, errors.Wrap(ErrData, "unterminated map")
			}
			if rest[0] == 0xff {
				rest = rest[1:]
				break
			}
			if err := readPair(); err != nil {
				return nil, nil, err
			}
		}
	} else {
		for i := 0; i < count; i++ {
			if err := readPair(); err != nil {
				return nil, nil, err
			}
		}
	}
	return &DataMap{Pairs: pairs}, rest, nil
}

// readMapHeader parses the head of a CBOR map (major type 5) and
// returns the pair count, or indefinite=true for indefinite-length
// maps.
func readMapHeader(b []byte) (count int, indefinite bool, rest []byte, err error) {
	ai := b[0] & 0x1f
	switch {
	case ai < 24:
		return int(ai), false, b[1:], nil
	case ai == 24:
		if len(b) < 2 {
			return 0, false, nil, errors.Wrap(ErrData, "truncated map header")
		}
		return int(b[1]), false, b[2:], nil
	case ai == 25:
		if len(b) < 3 {
			return 0, false, nil, errors.Wrap(ErrData, "truncated map header")
		}
		return int(b[1])<<8 | int(b[2]), false, b[3:], nil
	case ai == 26:
		if len(b) < 5 {
			return 0, false, nil, errors.Wrap(ErrData, "truncated map header")
		}
		n := uint32(b[1])<<24 | uint32(b[2])<<16 | uint32(b[3])<<8 | uint32(b[4])
		return int(n), false, b[5:], nil
	case ai == 31:
		return 0, true, b[1:], nil
	}
	return 0, false, nil, errors.Wrapf(ErrData, "unsupported map header 0x%02x", b[0])
}

func unmarshalTagged(b []byte) (Data, []byte, error) {
	var rt cbor.RawTag
	rest, err := dataDecMode.UnmarshalFirst(b, &rt)
	if err != nil {
		return nil, nil, errors.Wrap(ErrData, err.Error())
	}

	switch {
	case rt.Number == 2 || rt.Number == 3: // bignum
		n := new(big.Int)
		if _, err := dataDecMode.UnmarshalFirst(b, n); err != nil {
			return nil, nil, errors.Wrap(ErrData, err.Error())
		}
		return &DataInt{V: n}, rest, nil

	case rt.Number >= 121 && rt.Number <= 127:
		fields, err := unmarshalConstrFields(rt.Content)
		if err != nil {
			return nil, nil, err
		}
		return &DataConstr{Tag: rt.Number - 121, Fields: fields}, rest, nil

	case rt.Number >= 1280 && rt.Number <= 1400:
		fields, err := unmarshalConstrFields(rt.Content)
		if err != nil {
			return nil, nil, err
		}
		return &DataConstr{Tag: rt.Number - 1280 + 7, Fields: fields}, rest, nil

	case rt.Number == 102:
		var alt []cbor.RawMessage
		if err := dataDecMode.Unmarshal(rt.Content, &alt); err != nil {
			return nil, nil, errors.Wrap(ErrData, err.Error())
		}
		if len(alt) != 2 {
			return nil, nil, errors.Wrapf(ErrData, "alternative constructor wants 2 elements, got %d", len(alt))
		}
		var tag uint64
		if err := dataDecMode.Unmarshal(alt[0], &tag); err != nil {
			return nil, nil, errors.Wrap(ErrData, err.Error())
		}
		fields, err := unmarshalConstrFields(alt[1])
		if err != nil {
			return nil, nil, err
		}
		return &DataConstr{Tag: tag, Fields: fields}, rest, nil
	}
	return nil, nil, errors.Wrapf(ErrData, "tag %d not valid in a data value", rt.Number)
}

func unmarshalConstrFields(content cbor.RawMessage) ([]Data, error) {
	var raw []cbor.RawMessage
	if err := dataDecMode.Unmarshal(content, &raw); err != nil {
		return nil, errors.Wrap(ErrData, err.Error())
	}
	return unmarshalDataItems(raw)
}
