package uplc

import (
	"encoding/hex"
	"encoding/json"
	"math/big"

	"github.com/v0d1ch/aiken/errors"
)

// ErrNotation means a JSON data value does not follow the detailed
// data notation.
var ErrNotation = errors.New("bad data notation")

// The detailed data notation is the JSON convention used by wallet
// and CLI tooling for supplying data values:
//
//	{"int": 42}
//	{"bytes": "00ff"}
//	{"list": [v, ...]}
//	{"map": [{"k": v, "v": v}, ...]}
//	{"constructor": 0, "fields": [v, ...]}
type notationValue struct {
	Int         *json.RawMessage   `json:"int,omitempty"`
	Bytes       *string            `json:"bytes,omitempty"`
	List        *[]json.RawMessage `json:"list,omitempty"`
	Map         *[]notationPair    `json:"map,omitempty"`
	Constructor *uint64            `json:"constructor,omitempty"`
	Fields      *[]json.RawMessage `json:"fields,omitempty"`
}

type notationPair struct {
	K json.RawMessage `json:"k"`
	V json.RawMessage `json:"v"`
}

// ParseDataNotation parses a JSON value in the detailed data
// notation.
func ParseDataNotation(b []byte) (Data, error) {
	var nv notationValue
	if err := json.Unmarshal(b, &nv); err != nil {
		return nil, errors.Wrap(ErrNotation, err.Error())
	}

	switch {
	case nv.Int != nil:
		n, ok := new(big.Int).SetString(string(*nv.Int), 10)
		if !ok {
			return nil, errors.Wrapf(ErrNotation, "%s is not an integer", *nv.Int)
		}
		return &DataInt{V: n}, nil

	case nv.Bytes != nil:
		raw, err := hex.DecodeString(*nv.Bytes)
		if err != nil {
			return nil, errors.Wrapf(ErrNotation, "bad hex in bytes value: %s", err)
		}
		return &DataBytes{V: raw}, nil

	case nv.List != nil:
		items, err := parseNotationItems(*nv.List)
		if err != nil {
			return nil, err
		}
		return &DataList{Items: items}, nil

	case nv.Map != nil:
		pairs := make([]DataPair, 0, len(*nv.Map))
		for _, p := range *nv.Map {
			k, err := ParseDataNotation(p.K)
			if err != nil {
				return nil, err
			}
			v, err := ParseDataNotation(p.V)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, DataPair{K: k, V: v})
		}
		return &DataMap{Pairs: pairs}, nil

	case nv.Constructor != nil:
		var fields []Data
		if nv.Fields != nil {
			var err error
			fields, err = parseNotationItems(*nv.Fields)
			if err != nil {
				return nil, err
			}
		}
		return &DataConstr{Tag: *nv.Constructor, Fields: fields}, nil
	}
	return nil, errors.Wrap(ErrNotation, "value has none of int, bytes, list, map, constructor")
}

func parseNotationItems(raw []json.RawMessage) ([]Data, error) {
	items := make([]Data, 0, len(raw))
	for _, r := range raw {
		item, err := ParseDataNotation(r)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// FormatDataNotation renders d as JSON in the detailed data
// notation.
func FormatDataNotation(d Data) ([]byte, error) {
	switch d := d.(type) {
	case *DataInt:
		raw := json.RawMessage(d.V.String())
		return json.Marshal(notationValue{Int: &raw})
	case *DataBytes:
		s := hex.EncodeToString(d.V)
		return json.Marshal(notationValue{Bytes: &s})
	case *DataList:
		items, err := formatNotationItems(d.Items)
		if err != nil {
			return nil, err
		}
		return json.Marshal(notationValue{List: &items})
	case *DataMap:
		pairs := make([]notationPair, 0, len(d.Pairs))
		for _, p := range d.Pairs {
			k, err := FormatDataNotation(p.K)
			if err != nil {
				return nil, err
			}
			v, err := FormatDataNotation(p.V)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, notationPair{K: k, V: v})
		}
		return json.Marshal(notationValue{Map: &pairs})
	case *DataConstr:
		fields, err := formatNotationItems(d.Fields)
		if err != nil {
			return nil, err
		}
		tag := d.Tag
		return json.Marshal(notationValue{Constructor: &tag, Fields: &fields})
	}
	return nil, errors.Wrapf(ErrNotation, "unknown data variant %T", d)
}

func formatNotationItems(items []Data) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		b, err := FormatDataNotation(item)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}
