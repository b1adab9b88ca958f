package uplc

import (
	"math/big"
	"testing"

	"github.com/v0d1ch/aiken/errors"
)

func TestParseDataNotation(t *testing.T) {
	cases := []struct {
		in   string
		want Data
	}{
		{`{"int": 42}`, &DataInt{V: big.NewInt(42)}},
		{`{"int": -7}`, &DataInt{V: big.NewInt(-7)}},
		{`{"int": 18446744073709551616}`, &DataInt{V: new(big.Int).Lsh(big.NewInt(1), 64)}},
		{`{"bytes": "00ff"}`, &DataBytes{V: []byte{0x00, 0xff}}},
		{`{"bytes": ""}`, &DataBytes{V: []byte{}}},
		{`{"list": [{"int": 1}, {"int": 2}]}`, &DataList{Items: []Data{
			&DataInt{V: big.NewInt(1)}, &DataInt{V: big.NewInt(2)},
		}}},
		{`{"map": [{"k": {"bytes": "aa"}, "v": {"int": 5}}]}`, &DataMap{Pairs: []DataPair{
			{K: &DataBytes{V: []byte{0xaa}}, V: &DataInt{V: big.NewInt(5)}},
		}}},
		{`{"constructor": 0, "fields": []}`, &DataConstr{Tag: 0, Fields: []Data{}}},
		{`{"constructor": 1, "fields": [{"bytes": "beef"}]}`, &DataConstr{Tag: 1, Fields: []Data{
			&DataBytes{V: []byte{0xbe, 0xef}},
		}}},
	}

	for _, c := range cases {
		got, err := ParseDataNotation([]byte(c.in))
		if err != nil {
			t.Errorf("%s: %v", c.in, err)
			continue
		}
		if !DataEqual(got, c.want) {
			t.Errorf("%s: got %#v want %#v", c.in, got, c.want)
		}
	}
}

func TestParseDataNotationErrors(t *testing.T) {
	cases := []string{
		`{}`,
		`{"int": 1.5}`,
		`{"int": "42"}`,
		`{"bytes": "zz"}`,
		`{"list": [{}]}`,
		`42`,
	}

	for _, c := range cases {
		_, err := ParseDataNotation([]byte(c))
		if errors.Root(err) != ErrNotation {
			t.Errorf("%s: got %v, want ErrNotation", c, err)
		}
	}
}

func TestDataNotationRoundTrip(t *testing.T) {
	values := []Data{
		&DataInt{V: big.NewInt(-99)},
		&DataBytes{V: []byte{1, 2, 3}},
		&DataConstr{Tag: 2, Fields: []Data{
			&DataMap{Pairs: []DataPair{
				{K: &DataInt{V: big.NewInt(1)}, V: &DataList{Items: []Data{&DataInt{V: big.NewInt(2)}}}},
			}},
		}},
	}

	for i, v := range values {
		b, err := FormatDataNotation(v)
		if err != nil {
			t.Fatalf("value %d: format: %v", i, err)
		}
		got, err := ParseDataNotation(b)
		if err != nil {
			t.Fatalf("value %d: parse %s: %v", i, b, err)
		}
		if !DataEqual(got, v) {
			t.Errorf("value %d: round trip mismatch: %s", i, b)
		}
	}
}
