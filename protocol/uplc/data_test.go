package uplc

import (
	"bytes"
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/v0d1ch/aiken/errors"
)

func TestMarshalDataGolden(t *testing.T) {
	big64 := new(big.Int).Lsh(big.NewInt(1), 64)

	cases := []struct {
		name string
		d    Data
		hex  string
	}{
		{"small int", &DataInt{V: big.NewInt(42)}, "182a"},
		{"negative int", &DataInt{V: big.NewInt(-1)}, "20"},
		{"bignum", &DataInt{V: big64}, "c249010000000000000000"},
		{"bytes", &DataBytes{V: []byte{1, 2, 3}}, "43010203"},
		{"empty bytes", &DataBytes{}, "40"},
		{"constr 0", &DataConstr{Tag: 0}, "d87980"},
		{"constr 1 with field", &DataConstr{Tag: 1, Fields: []Data{&DataInt{V: big.NewInt(42)}}}, "d87a81182a"},
		{"constr 6", &DataConstr{Tag: 6}, "d87f80"},
		{"constr 7", &DataConstr{Tag: 7}, "d9050080"},
		{"constr 127", &DataConstr{Tag: 127}, "d9057880"},
		{"constr 128", &DataConstr{Tag: 128}, "d86682188080"},
		{"list", &DataList{Items: []Data{&DataInt{V: big.NewInt(1)}, &DataInt{V: big.NewInt(2)}}}, "820102"},
		{"empty list", &DataList{}, "80"},
		{"map", &DataMap{Pairs: []DataPair{{K: &DataInt{V: big.NewInt(1)}, V: &DataBytes{}}}}, "a10140"},
		{"empty map", &DataMap{}, "a0"},
	}

	for _, c := range cases {
		got, err := MarshalData(c.d)
		if err != nil {
			t.Errorf("%s: %v", c.name, err)
			continue
		}
		want, _ := hex.DecodeString(c.hex)
		if !bytes.Equal(got, want) {
			t.Errorf("%s: got %x want %x", c.name, got, want)
		}
	}
}

func TestDataRoundTrip(t *testing.T) {
	values := []Data{
		&DataInt{V: big.NewInt(0)},
		&DataInt{V: big.NewInt(-1234567890)},
		&DataInt{V: new(big.Int).Lsh(big.NewInt(1), 100)},
		&DataInt{V: new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 100))},
		&DataBytes{V: []byte{}},
		&DataBytes{V: bytes.Repeat([]byte{0xab}, 100)},
		&DataList{Items: []Data{
			&DataBytes{V: []byte{0xde, 0xad}},
			&DataConstr{Tag: 3},
		}},
		&DataMap{Pairs: []DataPair{
			{K: &DataBytes{V: []byte("k1")}, V: &DataInt{V: big.NewInt(1)}},
			{K: &DataBytes{V: []byte("k0")}, V: &DataInt{V: big.NewInt(0)}},
		}},
		&DataConstr{Tag: 0, Fields: []Data{
			&DataConstr{Tag: 0, Fields: []Data{&DataBytes{V: bytes.Repeat([]byte{1}, 32)}}},
			&DataInt{V: big.NewInt(7)},
		}},
		&DataConstr{Tag: 1000, Fields: []Data{&DataInt{V: big.NewInt(5)}}},
	}

	for i, v := range values {
		b, err := MarshalData(v)
		if err != nil {
			t.Fatalf("value %d: marshal: %v", i, err)
		}
		got, err := UnmarshalData(b)
		if err != nil {
			t.Fatalf("value %d: unmarshal %x: %v", i, b, err)
		}
		if !DataEqual(got, v) {
			t.Errorf("value %d: round trip mismatch: got %#v want %#v", i, got, v)
		}

		// Determinism: re-marshaling the decoded value gives the
		// same bytes back.
		b2, err := MarshalData(got)
		if err != nil {
			t.Fatalf("value %d: re-marshal: %v", i, err)
		}
		if !bytes.Equal(b, b2) {
			t.Errorf("value %d: re-encode mismatch: %x != %x", i, b, b2)
		}
	}
}

func TestMapOrderPreserved(t *testing.T) {
	ab := &DataMap{Pairs: []DataPair{
		{K: &DataInt{V: big.NewInt(1)}, V: &DataInt{V: big.NewInt(10)}},
		{K: &DataInt{V: big.NewInt(2)}, V: &DataInt{V: big.NewInt(20)}},
	}}
	ba := &DataMap{Pairs: []DataPair{
		{K: &DataInt{V: big.NewInt(2)}, V: &DataInt{V: big.NewInt(20)}},
		{K: &DataInt{V: big.NewInt(1)}, V: &DataInt{V: big.NewInt(10)}},
	}}

	b1, err := MarshalData(ab)
	if err != nil {
		t.Fatal(err)
	}
	b2, err := MarshalData(ba)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(b1, b2) {
		t.Error("maps with different entry order encode identically")
	}
}

func TestUnmarshalDataErrors(t *testing.T) {
	cases := []struct {
		name string
		hex  string
	}{
		{"empty", ""},
		{"trailing bytes", "182a00"},
		{"text string", "63616263"},
		{"bare tagged float", "c1fb3ff0000000000000"},
		{"unterminated map", "a101"},
		{"truncated constr", "d87a81"},
	}

	for _, c := range cases {
		b, _ := hex.DecodeString(c.hex)
		_, err := UnmarshalData(b)
		if errors.Root(err) != ErrData {
			t.Errorf("%s: got %v, want ErrData", c.name, err)
		}
	}
}
