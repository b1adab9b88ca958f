// Package blueprint reads contract blueprint documents, resolves
// their schema vocabulary, and specializes the validators they carry
// by applying compile-time parameters.
//
// A blueprint is a JSON document with a preamble, a list of
// validators, and a table of named schema definitions. Each
// validator carries its compiled program and the BLAKE2b-224 hash of
// that program's canonical serialization; the hash is the
// validator's on-chain identity, so it is rechecked before any
// program is trusted or transformed.
package blueprint

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"runtime"

	"github.com/v0d1ch/aiken/crypto/blake224"
	"github.com/v0d1ch/aiken/encoding/flat"
	chainjson "github.com/v0d1ch/aiken/encoding/json"
	"github.com/v0d1ch/aiken/errors"
	"github.com/v0d1ch/aiken/metrics"
)

// Blueprint is a loaded, schema-resolved blueprint document.
type Blueprint struct {
	Preamble    Preamble           `json:"preamble"`
	Validators  []*Validator       `json:"validators"`
	Definitions map[string]*Schema `json:"definitions,omitempty"`

	graph   *Graph
	byTitle map[string]*Validator
}

// Preamble carries document-level metadata.
type Preamble struct {
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Version       string `json:"version,omitempty"`
	PlutusVersion string `json:"plutusVersion"`
	License       string `json:"license,omitempty"`
}

// Validator is one named program in the blueprint together with the
// schemas of its interface.
type Validator struct {
	Title        string             `json:"title"`
	Description  string             `json:"description,omitempty"`
	Datum        *Argument          `json:"datum,omitempty"`
	Redeemer     *Argument          `json:"redeemer,omitempty"`
	Parameters   []*Argument        `json:"parameters,omitempty"`
	CompiledCode chainjson.HexBytes `json:"compiledCode"`
	Hash         blake224.Hash      `json:"hash"`
}

// Argument is one typed slot of a validator's interface: a datum, a
// redeemer, or a compile-time parameter.
type Argument struct {
	Title  string  `json:"title,omitempty"`
	Schema *Schema `json:"schema"`

	schemaIdx int
}

var plutusVersions = map[string]bool{"v1": true, "v2": true, "v3": true}

// Load reads and resolves a blueprint document. It fails on malformed
// JSON, an unsupported plutus version, duplicate validator titles,
// and any schema problem: dangling references, malformed nodes, and
// unbounded cycles. Every validator's declared hash is then verified
// against its compiled code; a divergence means a corrupted or
// tampered artifact, so it fails the load rather than loading a
// document that cannot be trusted.
func Load(r io.Reader) (*Blueprint, error) {
	var bp Blueprint
	dec := json.NewDecoder(r)
	if err := dec.Decode(&bp); err != nil {
		return nil, errors.Wrap(err, "decoding blueprint")
	}
	if !plutusVersions[bp.Preamble.PlutusVersion] {
		return nil, errors.WithDetailf(ErrPlutusVersion, "preamble declares %q", bp.Preamble.PlutusVersion)
	}

	graph, err := resolveGraph(bp.Definitions)
	if err != nil {
		return nil, err
	}
	bp.graph = graph

	bp.byTitle = make(map[string]*Validator, len(bp.Validators))
	for _, v := range bp.Validators {
		if _, ok := bp.byTitle[v.Title]; ok {
			return nil, errors.WithDetailf(ErrDuplicateValidator, "title %q", v.Title)
		}
		bp.byTitle[v.Title] = v
		for _, arg := range v.arguments() {
			name := v.Title + "." + arg.Title
			arg.schemaIdx, err = graph.addInline(arg.Schema, name)
			if err != nil {
				return nil, errors.Wrapf(err, "validator %s", v.Title)
			}
		}
	}

	if errs := VerifyAll(context.Background(), &bp, runtime.NumCPU()); len(errs) > 0 {
		return nil, errors.WithDetailf(errs[0].Err, "%d of %d validators failed verification", len(errs), len(bp.Validators))
	}

	metrics.BlueprintLoaded()
	return &bp, nil
}

// LoadFile reads and resolves the blueprint document at path.
func LoadFile(path string) (*Blueprint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening blueprint")
	}
	defer f.Close()
	bp, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "blueprint %s", path)
	}
	return bp, nil
}

// Graph returns the resolved schema graph of the document.
func (bp *Blueprint) Graph() *Graph {
	return bp.graph
}

// Validator returns the validator with the given title.
func (bp *Blueprint) Validator(title string) (*Validator, error) {
	v, ok := bp.byTitle[title]
	if !ok {
		return nil, errors.WithDetailf(ErrUnknownValidator, "no validator titled %q", title)
	}
	return v, nil
}

func (v *Validator) arguments() []*Argument {
	var args []*Argument
	if v.Datum != nil {
		args = append(args, v.Datum)
	}
	if v.Redeemer != nil {
		args = append(args, v.Redeemer)
	}
	return append(args, v.Parameters...)
}

// UnappliedHash recomputes the content hash of the validator's
// compiled code from its canonical serialization.
func (v *Validator) UnappliedHash() (blake224.Hash, error) {
	prog, err := flat.DecodeProgram(v.CompiledCode)
	if err != nil {
		return blake224.Hash{}, errors.Wrapf(err, "validator %s", v.Title)
	}
	canonical, err := flat.EncodeProgram(prog)
	if err != nil {
		return blake224.Hash{}, errors.Wrapf(err, "validator %s", v.Title)
	}
	return blake224.Sum(canonical), nil
}

// VerifyHash checks the validator's declared hash against its
// recomputed content hash.
func (v *Validator) VerifyHash() error {
	computed, err := v.UnappliedHash()
	if err != nil {
		return err
	}
	if err := blake224.Verify(v.Hash, computed); err != nil {
		return errors.Wrapf(err, "validator %s", v.Title)
	}
	return nil
}
