package blueprint

import (
	"github.com/v0d1ch/aiken/crypto/blake224"
	"github.com/v0d1ch/aiken/encoding/flat"
	chainjson "github.com/v0d1ch/aiken/encoding/json"
	"github.com/v0d1ch/aiken/errors"
	"github.com/v0d1ch/aiken/metrics"
	"github.com/v0d1ch/aiken/protocol/uplc"
)

// AppliedValidator is the result of specializing a validator with
// concrete parameter values: the new program and its new content
// hash. The hash differs from the unapplied validator's hash, since
// application changes the program.
type AppliedValidator struct {
	Title string             `json:"title"`
	Code  chainjson.HexBytes `json:"compiledCode"`
	Hash  blake224.Hash      `json:"hash"`
}

// ApplyParams specializes the named validator by applying values to
// its declared parameters, in order. Each value is validated against
// the parameter's schema before being lifted into the program.
// Supplying fewer values than declared parameters leaves a partially
// applied program; supplying more is an error. The validator's
// declared hash is verified before its code is touched.
func (bp *Blueprint) ApplyParams(title string, values []uplc.Data) (*AppliedValidator, error) {
	v, err := bp.Validator(title)
	if err != nil {
		return nil, err
	}
	if len(values) > len(v.Parameters) {
		return nil, errors.WithDetailf(ErrTooManyParams, "validator %s declares %d parameters, got %d values", title, len(v.Parameters), len(values))
	}
	if err := v.VerifyHash(); err != nil {
		metrics.ValidatorFailed(errors.Root(err).Error())
		return nil, err
	}

	prog, err := flat.DecodeProgram(v.CompiledCode)
	if err != nil {
		return nil, errors.Wrapf(err, "validator %s", title)
	}
	args := make([]uplc.Constant, len(values))
	for i, val := range values {
		p := v.Parameters[i]
		args[i], err = bp.graph.Encode(val, p.schemaIdx)
		if err != nil {
			metrics.ValidatorFailed(errors.Root(err).Error())
			return nil, errors.Wrapf(err, "validator %s parameter %d (%s)", title, i, p.Title)
		}
	}

	applied := uplc.Apply(prog, args...)
	code, err := flat.EncodeProgram(applied)
	if err != nil {
		return nil, errors.Wrapf(err, "validator %s", title)
	}
	metrics.ValidatorApplied()
	return &AppliedValidator{
		Title: title,
		Code:  code,
		Hash:  blake224.Sum(code),
	}, nil
}
