package blueprint

import "github.com/v0d1ch/aiken/errors"

var (
	// ErrDanglingRef means a schema reference points at no declared
	// definition.
	ErrDanglingRef = errors.New("unresolved schema reference")

	// ErrCycle means a definition reaches itself with no
	// constructor indirection.
	ErrCycle = errors.New("unbounded schema cycle")

	// ErrDuplicateIndex means two alternatives of one union share a
	// constructor index.
	ErrDuplicateIndex = errors.New("duplicate constructor index")

	// ErrBadSchema means a schema node is structurally malformed.
	ErrBadSchema = errors.New("malformed schema definition")

	// ErrTypeMismatch means a supplied value does not fit its
	// declared schema.
	ErrTypeMismatch = errors.New("value does not match schema")

	// ErrNoMatchingVariant means a constructor value matches no
	// alternative of a union schema.
	ErrNoMatchingVariant = errors.New("value matches no constructor alternative")

	// ErrTooManyParams means more values were supplied than the
	// validator declares parameters.
	ErrTooManyParams = errors.New("too many parameters")

	// ErrUnknownValidator means no validator in the blueprint has
	// the requested title.
	ErrUnknownValidator = errors.New("unknown validator")

	// ErrDuplicateValidator means two validators share a title.
	ErrDuplicateValidator = errors.New("duplicate validator title")

	// ErrPlutusVersion means the preamble names an unsupported
	// target program version.
	ErrPlutusVersion = errors.New("unsupported plutus version")
)
