package blueprint

import (
	"strings"

	"github.com/v0d1ch/aiken/errors"
)

// Schema is one raw node of the blueprint's type vocabulary, exactly
// as it appears in the JSON document. Nodes are either a reference
// into the definitions table, a primitive or container keyed by
// dataType, or a union of constructor alternatives keyed by anyOf.
type Schema struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	Ref      string    `json:"$ref,omitempty"`
	DataType string    `json:"dataType,omitempty"`
	Index    *int      `json:"index,omitempty"`
	Fields   []*Schema `json:"fields,omitempty"`
	Items    *Schema   `json:"items,omitempty"`
	Keys     *Schema   `json:"keys,omitempty"`
	Values   *Schema   `json:"values,omitempty"`
	AnyOf    []*Schema `json:"anyOf,omitempty"`
}

const refPrefix = "#/definitions/"

// refName extracts the definition name from a local reference,
// undoing JSON-pointer escaping. Only same-document references into
// the definitions table are supported.
func refName(ref string) (string, error) {
	if !strings.HasPrefix(ref, refPrefix) {
		return "", errors.WithDetailf(ErrDanglingRef, "reference %q is not a local definition pointer", ref)
	}
	name := strings.TrimPrefix(ref, refPrefix)
	name = strings.ReplaceAll(name, "~1", "/")
	name = strings.ReplaceAll(name, "~0", "~")
	if name == "" {
		return "", errors.WithDetailf(ErrDanglingRef, "reference %q names no definition", ref)
	}
	return name, nil
}
