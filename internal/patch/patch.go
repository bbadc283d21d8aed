// Package patch applies RFC 6902 JSON patch documents to typed values.
// The target is round-tripped through its JSON form, the operations are
// applied in order, and the result is decoded back strictly so that a patch
// cannot smuggle in fields the target type does not declare.
package patch

import (
	"bytes"
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

// Error reports a patch document that could not be decoded or applied.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("patch %s: %v", e.Op, e.Err) }

func (e *Error) Unwrap() error { return e.Err }

// Document is a decoded, ordered list of patch operations.
type Document struct {
	ops jsonpatch.Patch
}

// Decode parses raw as a JSON patch document.  The operations themselves
// are only checked when applied.
func Decode(raw []byte) (Document, error) {
	ops, err := jsonpatch.DecodePatch(raw)
	if err != nil {
		return Document{}, &Error{Op: "decode", Err: err}
	}
	return Document{ops: ops}, nil
}

// Apply applies the operations of d to a copy of target and returns the
// patched copy.  target itself is never modified.  An empty document
// returns an unchanged copy.  Any failure (missing path, failing "test"
// operation, unknown field or wrong type in the result) is returned as
// *Error.
func Apply[T any](d Document, target T) (T, error) {
	var zero T

	original, err := json.Marshal(target)
	if err != nil {
		return zero, fmt.Errorf("marshal target: %w", err)
	}

	patched, err := d.ops.Apply(original)
	if err != nil {
		return zero, &Error{Op: "apply", Err: err}
	}

	var out T
	dec := json.NewDecoder(bytes.NewReader(patched))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return zero, &Error{Op: "result", Err: err}
	}
	return out, nil
}
