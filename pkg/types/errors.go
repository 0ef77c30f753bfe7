package types

import "errors"

// ErrInvalidDocument marks malformed document content or out-of-range
// anchors. Fatal for the document, not for the run: stages skip the
// document and count it.
var ErrInvalidDocument = errors.New("invalid document")

// ErrEvaluationMismatch marks an artifact referencing an identifier that
// is absent from its companion artifact. The artifacts are inconsistent,
// so this is fatal for the run.
var ErrEvaluationMismatch = errors.New("evaluation mismatch")
