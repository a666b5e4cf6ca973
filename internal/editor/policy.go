package editor

import (
	"errors"
	"fmt"

	"resourceEditorAPI/internal/kv"
)

// DuplicateKeyPolicy decides whether duplicate keys block submission.
type DuplicateKeyPolicy string

const (
	// PolicyReject blocks submission on any row error.
	PolicyReject DuplicateKeyPolicy = "reject"
	// PolicyFlag only warns about duplicates; the last value wins. Missing keys still block.
	PolicyFlag DuplicateKeyPolicy = "flag"
)

func ParseDuplicateKeyPolicy(s string) (DuplicateKeyPolicy, error) {
	switch p := DuplicateKeyPolicy(s); p {
	case PolicyReject, PolicyFlag:
		return p, nil
	case "":
		return PolicyReject, nil
	default:
		return "", fmt.Errorf("unknown duplicate key policy %q", s)
	}
}

// apply returns the error that blocks submission, if any, and whether duplicates were let through.
func (p DuplicateKeyPolicy) apply(err error) (blocking error, flagged bool) {
	if err == nil {
		return nil, false
	}
	var rowErrs kv.ValidationErrors
	if p != PolicyFlag || !errors.As(err, &rowErrs) {
		return err, false
	}

	flagged = rowErrs.Has(kv.DuplicateKey)
	if missing := rowErrs.Filter(kv.MissingKey); len(missing) > 0 {
		return missing, flagged
	}
	return nil, flagged
}
