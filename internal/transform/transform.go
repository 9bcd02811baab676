package transform

import (
	"fmt"

	"github.com/rgehrsitz/quotecalc/internal/config"
)

// RequestTransform defines the interface for all quote request transformations.
// Transforms are composable edits of a request, used to build what-if
// alternatives for comparison.
type RequestTransform interface {
	// Apply returns a modified copy of base. base itself is never changed.
	Apply(base *config.QuoteRequest) (*config.QuoteRequest, error)

	// Name returns a short identifier for this transform (e.g., "set_frequency").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks the transform parameters against base without applying it.
	Validate(base *config.QuoteRequest) error
}

// ApplyTransforms applies a sequence of transforms to a base request.
// Each transform receives the output of the previous one.
func ApplyTransforms(base *config.QuoteRequest, transforms []RequestTransform) (*config.QuoteRequest, error) {
	if base == nil {
		return nil, fmt.Errorf("base request cannot be nil")
	}

	current := base.DeepCopy()
	for i, transform := range transforms {
		if transform == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}
		current = next
	}

	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}

// person looks up the insured a transform targets or reports a validation error
func person(name, insured string, req *config.QuoteRequest) (*config.PersonInput, error) {
	if req == nil {
		return nil, NewTransformError(name, "validate", "base request cannot be nil", nil)
	}
	p := req.Person(insured)
	if p == nil {
		return nil, NewTransformError(name, "validate", fmt.Sprintf("insured %s not found in request", insured), nil)
	}
	return p, nil
}
