package internal

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrWriteOutsideTransaction = errors.New("atom: value written outside of a transaction")
	ErrCycle                   = errors.New("atom: cycle detected, node read while it is being evaluated")
)

// DerivationError is stored on a computed node whose function panicked.
// It is raised on every read until a later evaluation succeeds.
type DerivationError struct {
	Cause error
	Node  *Node
}

func (e *DerivationError) Error() string {
	return fmt.Sprintf("atom: %s failed: %v", e.Node, e.Cause)
}

func (e *DerivationError) Unwrap() error { return e.Cause }

// EffectError is collected when an effect function, a lifecycle hook or a cleanup panicked.
type EffectError struct {
	Cause error
	Node  *Node
}

func (e *EffectError) Error() string {
	if e.Node == nil {
		return fmt.Sprintf("atom: callback failed: %v", e.Cause)
	}
	return fmt.Sprintf("atom: %s failed: %v", e.Node, e.Cause)
}

func (e *EffectError) Unwrap() error { return e.Cause }

// StaleDerivationError is collected when a tracked computed or effect read no node at all:
// nothing can ever invalidate it again.
type StaleDerivationError struct {
	Node *Node
}

func (e *StaleDerivationError) Error() string {
	return fmt.Sprintf("atom: %s did not read any node, it became stale and will never run again", e.Node)
}

// AggregateError carries every error collected during a single flush.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("atom: %d errors occurred: %s", len(e.Errors), strings.Join(msgs, "; "))
}

func (e *AggregateError) Unwrap() []error { return e.Errors }
