package atom

import "github.com/AnatoleLucet/atom/internal"

var (
	// ErrWriteOutsideTransaction is panicked by writes done outside a transaction
	// when the runtime requires one.
	ErrWriteOutsideTransaction = internal.ErrWriteOutsideTransaction

	// ErrCycle is panicked when a computed or an effect reads itself, directly or not.
	ErrCycle = internal.ErrCycle
)

type (
	DerivationError      = internal.DerivationError
	EffectError          = internal.EffectError
	StaleDerivationError = internal.StaleDerivationError
	AggregateError       = internal.AggregateError
)
