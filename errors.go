package signals

import "errors"

// ErrUnknownHandle is returned by BlockConnection, IsConnectionBlocked, and
// NewConnectionBlocker when a handle does not address a live subscription of
// the signal: the subscription was disconnected, the owning signal was
// closed, or the handle is the zero value.
var ErrUnknownHandle = errors.New("signals: unknown connection handle")

// ErrNilListener is the panic value used when Connect/ConnectDeferred is
// given a nil callable. A nil listener can never be invoked usefully, so
// this is treated as a programmer error rather than a runtime condition
// callers are expected to recover from.
var ErrNilListener = errors.New("signals: listener cannot be nil")

// ErrNilEvaluator is the panic value used when ConnectDeferred is given a
// nil ConnectionEvaluator.
var ErrNilEvaluator = errors.New("signals: evaluator cannot be nil")
