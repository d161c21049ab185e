package clustree

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"math"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// ClusterError is an error type for the clustree module
type ClusterError string

func (e ClusterError) Error() string {
	return string(e)
}

// ErrIllegalArguments is flagged whenever function parameters or a tree
// configuration are invalid.
const ErrIllegalArguments = ClusterError("illegal arguments")

// ErrValueOutOfRange is flagged for values outside [MinValue, MaxValue].
const ErrValueOutOfRange = ClusterError("value out of range")

// ErrCorruptTree is flagged by Check if a structural invariant is violated.
const ErrCorruptTree = ClusterError("corrupt tree")

// Values are restricted to 32 bits, so that point-weighted sums fit into
// 64-bit aggregates.
const (
	MinValue = math.MinInt32
	MaxValue = math.MaxInt32
)
