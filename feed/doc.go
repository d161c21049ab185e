/*
Package feed drives clustering trees from streams of input values.

A Feeder inserts values into a tree and broadcasts an Event for every
insertion to all subscribers. Subscribers receive events asynchronously, but
the tree itself is only ever touched by the goroutine calling Feed.

Input values may be generated pseudo-randomly (with a reproducible seed) or
read from text input, one or more whitespace separated integers per line.

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/
package feed

import (
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the global tracer selected for clustree.
func T() tracing.Trace {
	return tracing.Select("clustree")
}
