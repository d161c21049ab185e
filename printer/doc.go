/*
Package printer outputs clustering trees to a console with a fixed-width font.

Every node is printed on a line of its own, in pre-order, indented by depth:

	0: 74 - [43 200] [4 1]
	  1: 43 - [11 75] [2 2]
	    2: 11 - [10 12] [1 1]

i.e. position, representative value, slot values and point counts per slot.
Positions are coloured, as are the slot values of leaves and of inner nodes.
Lines wider than the configured line width are shortened, dropping the point
counts first and then trailing values. Widths are measured in fixed width
positions according to UAX#11, so the indentation and ellipsis characters
may be chosen freely.

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Please refer to the License file in the repository root.

*/
package printer

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}
