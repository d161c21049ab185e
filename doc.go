/*
Package clustree maintains a bounded-fan-out clustering tree over a stream of
integer values.

Clustering Trees

Every insertion either merges a value into an existing nearby cluster (the
cluster centroid moves to the weighted mean of its points) or opens a new
cluster. Leaves hold weighted cluster centroids, internal nodes hold the
representative value of each of their subtrees. When a node overflows it is
split around the two slots farthest apart; a split of the root grows the tree
by one level. The structure is a one-dimensional relative of a CF-tree.

Nodes live in a flat array and do not point to their parents. Instead, every
subtree owns a reserved, contiguous range of array positions, sized to the
maximum number of nodes a subtree of that depth could ever hold for the
current tree height:

	capacityBelow(depth, height) = Σ_{i=depth}^{height-1} (b+1)^(height-i)

where b is the branching factor. A child in slot s of a node at position p
therefore lives at

	p + 1 + s * (1 + capacityBelow(depth of child, height))

This makes restructuring cheap: a split places the new sibling by formula,
without scanning ancestors. As the formula depends on the tree height, a root
split rebuilds the whole array for the new height.

Usage

	tree, err := clustree.New(clustree.Config{
		BranchingFactor:    2,
		ClosenessThreshold: 2,
	})
	...
	for _, v := range values {
		if err := tree.Insert(v); err != nil {
			...
		}
	}
	for n := range tree.Traverse() {
		fmt.Println(n)
	}

A tree is not safe for concurrent use.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package clustree

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
