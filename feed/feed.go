package feed

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/guiguan/caster"
	"github.com/npillmayer/clustree"
)

// ErrClosed is returned for operations on a closed Feeder.
var ErrClosed = errors.New("feeder closed")

// Event reports a single insertion.
type Event struct {
	Seq     int   // 1-based number of the insertion
	Value   int   // inserted value
	Height  int   // tree height after the insertion
	Points  int64 // total number of points after the insertion
	Rebuilt bool  // the insertion increased the height of the tree
}

func (e Event) String() string {
	return fmt.Sprintf("#%d: %d (height %d, %d points)", e.Seq, e.Value, e.Height, e.Points)
}

// Feeder inserts values into a tree and broadcasts insertion events.
type Feeder struct {
	tree   *clustree.Tree
	cast   *caster.Caster // broadcaster for insertion events
	inputs []int          // values in order of insertion
	closed bool
}

// New creates a Feeder for a tree.
func New(tree *clustree.Tree) (*Feeder, error) {
	if tree == nil {
		return nil, fmt.Errorf("%w: nil tree", clustree.ErrIllegalArguments)
	}
	return &Feeder{
		tree: tree,
		cast: caster.New(nil),
	}, nil
}

// Tree returns the tree fed by f.
func (f *Feeder) Tree() *clustree.Tree {
	return f.tree
}

// Subscribe returns a channel of events for all insertions to come. The
// channel is closed when f is closed or ctx is done. capacity is the buffer
// size of the channel; a full channel blocks Feed.
func (f *Feeder) Subscribe(ctx context.Context, capacity uint) (<-chan Event, error) {
	if f.closed {
		return nil, ErrClosed
	}
	if ctx == nil {
		ctx = context.Background()
	}
	sub, ok := f.cast.Sub(ctx, capacity)
	if !ok {
		return nil, ErrClosed
	}
	events := make(chan Event, capacity)
	go func() {
		defer close(events)
		for m := range sub {
			e, ok := m.(Event)
			if !ok {
				continue
			}
			select {
			case events <- e:
			case <-ctx.Done():
				return
			}
		}
	}()
	return events, nil
}

// Feed inserts all values of a sequence. It returns the number of values
// inserted, stopping at the first value the tree rejects.
func (f *Feeder) Feed(values iter.Seq[int]) (int, error) {
	if f.closed {
		return 0, ErrClosed
	}
	cnt := 0
	for v := range values {
		height := f.tree.Height()
		// recorded up front, so the value is available if Insert panics
		f.inputs = append(f.inputs, v)
		if err := f.tree.Insert(v); err != nil {
			f.inputs = f.inputs[:len(f.inputs)-1]
			T().Errorf("feed stopped after %d values: %v", cnt, err)
			return cnt, err
		}
		cnt++
		f.cast.Pub(Event{
			Seq:     len(f.inputs),
			Value:   v,
			Height:  f.tree.Height(),
			Points:  f.tree.Points(),
			Rebuilt: f.tree.Height() > height,
		})
	}
	T().Debugf("fed %d values, tree height is %d", cnt, f.tree.Height())
	return cnt, nil
}

// Inputs returns a copy of all values inserted so far, in order.
func (f *Feeder) Inputs() []int {
	return append([]int(nil), f.inputs...)
}

// Close stops broadcasting and closes all subscriber channels.
func (f *Feeder) Close() {
	if f.closed {
		return
	}
	f.closed = true
	f.cast.Close()
}
