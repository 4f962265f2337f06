// Copyright 2023 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package grammar

// CompType classifies a completion item, per spec.md §3.
type CompType int

const (
	// CompFull means the item is a complete, literal value that would
	// be accepted as-is.
	CompFull CompType = 1 << iota
	// CompPartial means the item is a usable prefix, but more input is
	// expected (e.g. a directory name awaiting a trailing path
	// component).
	CompPartial
	// CompUnknown means the position accepts input this node cannot
	// enumerate (e.g. a free-form integer or regex).
	CompUnknown
)

// CompAny matches every completion type, for iteration and counting.
const CompAny = CompFull | CompPartial | CompUnknown

// CompItem is one possible continuation of the input.
type CompItem struct {
	Node       *Node // originating grammar node, borrowed
	Type       CompType
	Start      string // the token that triggered this completion
	Full       string // the literal completion value
	Display    string // presentation override; defaults to Full
	Completion string // characters to append to Start; defaults to Full's suffix past Start
	Attrs      *Dict
	Group      *CompGroup
}

// GetDisplay returns Display if set, else Full.
func (it *CompItem) GetDisplay() string {
	if it.Display != "" {
		return it.Display
	}
	return it.Full
}

// CompGroup collects items produced within the same sub-parse: they share
// an originating grammar node and a snapshot of the parse context at the
// moment the group was opened.
type CompGroup struct {
	Node   *Node
	Items  []*CompItem
	Attrs  *Dict
	PState *PNode // snapshot of the in-progress parse context
}

// Comp is an ordered list of completion groups plus per-type counters and
// the currently open group, if any.
type Comp struct {
	groups []*CompGroup
	counts map[CompType]int
	pstate *PNode
	cur    *CompGroup
}

// NewComp returns an empty completion set carrying pstate as its current
// in-progress parse context.
func NewComp(pstate *PNode) *Comp {
	return &Comp{pstate: pstate, counts: make(map[CompType]int)}
}

// PState returns the completion set's in-progress parse context.
func (c *Comp) PState() *PNode { return c.pstate }

// OpenGroup starts a new current group for node, snapshotting the current
// parse state. Subsequent AddItem calls for the same node (until the next
// OpenGroup) are appended to it.
func (c *Comp) OpenGroup(node *Node) *CompGroup {
	g := &CompGroup{Node: node, Attrs: NewDict(), PState: c.pstate}
	c.groups = append(c.groups, g)
	c.cur = g
	return g
}

// AddItem appends a new item to the current group, first opening a new
// group for node if none is open or the open one belongs to another node.
func (c *Comp) AddItem(node *Node, typ CompType, start, full string) *CompItem {
	if c.cur == nil || c.cur.Node != node {
		c.OpenGroup(node)
	}
	item := &CompItem{
		Node:       node,
		Type:       typ,
		Start:      start,
		Full:       full,
		Completion: completionSuffix(start, full),
		Attrs:      NewDict(),
		Group:      c.cur,
	}
	c.cur.Items = append(c.cur.Items, item)
	c.counts[typ]++
	return item
}

func completionSuffix(start, full string) string {
	if len(full) >= len(start) && full[:len(start)] == start {
		return full[len(start):]
	}
	return full
}

// Count returns the number of items whose type is set in mask.
func (c *Comp) Count(mask CompType) int {
	total := 0
	for t, n := range c.counts {
		if t&mask != 0 {
			total += n
		}
	}
	return total
}

// Items returns every item across all groups, in group-then-insertion
// order, whose type is set in mask.
func (c *Comp) Items(mask CompType) []*CompItem {
	var out []*CompItem
	for _, g := range c.groups {
		for _, it := range g.Items {
			if it.Type&mask != 0 {
				out = append(out, it)
			}
		}
	}
	return out
}

// Groups returns the completion set's groups in order.
func (c *Comp) Groups() []*CompGroup { return c.groups }

// Merge appends other's groups to c and folds in its counters. Used by
// combinators like "or" that complete several children independently and
// union the results.
func (c *Comp) Merge(other *Comp) {
	if other == nil {
		return
	}
	c.groups = append(c.groups, other.groups...)
	for t, n := range other.counts {
		c.counts[t] += n
	}
}
