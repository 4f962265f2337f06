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

import "sync/atomic"

// freeState is used only during Free to detect and resolve cycles
// local to the component reachable from the node being released.
type freeState int

const (
	freeNone freeState = iota
	freeTraversed
	freeFreeable
	freeNotFreeable
	freeFreeing
)

// Node is a grammar node: a typed, refcounted vertex in the grammar graph.
// Every reachable child is owned either by its parent's configuration (one
// strong reference) or by the caller; Clone increments the refcount, Free
// decrements it and reclaims whole cyclic components when nothing external
// still holds them (see Free).
type Node struct {
	typ    *NodeType
	id     string
	attrs  *Dict
	config *Config
	refs   int32
	free   freeState
	priv   interface{}
}

// NewNode looks up typeName in the registry and allocates a new node with
// the given id (defaulting to "no-id"), refcount 1, and a freshly
// initialized private area.
func NewNode(typeName, id string) (*Node, error) {
	t, err := LookupNodeType(typeName)
	if err != nil {
		return nil, err
	}
	return newNodeOfType(t, id), nil
}

func newNodeOfType(t *NodeType, id string) *Node {
	if id == "" {
		id = "no-id"
	}
	n := &Node{typ: t, id: id, attrs: NewDict(), refs: 1}
	if t.InitPriv != nil {
		t.InitPriv(n)
	}
	return n
}

// Type returns the node's type vtable.
func (n *Node) Type() *NodeType { return n.typ }

// ID returns the node's stable identifier.
func (n *Node) ID() string { return n.id }

// Attrs returns the node's attribute dictionary. The library never
// interprets its contents; it exists for collaborators.
func (n *Node) Attrs() *Dict { return n.attrs }

// Config returns the node's currently applied configuration, or nil.
func (n *Node) Config() *Config { return n.config }

// Priv returns the node's private, per-type state.
func (n *Node) Priv() interface{} { return n.priv }

// SetPriv sets the node's private, per-type state. Only node type
// implementations should call this.
func (n *Node) SetPriv(v interface{}) { n.priv = v }

// Refs returns the current refcount, chiefly for tests.
func (n *Node) Refs() int32 { return atomic.LoadInt32(&n.refs) }

// Clone increments the refcount and returns the same handle.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	atomic.AddInt32(&n.refs, 1)
	return n
}

// SetConfig validates cfg against the node's schema and, if valid, applies
// it via the type's SetConfig hook. On failure both the node and its
// previous configuration are left untouched.
func (n *Node) SetConfig(cfg *Config) error {
	if n == nil {
		return newError(KindInvalidArgument, "SetConfig on nil node")
	}
	if n.typ.Schema != nil {
		if err := Validate(n.typ.Schema, cfg); err != nil {
			return err
		}
	}
	if n.typ.SetConfig == nil {
		return wrapError(KindNotSupported, nil, "node type %q takes no configuration", n.typ.Name)
	}
	if err := n.typ.SetConfig(n, cfg); err != nil {
		return err
	}
	n.config = cfg
	return nil
}

// Desc returns the type's one-line description, or the type name if the
// type exposes no Desc hook.
func (n *Node) Desc() string {
	if n.typ.Desc != nil {
		return n.typ.Desc(n)
	}
	return n.typ.Name
}

// ChildrenCount returns the number of children the node type exposes.
func (n *Node) ChildrenCount() int {
	if n.typ.ChildrenCount == nil {
		return 0
	}
	return n.typ.ChildrenCount(n)
}

// GetChild returns the i'th child and how many of the node's own
// references are attributable to that child edge.
func (n *Node) GetChild(i int) (child *Node, refs int, ok bool) {
	if n.typ.GetChild == nil {
		return nil, 0, false
	}
	return n.typ.GetChild(n, i)
}

// Find returns the first node in a DFS traversal from root whose id
// equals id, or nil.
func Find(root *Node, id string) *Node {
	if root == nil {
		return nil
	}
	if root.id == id {
		return root
	}
	for i := 0; i < root.ChildrenCount(); i++ {
		child, _, ok := root.GetChild(i)
		if !ok || child == nil {
			continue
		}
		if found := Find(child, id); found != nil {
			return found
		}
	}
	return nil
}

// Free releases the caller's reference to n. A single-pass refcount
// decrement is unsafe in the presence of cycles (built via the bypass
// node, §4.6.14), so Free performs a two-phase mark-and-sweep local to the
// component reachable from n:
//
//  1. Traverse (DFS) from n, marking each visited node "traversed" and
//     summing, per node, the incoming reference weight contributed by
//     every other traversed node's child edges into it.
//  2. A traversed node is "freeable" when its summed incoming weight
//     equals its total refcount (no holder lives outside the component);
//     otherwise it is "not-freeable".
//  3. Sweep: edges from freeable nodes into not-freeable children are
//     released (their refcount decremented), then every freeable node's
//     FreePriv hook runs and its attributes are released.
//
// Free is idempotent on a nil pointer and safe inside cyclic components.
func Free(n *Node) error {
	if n == nil {
		return nil
	}
	if n.free == freeFreeing {
		return nil
	}

	atomic.AddInt32(&n.refs, -1)

	visited := make(map[*Node]bool)
	reachable := make(map[*Node]int)
	var order []*Node

	var mark func(*Node)
	mark = func(nd *Node) {
		if visited[nd] {
			return
		}
		visited[nd] = true
		nd.free = freeTraversed
		order = append(order, nd)
		cnt := nd.ChildrenCount()
		for i := 0; i < cnt; i++ {
			child, refs, ok := nd.GetChild(i)
			if !ok || child == nil {
				continue
			}
			reachable[child] += refs
			mark(child)
		}
	}
	mark(n)

	freeable := make(map[*Node]bool, len(order))
	for _, nd := range order {
		if int32(reachable[nd]) == atomic.LoadInt32(&nd.refs) {
			nd.free = freeFreeable
			freeable[nd] = true
		} else {
			nd.free = freeNotFreeable
		}
	}

	// Release edges from freeable nodes into children that survive.
	for _, nd := range order {
		if !freeable[nd] {
			continue
		}
		cnt := nd.ChildrenCount()
		for i := 0; i < cnt; i++ {
			child, refs, ok := nd.GetChild(i)
			if !ok || child == nil || freeable[child] {
				continue
			}
			atomic.AddInt32(&child.refs, -int32(refs))
		}
	}

	// Destroy freeable nodes.
	for _, nd := range order {
		if !freeable[nd] {
			nd.free = freeNone
			continue
		}
		nd.free = freeFreeing
		if nd.typ.FreePriv != nil {
			nd.typ.FreePriv(nd)
		}
		nd.attrs.Free()
		nd.config = nil
	}

	return nil
}
