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

import (
	"fmt"
	"strings"
)

// PNode is a parse tree node: the result of matching a grammar node
// against (a suffix of) a token vector. A PNode tree is a strict owner
// tree, not a DAG: it is built top-down during Parse and destroyed
// bottom-up with its parent. PNode.node is a borrowed pointer into the
// grammar graph, never owned.
type PNode struct {
	node     *Node
	parent   *PNode
	children []*PNode
	matched  *StrVec // nil means "no match"
	attrs    *Dict
}

// NewPNode allocates a detached parse node for the given grammar node.
func NewPNode(node *Node) *PNode {
	return &PNode{node: node, attrs: NewDict()}
}

// LinkChild appends child to pn's children, setting child's parent.
func (pn *PNode) LinkChild(child *PNode) {
	pn.children = append(pn.children, child)
	child.parent = pn
}

// UnlinkChild detaches child from its parent, if any.
func (pn *PNode) UnlinkChild() {
	if pn == nil || pn.parent == nil {
		return
	}
	siblings := pn.parent.children
	for i, c := range siblings {
		if c == pn {
			pn.parent.children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	pn.parent = nil
}

// FirstChild and LastChild return pn's first/last child, or nil.
func (pn *PNode) FirstChild() *PNode {
	if len(pn.children) == 0 {
		return nil
	}
	return pn.children[0]
}

func (pn *PNode) LastChild() *PNode {
	if len(pn.children) == 0 {
		return nil
	}
	return pn.children[len(pn.children)-1]
}

// Children returns pn's children in grammar order.
func (pn *PNode) Children() []*PNode { return pn.children }

// ClearChildren detaches and discards every child of pn in one step,
// without disturbing pn.children while iterating it.
func (pn *PNode) ClearChildren() {
	for _, c := range pn.children {
		c.parent = nil
	}
	pn.children = nil
}

// Next returns pn's next sibling, or nil.
func (pn *PNode) Next() *PNode {
	if pn.parent == nil {
		return nil
	}
	siblings := pn.parent.children
	for i, c := range siblings {
		if c == pn {
			if i+1 < len(siblings) {
				return siblings[i+1]
			}
			return nil
		}
	}
	return nil
}

// DelLastChild unlinks and discards pn's last child.
func (pn *PNode) DelLastChild() {
	if len(pn.children) == 0 {
		return
	}
	pn.children = pn.children[:len(pn.children)-1]
}

// GetNode returns the originating grammar node (borrowed), or nil.
func (pn *PNode) GetNode() *Node {
	if pn == nil {
		return nil
	}
	return pn.node
}

// GetParent returns pn's parent, or nil.
func (pn *PNode) GetParent() *PNode {
	if pn == nil {
		return nil
	}
	return pn.parent
}

// GetRoot walks up to the root of pn's tree.
func (pn *PNode) GetRoot() *PNode {
	if pn == nil {
		return nil
	}
	for pn.parent != nil {
		pn = pn.parent
	}
	return pn
}

// GetAttrs returns pn's attribute dictionary.
func (pn *PNode) GetAttrs() *Dict {
	if pn == nil {
		return nil
	}
	return pn.attrs
}

// GetStrvec returns the matched sub-vector, or nil if pn did not match.
func (pn *PNode) GetStrvec() *StrVec {
	if pn == nil {
		return nil
	}
	return pn.matched
}

// Len returns the number of tokens in the matched sub-vector, 0 if none.
func (pn *PNode) Len() int {
	if pn == nil || pn.matched == nil {
		return 0
	}
	return pn.matched.Len()
}

// Matches reports whether pn has a non-absent matched sub-vector.
func (pn *PNode) Matches() bool {
	return pn != nil && pn.matched != nil
}

// iterNext performs one step of a DFS traversal from root, optionally
// descending into pn's children first.
func iterNext(root, pn *PNode, iterChildren bool) *PNode {
	if iterChildren {
		if c := pn.FirstChild(); c != nil {
			return c
		}
	}
	for pn != root && pn.parent != nil {
		if next := pn.Next(); next != nil {
			return next
		}
		pn = pn.parent
	}
	return nil
}

// FindNext continues a DFS search for a node whose grammar node id equals
// id, starting after prev (or at root if prev is nil).
func FindNext(root, prev *PNode, id string, iterChildren bool) *PNode {
	if root == nil {
		return nil
	}
	var cur *PNode
	if prev == nil {
		cur = root
	} else {
		cur = iterNext(root, prev, iterChildren)
	}
	for cur != nil {
		if cur.node != nil && cur.node.ID() == id {
			return cur
		}
		cur = iterNext(root, cur, true)
	}
	return nil
}

// FindPNode returns the first node in a DFS from root whose grammar node
// id equals id.
func FindPNode(root *PNode, id string) *PNode {
	return FindNext(root, nil, id, true)
}

// Dup deep-clones pn's whole tree (from its root), returning the clone of
// pn itself.
func (pn *PNode) Dup() *PNode {
	root := pn.GetRoot()
	var clone func(src *PNode) *PNode
	var ref *PNode
	clone = func(src *PNode) *PNode {
		dup := NewPNode(src.node)
		dup.attrs = src.attrs.Dup()
		if src.matched != nil {
			dup.matched = src.matched.Dup()
		}
		if src == pn {
			ref = dup
		}
		for _, c := range src.children {
			dup.LinkChild(clone(c))
		}
		return dup
	}
	clone(root)
	return ref
}

// Dump renders the tree for debugging, one node per line, each child
// indented two spaces deeper than its parent.
func (pn *PNode) Dump() string {
	var b strings.Builder
	var walk func(pn *PNode, indent int)
	walk = func(pn *PNode, indent int) {
		id, typeName, desc := "none", "none", "none"
		if pn.node != nil {
			id = pn.node.ID()
			typeName = pn.node.Type().Name
			desc = pn.node.Desc()
		}
		vec := "<no match>"
		if pn.matched != nil {
			vec = strings.Join(pn.matched.Strings(), " ")
		}
		fmt.Fprintf(&b, "%s%s type=%s id=%s vec=%q\n", strings.Repeat("  ", indent), desc, typeName, id, vec)
		for _, c := range pn.children {
			walk(c, indent+1)
		}
	}
	if pn == nil {
		b.WriteString("pnode is nil\n")
		return b.String()
	}
	walk(pn, 0)
	return b.String()
}
