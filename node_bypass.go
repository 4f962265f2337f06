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

// bypass is a pure transparent pass-through for both parse and complete.
// Its only purpose is to be used as an intermediate hop so that recursive
// grammars can close a cycle through a single, dedicated back-edge
// (spec.md §4.6.14, §4.10). Grounded on
// original_source/src/ecoli_node_bypass.c.
func init() {
	must(RegisterNodeType(&NodeType{
		Name:      "bypass",
		Schema:    oneChildSchema(),
		SetConfig: setOneChildFromConfig,
		Parse: func(n *Node, pstate *PNode, strvec *StrVec) (int, error) {
			return ParseChild(n.priv.(*onePriv).child, pstate, strvec)
		},
		Complete: func(n *Node, comp *Comp, strvec *StrVec) error {
			return CompleteChild(n.priv.(*onePriv).child, comp, strvec)
		},
		ChildrenCount: oneChildCount,
		GetChild:      getOneChild,
		InitPriv:      func(n *Node) { n.priv = &onePriv{} },
	}))
}

// Bypass builds a transparent pass-through node used to close reference
// cycles in recursive grammars (see Free in node.go).
func Bypass(id string, child *Node) *Node {
	n, err := NewNode("bypass", id)
	if err != nil {
		panic(err)
	}
	cfg := ConfigDictNew()
	_ = DictSet(cfg, "child", ConfigNode(child))
	if err := n.SetConfig(cfg); err != nil {
		panic(err)
	}
	return n
}

// SetChild updates a bypass node's child after construction, which is how
// callers close a cycle: build the bypass with a placeholder, build the
// rest of the recursive grammar referencing the bypass, then retarget it.
// The old child's reference is released, since this edge no longer holds it.
func (n *Node) SetChild(child *Node) error {
	p, ok := n.priv.(*onePriv)
	if !ok {
		return newError(KindInvalidArgument, "SetChild: not a single-child node")
	}
	old := p.child
	cfg := ConfigNode(child)
	p.child = cfg.Node
	if n.config == nil {
		n.config = ConfigDictNew()
	}
	_ = DictSet(n.config, "child", cfg)
	if old != nil {
		return Free(old)
	}
	return nil
}
