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

// countNodeInTree recursively counts pnodes anywhere under root whose
// originating grammar node is target. Grounded on
// original_source/src/ecoli_node_once.c's count_node.
func countNodeInTree(root *PNode, target *Node) int {
	if root == nil {
		return 0
	}
	count := 0
	if root.GetNode() == target {
		count++
	}
	for _, c := range root.Children() {
		count += countNodeInTree(c, target)
	}
	return count
}

func init() {
	must(RegisterNodeType(&NodeType{
		Name:      "once",
		Schema:    oneChildSchema(),
		SetConfig: setOneChildFromConfig,
		Parse: func(n *Node, pstate *PNode, strvec *StrVec) (int, error) {
			p := n.priv.(*onePriv)
			if countNodeInTree(pstate.GetRoot(), p.child) > 0 {
				return NoMatch, nil
			}
			return ParseChild(p.child, pstate, strvec)
		},
		Complete: func(n *Node, comp *Comp, strvec *StrVec) error {
			p := n.priv.(*onePriv)
			if countNodeInTree(comp.PState().GetRoot(), p.child) > 0 {
				return nil
			}
			return CompleteChild(p.child, comp, strvec)
		},
		ChildrenCount: oneChildCount,
		GetChild:      getOneChild,
		InitPriv:      func(n *Node) { n.priv = &onePriv{} },
	}))
}

// Once builds a node that refuses to match if child has already matched
// anywhere in the current parse tree.
func Once(id string, child *Node) *Node {
	n, err := NewNode("once", id)
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
