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

type onePriv struct {
	child *Node
}

func oneChildSchema() Schema {
	return Schema{{Key: "child", Desc: "wrapped node", Type: ConfigNodeKind}}
}

func setOneChildFromConfig(n *Node, cfg *Config) error {
	child, err := DictGet(cfg, "child")
	if err != nil {
		return err
	}
	n.priv.(*onePriv).child = child.Node
	return nil
}

func oneChildCount(n *Node) int { return 1 }

func getOneChild(n *Node, i int) (*Node, int, bool) {
	if i != 0 {
		return nil, 0, false
	}
	return n.priv.(*onePriv).child, 1, true
}

func init() {
	must(RegisterNodeType(&NodeType{
		Name:      "option",
		Schema:    oneChildSchema(),
		SetConfig: setOneChildFromConfig,
		Parse: func(n *Node, pstate *PNode, strvec *StrVec) (int, error) {
			child := n.priv.(*onePriv).child
			ret, err := ParseChild(child, pstate, strvec)
			if err != nil {
				return 0, err
			}
			if ret == NoMatch {
				return 0, nil
			}
			return ret, nil
		},
		Complete: func(n *Node, comp *Comp, strvec *StrVec) error {
			return CompleteChild(n.priv.(*onePriv).child, comp, strvec)
		},
		ChildrenCount: oneChildCount,
		GetChild:      getOneChild,
		InitPriv:      func(n *Node) { n.priv = &onePriv{} },
	}))
}

// Option builds a node that delegates to child, matching zero tokens
// instead of failing when child does not match.
func Option(id string, child *Node) *Node {
	n, err := NewNode("option", id)
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
