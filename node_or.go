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

type childrenPriv struct {
	children []*Node
}

func childrenSchema() Schema {
	return Schema{
		{Key: "children", Desc: "child nodes", Type: ConfigListKind, Sub: []SchemaEntry{{Type: ConfigNodeKind}}},
	}
}

func setChildrenFromConfig(n *Node, cfg *Config) error {
	list, err := DictGet(cfg, "children")
	if err != nil {
		return err
	}
	p := n.priv.(*childrenPriv)
	p.children = make([]*Node, 0, len(list.List))
	for _, c := range list.List {
		p.children = append(p.children, c.Node)
	}
	return nil
}

func childrenCount(n *Node) int {
	return len(n.priv.(*childrenPriv).children)
}

func getChildAt(n *Node, i int) (*Node, int, bool) {
	p := n.priv.(*childrenPriv)
	if i < 0 || i >= len(p.children) {
		return nil, 0, false
	}
	return p.children[i], 1, true
}

func init() {
	must(RegisterNodeType(&NodeType{
		Name:      "or",
		Schema:    childrenSchema(),
		SetConfig: setChildrenFromConfig,
		Parse: func(n *Node, pstate *PNode, strvec *StrVec) (int, error) {
			p := n.priv.(*childrenPriv)
			for _, child := range p.children {
				ret, err := ParseChild(child, pstate, strvec)
				if err != nil {
					return 0, err
				}
				if ret != NoMatch {
					return ret, nil
				}
			}
			return NoMatch, nil
		},
		Complete: func(n *Node, comp *Comp, strvec *StrVec) error {
			p := n.priv.(*childrenPriv)
			for _, child := range p.children {
				if err := CompleteChild(child, comp, strvec); err != nil {
					return err
				}
			}
			return nil
		},
		ChildrenCount: childrenCount,
		GetChild:      getChildAt,
		InitPriv:      func(n *Node) { n.priv = &childrenPriv{} },
	}))
}

// Or builds a node that matches the first child that matches, and whose
// completions are the union of every child's completions.
func Or(id string, children ...*Node) *Node {
	n, err := NewNode("or", id)
	if err != nil {
		panic(err)
	}
	cfg := ConfigDictNew()
	list := ConfigListNew()
	for _, c := range children {
		_ = ListAdd(list, ConfigNode(c))
	}
	_ = DictSet(cfg, "children", list)
	if err := n.SetConfig(cfg); err != nil {
		panic(err)
	}
	return n
}

// OrAdd appends a new child to an existing "or" node's configuration.
func OrAdd(n *Node, child *Node) error {
	return addChild(n, child)
}

func addChild(n *Node, child *Node) error {
	p, ok := n.priv.(*childrenPriv)
	if !ok {
		return newError(KindInvalidArgument, "addChild: node has no children list")
	}
	p.children = append(p.children, child)
	if n.config != nil {
		if list, err := DictGet(n.config, "children"); err == nil {
			_ = ListAdd(list, ConfigNode(child))
		}
	}
	return nil
}
