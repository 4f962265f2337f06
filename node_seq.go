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

func init() {
	must(RegisterNodeType(&NodeType{
		Name:      "seq",
		Schema:    childrenSchema(),
		SetConfig: setChildrenFromConfig,
		Parse: func(n *Node, pstate *PNode, strvec *StrVec) (int, error) {
			p := n.priv.(*childrenPriv)
			offset := 0
			for _, child := range p.children {
				suffix := strvec.NDup(offset, strvec.Len()-offset)
				ret, err := ParseChild(child, pstate, suffix)
				if err != nil {
					return 0, err
				}
				if ret == NoMatch {
					freeParsedChildren(pstate)
					return NoMatch, nil
				}
				offset += ret
			}
			return offset, nil
		},
		Complete: func(n *Node, comp *Comp, strvec *StrVec) error {
			return seqComplete(n.priv.(*childrenPriv).children, comp, strvec)
		},
		ChildrenCount: childrenCount,
		GetChild:      getChildAt,
		InitPriv:      func(n *Node) { n.priv = &childrenPriv{} },
	}))
}

// Seq builds a node that matches its children in order, each against the
// remainder left by the previous one.
func Seq(id string, children ...*Node) *Node {
	n, err := NewNode("seq", id)
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

// SeqAdd appends a new child to an existing "seq" node's configuration.
func SeqAdd(n *Node, child *Node) error {
	return addChild(n, child)
}

// freeParsedChildren discards every parse-tree child accumulated so far
// under pstate, mirroring the original's "free all children on NOMATCH".
func freeParsedChildren(pstate *PNode) {
	pstate.ClearChildren()
}

// seqComplete implements the union over i of "parse the first i children
// strictly, then complete the (i+1)-th child on the remainder" (spec.md
// §4.6.9). Grounded on original_source/src/node_seq.c's recursive split.
func seqComplete(children []*Node, comp *Comp, strvec *StrVec) error {
	if len(children) == 0 {
		return nil
	}
	head, rest := children[0], children[1:]

	if err := CompleteChild(head, comp, strvec); err != nil {
		return err
	}
	if len(rest) == 0 {
		return nil
	}

	for i := 0; i <= strvec.Len(); i++ {
		prefix := strvec.NDup(0, i)
		scratch := NewPNode(head)
		ret, err := doParseChild(head, scratch, true, prefix)
		if err != nil {
			return err
		}
		if ret != i {
			continue
		}
		suffix := strvec.NDup(i, strvec.Len()-i)
		if err := seqComplete(rest, comp, suffix); err != nil {
			return err
		}
	}
	return nil
}
