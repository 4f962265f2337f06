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

type anyPriv struct {
	attr string // empty means "no attribute required"
}

func init() {
	must(RegisterNodeType(&NodeType{
		Name: "any",
		Schema: Schema{
			{Key: "attr", Desc: "required token attribute key, if any", Type: ConfigStringKind, Optional: true},
		},
		SetConfig: func(n *Node, cfg *Config) error {
			p := n.priv.(*anyPriv)
			p.attr = ""
			if v, err := DictGet(cfg, "attr"); err == nil {
				p.attr = v.Str
			}
			return nil
		},
		Parse: func(n *Node, pstate *PNode, strvec *StrVec) (int, error) {
			if strvec.Len() == 0 {
				return NoMatch, nil
			}
			p := n.priv.(*anyPriv)
			if p.attr != "" {
				attrs := strvec.GetAttrs(0)
				if attrs == nil || !attrs.HasKey(p.attr) {
					return NoMatch, nil
				}
			}
			return 1, nil
		},
		Complete: func(n *Node, comp *Comp, strvec *StrVec) error {
			start := ""
			if strvec.Len() > 0 {
				start = strvec.Val(strvec.Len() - 1)
			}
			comp.AddItem(n, CompUnknown, start, start)
			return nil
		},
		InitPriv: func(n *Node) { n.priv = &anyPriv{} },
	}))
}

// Any builds a node that matches any single token, optionally requiring
// it to carry the attribute key attr.
func Any(id, attr string) *Node {
	n, err := NewNode("any", id)
	if err != nil {
		panic(err)
	}
	cfg := ConfigDictNew()
	if attr != "" {
		_ = DictSet(cfg, "attr", ConfigString(attr))
	}
	if err := n.SetConfig(cfg); err != nil {
		panic(err)
	}
	return n
}
