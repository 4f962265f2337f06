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

import "strings"

type strPriv struct {
	value string
}

func init() {
	must(RegisterNodeType(&NodeType{
		Name: "str",
		Schema: Schema{
			{Key: "string", Desc: "literal token to match", Type: ConfigStringKind},
		},
		SetConfig: func(n *Node, cfg *Config) error {
			s, err := DictGet(cfg, "string")
			if err != nil {
				return err
			}
			n.priv.(*strPriv).value = s.Str
			return nil
		},
		Parse: func(n *Node, pstate *PNode, strvec *StrVec) (int, error) {
			p := n.priv.(*strPriv)
			if strvec.Len() == 0 || strvec.Val(0) != p.value {
				return NoMatch, nil
			}
			return 1, nil
		},
		Complete: func(n *Node, comp *Comp, strvec *StrVec) error {
			p := n.priv.(*strPriv)
			if strvec.Len() != 1 {
				return nil
			}
			tok := strvec.Val(0)
			if strings.HasPrefix(p.value, tok) {
				comp.AddItem(n, CompFull, tok, p.value)
			}
			return nil
		},
		Desc: func(n *Node) string {
			return n.priv.(*strPriv).value
		},
		InitPriv: func(n *Node) { n.priv = &strPriv{} },
	}))
}

// Str builds a node that matches exactly one token equal to value.
func Str(id, value string) *Node {
	n, err := NewNode("str", id)
	if err != nil {
		panic(err)
	}
	cfg := ConfigDictNew()
	_ = DictSet(cfg, "string", ConfigString(value))
	if err := n.SetConfig(cfg); err != nil {
		panic(err)
	}
	return n
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
