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

import "regexp"

type rePriv struct {
	pattern  string
	compiled *regexp.Regexp
}

func init() {
	must(RegisterNodeType(&NodeType{
		Name: "re",
		Schema: Schema{
			{Key: "pattern", Desc: "POSIX extended regex a token must fully match", Type: ConfigStringKind},
		},
		SetConfig: func(n *Node, cfg *Config) error {
			pat, err := DictGet(cfg, "pattern")
			if err != nil {
				return err
			}
			re, cerr := regexp.CompilePOSIX("^(?:" + pat.Str + ")$")
			if cerr != nil {
				return wrapError(KindInvalidArgument, cerr, "invalid regex %q", pat.Str)
			}
			p := n.priv.(*rePriv)
			p.pattern = pat.Str
			p.compiled = re
			return nil
		},
		Parse: func(n *Node, pstate *PNode, strvec *StrVec) (int, error) {
			p := n.priv.(*rePriv)
			if strvec.Len() == 0 || p.compiled == nil {
				return NoMatch, nil
			}
			if !p.compiled.MatchString(strvec.Val(0)) {
				return NoMatch, nil
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
		Desc: func(n *Node) string { return n.priv.(*rePriv).pattern },
		InitPriv: func(n *Node) { n.priv = &rePriv{} },
	}))
}

// Re builds a node that matches one token whose entire content matches
// the POSIX extended regex pattern.
func Re(id, pattern string) *Node {
	n, err := NewNode("re", id)
	if err != nil {
		panic(err)
	}
	cfg := ConfigDictNew()
	_ = DictSet(cfg, "pattern", ConfigString(pattern))
	if err := n.SetConfig(cfg); err != nil {
		panic(err)
	}
	return n
}
