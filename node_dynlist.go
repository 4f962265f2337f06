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
	"regexp"
	"strings"
)

// DynlistFlag is a bitmask controlling how a dynlist node matches tokens
// against its runtime-supplied candidate list (spec.md §4.6.15).
type DynlistFlag int

const (
	DynlistMatchList DynlistFlag = 1 << iota
	DynlistMatchRegexp
	DynlistExcludeList
)

// DynlistGetFunc returns a fresh list of admissible names for the current
// parse state. opaque is caller-supplied context passed through unchanged.
type DynlistGetFunc func(pstate *PNode, opaque interface{}) *StrVec

type dynlistPriv struct {
	get      DynlistGetFunc
	opaque   interface{}
	flags    DynlistFlag
	rePat    string
	compiled *regexp.Regexp
}

func init() {
	must(RegisterNodeType(&NodeType{
		Name: "dynlist",
		Parse: func(n *Node, pstate *PNode, strvec *StrVec) (int, error) {
			if strvec.Len() == 0 {
				return NoMatch, nil
			}
			p := n.priv.(*dynlistPriv)
			tok := strvec.Val(0)
			list := p.get(pstate, p.opaque)
			inList := strvecContains(list, tok)
			reMatch := p.compiled != nil && p.compiled.MatchString(tok)

			matched := false
			if p.flags&DynlistExcludeList != 0 && !inList && reMatch {
				matched = true
			}
			if p.flags&DynlistMatchList != 0 && inList {
				matched = true
			}
			if p.flags&DynlistMatchRegexp != 0 && reMatch {
				matched = true
			}
			if !matched {
				return NoMatch, nil
			}
			return 1, nil
		},
		Complete: func(n *Node, comp *Comp, strvec *StrVec) error {
			if strvec.Len() != 1 {
				return nil
			}
			p := n.priv.(*dynlistPriv)
			tok := strvec.Val(0)
			comp.AddItem(n, CompUnknown, tok, tok)
			if p.flags&DynlistMatchList != 0 {
				list := p.get(comp.PState(), p.opaque)
				for i := 0; i < list.Len(); i++ {
					name := list.Val(i)
					if strings.HasPrefix(name, tok) {
						comp.AddItem(n, CompFull, tok, name)
					}
				}
			}
			return nil
		},
		InitPriv: func(n *Node) { n.priv = &dynlistPriv{} },
	}))
}

func strvecContains(v *StrVec, s string) bool {
	for i := 0; i < v.Len(); i++ {
		if v.Val(i) == s {
			return true
		}
	}
	return false
}

// Dynlist builds a node whose admissible tokens are produced at
// parse/complete time by get(pstate, opaque), combined with flags and an
// optional POSIX extended regex pattern.
func Dynlist(id string, get DynlistGetFunc, opaque interface{}, flags DynlistFlag, pattern string) (*Node, error) {
	n, err := NewNode("dynlist", id)
	if err != nil {
		return nil, err
	}
	p := n.priv.(*dynlistPriv)
	p.get = get
	p.opaque = opaque
	p.flags = flags
	if pattern != "" {
		re, cerr := regexp.CompilePOSIX("^(?:" + pattern + ")$")
		if cerr != nil {
			return nil, wrapError(KindInvalidArgument, cerr, "invalid regex %q", pattern)
		}
		p.rePat = pattern
		p.compiled = re
	}
	return n, nil
}
