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

type shlexPriv struct {
	child  *Node
	expand bool
}

func init() {
	must(RegisterNodeType(&NodeType{
		Name: "sh_lex",
		Schema: oneChildSchema(),
		SetConfig: func(n *Node, cfg *Config) error {
			child, err := DictGet(cfg, "child")
			if err != nil {
				return err
			}
			n.priv.(*shlexPriv).child = child.Node
			return nil
		},
		Parse:    shlexParse,
		Complete: shlexComplete,
		ChildrenCount: func(n *Node) int { return 1 },
		GetChild: func(n *Node, i int) (*Node, int, bool) {
			if i != 0 {
				return nil, 0, false
			}
			return n.priv.(*shlexPriv).child, 1, true
		},
		InitPriv: func(n *Node) { n.priv = &shlexPriv{} },
	}))
}

// shlexParse consumes exactly the first remaining outer token, tokenizes
// its contents with the shell tokenizer, and delegates to the child on
// the resulting inner vector. An unterminated quote is a NoMatch, not an
// error — a partial line is not a hard failure (spec.md §4.7, §7).
// Grounded on original_source/src/node_sh_lex.c's ec_node_sh_lex_parse.
func shlexParse(n *Node, pstate *PNode, strvec *StrVec) (int, error) {
	if strvec.Len() == 0 {
		return NoMatch, nil
	}
	p := n.priv.(*shlexPriv)

	newVec, _, err := LexString(strvec.Val(0), true, false)
	if err != nil {
		return NoMatch, nil
	}
	if p.expand {
		newVec = expandStrvec(p.child, newVec)
	}

	ret, err := ParseChild(p.child, pstate, newVec)
	if err != nil {
		return 0, err
	}
	if ret == NoMatch {
		return NoMatch, nil
	}
	if ret != newVec.Len() {
		pstate.DelLastChild()
		return NoMatch, nil
	}
	return 1, nil
}

// shlexComplete retokenizes the single outer token with
// keep-trailing-space, runs the child's completion on the inner vector,
// and for every newly produced "full" item wraps str/completion in a
// missing quote character when the tokenizer found an unterminated quote
// (spec.md §4.7, §9). Grounded on
// original_source/src/node_sh_lex.c's ec_node_sh_lex_complete.
func shlexComplete(n *Node, comp *Comp, strvec *StrVec) error {
	if strvec.Len() != 1 {
		return nil
	}
	p := n.priv.(*shlexPriv)

	newVec, missingQuote, err := LexString(strvec.Val(0), false, true)
	if err != nil {
		return err
	}

	existing := make(map[*CompItem]bool)
	for _, it := range comp.Items(CompFull) {
		existing[it] = true
	}

	if p.expand {
		newVec = expandStrvec(p.child, newVec)
	}

	last := ""
	if newVec.Len() > 0 {
		last = newVec.Val(newVec.Len() - 1)
	}

	if err := CompleteChild(p.child, comp, newVec); err != nil {
		return err
	}

	for _, it := range comp.Items(CompFull) {
		if existing[it] {
			continue
		}
		if p.expand && last != "" {
			prefix := commonPrefixLen(it.Full, last)
			it.Completion = it.Full[prefix:]
		}
		if missingQuote != 0 {
			q := string(missingQuote)
			it.Full = q + it.Full + q
			it.Completion = it.Completion + q
		}
	}
	return nil
}

func commonPrefixLen(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// expandStrvec asks child for its full completions on vec and, if they
// share an unambiguous prefix beyond vec's current content, widens vec's
// last token by that prefix. Grounded on the "expand" mode described in
// spec.md §4.7 / original_source/src/node_sh_lex.c.
func expandStrvec(child *Node, vec *StrVec) *StrVec {
	comp, err := CompleteStrvec(child, vec)
	if err != nil {
		return vec
	}
	items := comp.Items(CompFull)
	if len(items) == 0 {
		return vec
	}
	prefix := items[0].Full
	for _, it := range items[1:] {
		n := commonPrefixLen(prefix, it.Full)
		prefix = prefix[:n]
	}
	last := ""
	if vec.Len() > 0 {
		last = vec.Val(vec.Len() - 1)
	}
	if !strings.HasPrefix(prefix, last) || prefix == last {
		return vec
	}
	out := vec.Dup()
	if out.Len() > 0 {
		_ = out.Set(out.Len()-1, prefix)
	} else {
		out.Add(prefix)
	}
	return out
}

// ShLex builds a node that tokenizes a single input string with shell
// quoting rules and delegates to child on the result.
func ShLex(id string, child *Node) *Node {
	n, err := NewNode("sh_lex", id)
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

// ShLexExpand builds a sh_lex node in "expand" mode: it widens the
// recognized input to the unambiguous shared prefix of the child's full
// completions before delegating.
func ShLexExpand(id string, child *Node) *Node {
	n := ShLex(id, child)
	n.priv.(*shlexPriv).expand = true
	return n
}
