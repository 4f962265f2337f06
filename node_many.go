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

type manyPriv struct {
	child *Node
	min   int
	max   int // 0 means unbounded
}

func init() {
	must(RegisterNodeType(&NodeType{
		Name: "many",
		Schema: Schema{
			{Key: "child", Desc: "node to repeat", Type: ConfigNodeKind},
			{Key: "min", Desc: "minimum repeat count", Type: ConfigUint64Kind, Optional: true},
			{Key: "max", Desc: "maximum repeat count, 0 means unbounded", Type: ConfigUint64Kind, Optional: true},
		},
		SetConfig: func(n *Node, cfg *Config) error {
			child, err := DictGet(cfg, "child")
			if err != nil {
				return err
			}
			p := n.priv.(*manyPriv)
			p.child = child.Node
			p.min = 0
			p.max = 0
			if v, err := DictGet(cfg, "min"); err == nil {
				p.min = int(v.U64)
			}
			if v, err := DictGet(cfg, "max"); err == nil {
				p.max = int(v.U64)
			}
			return nil
		},
		Parse:         manyParse,
		Complete: func(n *Node, comp *Comp, strvec *StrVec) error {
			p := n.priv.(*manyPriv)
			return manyComplete(p.child, p.max, comp, strvec)
		},
		ChildrenCount: func(n *Node) int { return 1 },
		GetChild: func(n *Node, i int) (*Node, int, bool) {
			if i != 0 {
				return nil, 0, false
			}
			return n.priv.(*manyPriv).child, 1, true
		},
		InitPriv: func(n *Node) { n.priv = &manyPriv{} },
	}))
}

// manyParse greedily repeats child, stopping at the first NoMatch. When
// max == 0 (unbounded) and the child matches zero tokens, that zero-width
// match is discarded to avoid looping forever; bounded repetition keeps
// counting zero-width matches toward the count (spec.md §9's open
// question, resolved in SPEC_FULL.md §6). Grounded on
// original_source/src/node_many.c.
func manyParse(n *Node, pstate *PNode, strvec *StrVec) (int, error) {
	p := n.priv.(*manyPriv)
	offset := 0
	count := 0

	for p.max == 0 || count < p.max {
		suffix := strvec.NDup(offset, strvec.Len()-offset)
		ret, err := ParseChild(p.child, pstate, suffix)
		if err != nil {
			return 0, err
		}
		if ret == NoMatch {
			break
		}
		if ret == 0 && p.max == 0 {
			pstate.DelLastChild()
			break
		}
		offset += ret
		count++
	}

	if count < p.min {
		freeParsedChildren(pstate)
		return NoMatch, nil
	}
	return offset, nil
}

// manyComplete first completes the child against the full remaining
// vector, then for each split point i where the child parses exactly the
// first i tokens, recursively completes "many with max-1" on the rest
// (spec.md §4.6.11).
func manyComplete(child *Node, max int, comp *Comp, strvec *StrVec) error {
	if err := CompleteChild(child, comp, strvec); err != nil {
		return err
	}
	if max == 1 {
		return nil
	}
	nextMax := max
	if max > 0 {
		nextMax = max - 1
	}
	for i := 1; i <= strvec.Len(); i++ {
		prefix := strvec.NDup(0, i)
		ret, err := quietParse(child, prefix)
		if err != nil {
			return err
		}
		if ret != i {
			continue
		}
		suffix := strvec.NDup(i, strvec.Len()-i)
		if err := manyComplete(child, nextMax, comp, suffix); err != nil {
			return err
		}
	}
	return nil
}

// Many builds a node that greedily repeats child between min and max
// times (max == 0 means unbounded).
func Many(id string, child *Node, min, max int) *Node {
	n, err := NewNode("many", id)
	if err != nil {
		panic(err)
	}
	cfg := ConfigDictNew()
	_ = DictSet(cfg, "child", ConfigNode(child))
	_ = DictSet(cfg, "min", ConfigU64(uint64(min)))
	_ = DictSet(cfg, "max", ConfigU64(uint64(max)))
	if err := n.SetConfig(cfg); err != nil {
		panic(err)
	}
	return n
}
