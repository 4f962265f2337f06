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
		Name:          "subset",
		Schema:        childrenSchema(),
		SetConfig:     setChildrenFromConfig,
		Parse:         subsetParse,
		Complete: func(n *Node, comp *Comp, strvec *StrVec) error {
			return subsetComplete(n.priv.(*childrenPriv).children, comp, strvec)
		},
		ChildrenCount: childrenCount,
		GetChild:      getChildAt,
		InitPriv:      func(n *Node) { n.priv = &childrenPriv{} },
	}))
}

// Subset builds a node that matches its children in any order, each at
// most once, greedily preferring the ordering that consumes the most
// children (then the most tokens).
func Subset(id string, children ...*Node) *Node {
	n, err := NewNode("subset", id)
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

// SubsetAdd appends a new child to an existing "subset" node's configuration.
func SubsetAdd(n *Node, child *Node) error {
	return addChild(n, child)
}

// subsetCandidate is the best ordering found so far during search: the
// number of children matched, the total tokens consumed, and the indices
// (into the original children slice) in match order.
type subsetCandidate struct {
	parseLen int
	length   int
	order    []int
}

// subsetSearch finds an ordering of a subset of indices consuming the
// longest token prefix, each used at most once. Grounded on
// original_source/src/node_subset.c's __ec_node_subset_parse: for each
// remaining child, try it, then recurse on the rest over the suffix;
// among all candidates, keep the greatest parse-length, tie-broken by
// greatest consumed-length.
func subsetSearch(children []*Node, indices []int, strvec *StrVec) (subsetCandidate, error) {
	best := subsetCandidate{}
	for pos, idx := range indices {
		ret, err := quietParse(children[idx], strvec)
		if err != nil {
			return subsetCandidate{}, err
		}
		if ret == NoMatch {
			continue
		}

		rest := make([]int, 0, len(indices)-1)
		rest = append(rest, indices[:pos]...)
		rest = append(rest, indices[pos+1:]...)

		suffix := strvec.NDup(ret, strvec.Len()-ret)
		sub, err := subsetSearch(children, rest, suffix)
		if err != nil {
			return subsetCandidate{}, err
		}

		cand := subsetCandidate{
			parseLen: 1 + sub.parseLen,
			length:   ret + sub.length,
			order:    append([]int{idx}, sub.order...),
		}
		if cand.parseLen > best.parseLen || (cand.parseLen == best.parseLen && cand.length > best.length) {
			best = cand
		}
	}
	return best, nil
}

// quietParse parses child against strvec without linking into any real
// parse tree, used purely to probe match length during search.
func quietParse(child *Node, strvec *StrVec) (int, error) {
	scratch := NewPNode(child)
	return doParseChild(child, scratch, true, strvec)
}

// subsetParse runs the search, then replays the winning order against the
// real pstate so the resulting parse tree reflects the chosen children in
// match order (not declaration order). Returns 0 (empty match) if no
// child matches.
func subsetParse(n *Node, pstate *PNode, strvec *StrVec) (int, error) {
	children := n.priv.(*childrenPriv).children
	indices := make([]int, len(children))
	for i := range children {
		indices[i] = i
	}
	best, err := subsetSearch(children, indices, strvec)
	if err != nil {
		return 0, err
	}

	offset := 0
	for _, idx := range best.order {
		suffix := strvec.NDup(offset, strvec.Len()-offset)
		ret, err := ParseChild(children[idx], pstate, suffix)
		if err != nil {
			return 0, err
		}
		offset += ret
	}
	return offset, nil
}

func without(children []*Node, i int) []*Node {
	out := make([]*Node, 0, len(children)-1)
	out = append(out, children[:i]...)
	out = append(out, children[i+1:]...)
	return out
}

// subsetComplete completes each remaining child directly, then for every
// child that matches the prefix, recurses completion on the rest with
// that child removed (original_source/src/node_subset.c).
func subsetComplete(children []*Node, comp *Comp, strvec *StrVec) error {
	for i, child := range children {
		if err := CompleteChild(child, comp, strvec); err != nil {
			return err
		}
		ret, err := quietParse(child, strvec)
		if err != nil {
			return err
		}
		if ret == NoMatch {
			continue
		}
		rest := without(children, i)
		suffix := strvec.NDup(ret, strvec.Len()-ret)
		if err := subsetComplete(rest, comp, suffix); err != nil {
			return err
		}
	}
	return nil
}
