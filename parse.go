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

// NoMatch is the sentinel a node type's Parse hook returns for a
// syntactic non-match. It is explicitly not an error: combinators never
// swallow a real error to produce NoMatch (spec.md §7), except the
// shell-lexer node's deliberate "unterminated quote" case (node_shlex.go).
const NoMatch = -1

func doParseChild(node *Node, pstate *PNode, isRoot bool, strvec *StrVec) (int, error) {
	if node.typ.Parse == nil {
		return 0, wrapError(KindNotSupported, nil, "node type %q has no parse hook", node.typ.Name)
	}

	var child *PNode
	if !isRoot {
		child = NewPNode(node)
		pstate.LinkChild(child)
	} else {
		child = pstate
	}

	ret, err := node.typ.Parse(node, child, strvec)
	if err != nil {
		if !isRoot {
			child.UnlinkChild()
		}
		return 0, err
	}
	if ret == NoMatch {
		if !isRoot {
			child.UnlinkChild()
		}
		return NoMatch, nil
	}

	child.matched = strvec.NDup(0, ret)
	return ret, nil
}

// ParseChild parses node against strvec as a child of the in-progress
// parse state pstate: on success a new parse node is linked under pstate;
// on NoMatch it is unlinked and discarded. Returns the number of tokens
// consumed, or NoMatch.
func ParseChild(node *Node, pstate *PNode, strvec *StrVec) (int, error) {
	if pstate == nil {
		return 0, newError(KindInvalidArgument, "ParseChild: nil parse state")
	}
	return doParseChild(node, pstate, false, strvec)
}

// ParseStrvec parses node against strvec from a fresh root parse tree.
// The returned tree's root has no matched sub-vector when node did not
// match; a nil return (with a non-nil error) signals a true internal
// error rather than a non-match.
func ParseStrvec(node *Node, strvec *StrVec) (*PNode, error) {
	pn := NewPNode(node)
	if _, err := doParseChild(node, pn, true, strvec); err != nil {
		return nil, err
	}
	return pn, nil
}

// Parse wraps str as a single-token vector and parses node against it.
// Callers that need shell-style tokenization should wrap their grammar's
// root with the shell-lexer node (node_shlex.go) rather than pre-splitting
// str themselves.
func Parse(node *Node, str string) (*PNode, error) {
	v := New()
	v.Add(str)
	return ParseStrvec(node, v)
}
