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

// CompleteChild runs node's completion against strvec, appending items
// into comp. A node with no Complete hook falls back to emitting a single
// "unknown" item (spec.md §4.8): "we do not know what goes here".
func CompleteChild(node *Node, comp *Comp, strvec *StrVec) error {
	comp.OpenGroup(node)
	if node.typ.Complete != nil {
		return node.typ.Complete(node, comp, strvec)
	}
	start := ""
	if strvec.Len() > 0 {
		start = strvec.Val(strvec.Len() - 1)
	}
	comp.AddItem(node, CompUnknown, start, start)
	return nil
}

// CompleteStrvec builds a fresh completion set carrying a fresh
// in-progress parse tree and runs node's completion against strvec.
func CompleteStrvec(node *Node, strvec *StrVec) (*Comp, error) {
	pn := NewPNode(node)
	comp := NewComp(pn)
	if err := CompleteChild(node, comp, strvec); err != nil {
		return nil, err
	}
	return comp, nil
}

// Complete wraps str as a single-token vector and completes node against
// it. As with Parse, multi-token completion goes through a shell-lexer
// node wrapping the grammar.
func Complete(node *Node, str string) (*Comp, error) {
	v := New()
	v.Add(str)
	return CompleteStrvec(node, v)
}
