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
	"fmt"
	"sort"
	"strings"
)

// Standard attribute keys attached to every token produced by the shell
// tokenizer (spec.md §9, "tokenizer attributes" open question): the byte
// offsets of the token within the original pre-lexing string.
const (
	AttrStart = "start"
	AttrEnd   = "end"
)

// Token is a single element of a StrVec: a string plus an optional
// attribute dictionary.
type Token struct {
	Str   string
	Attrs *Dict
}

// tokenElem is the refcounted backing storage for a token. Several StrVec
// values may share the same *tokenElem after Dup/NDup; Set copies-on-write
// rather than mutating a shared element.
type tokenElem struct {
	tok  Token
	refs int32
}

// StrVec is an ordered, immutable-by-sharing sequence of tokens. Copies made
// via Dup or NDup share the underlying elements until one of them is
// mutated, at which point only that element is copied.
type StrVec struct {
	elems []*tokenElem
}

// New returns an empty token vector.
func New() *StrVec {
	return &StrVec{}
}

// FromArray builds a token vector from plain strings, none of which carry
// attributes.
func FromArray(ss ...string) *StrVec {
	v := New()
	for _, s := range ss {
		v.Add(s)
	}
	return v
}

// Add appends a new token holding s, with no attributes.
func (v *StrVec) Add(s string) {
	v.elems = append(v.elems, &tokenElem{tok: Token{Str: s}, refs: 1})
}

// AddToken appends a fully-formed token.
func (v *StrVec) AddToken(t Token) {
	v.elems = append(v.elems, &tokenElem{tok: t, refs: 1})
}

// Set replaces the string at index i. If the underlying element is shared
// with another vector (refs > 1), it is copied first so the other vector's
// view is unaffected.
func (v *StrVec) Set(i int, s string) error {
	if i < 0 || i >= len(v.elems) {
		return newError(KindInvalidArgument, "index %d out of range", i)
	}
	v.cow(i)
	v.elems[i].tok.Str = s
	return nil
}

// SetAttrs replaces the attribute dictionary at index i, copying on write
// as Set does.
func (v *StrVec) SetAttrs(i int, d *Dict) error {
	if i < 0 || i >= len(v.elems) {
		return newError(KindInvalidArgument, "index %d out of range", i)
	}
	v.cow(i)
	v.elems[i].tok.Attrs = d
	return nil
}

func (v *StrVec) cow(i int) {
	e := v.elems[i]
	if e.refs <= 1 {
		return
	}
	e.refs--
	cp := Token{Str: e.tok.Str}
	if e.tok.Attrs != nil {
		cp.Attrs = e.tok.Attrs.Dup()
	}
	v.elems[i] = &tokenElem{tok: cp, refs: 1}
}

// DelLast removes the last token, if any.
func (v *StrVec) DelLast() {
	if len(v.elems) == 0 {
		return
	}
	v.elems[len(v.elems)-1].refs--
	v.elems = v.elems[:len(v.elems)-1]
}

// Len returns the number of tokens.
func (v *StrVec) Len() int {
	if v == nil {
		return 0
	}
	return len(v.elems)
}

// Val returns the string at index i.
func (v *StrVec) Val(i int) string {
	return v.elems[i].tok.Str
}

// GetAttrs returns the attribute dictionary at index i, or nil.
func (v *StrVec) GetAttrs(i int) *Dict {
	return v.elems[i].tok.Attrs
}

// Dup returns a logical copy sharing all elements with v.
func (v *StrVec) Dup() *StrVec {
	return v.NDup(0, len(v.elems))
}

// NDup returns a logical copy of the off..off+length slice, sharing
// elements with v. It fails if off+length exceeds v's length.
func (v *StrVec) NDup(off, length int) *StrVec {
	if off < 0 || length < 0 || off+length > len(v.elems) {
		return nil
	}
	out := &StrVec{elems: make([]*tokenElem, length)}
	for i := 0; i < length; i++ {
		e := v.elems[off+i]
		e.refs++
		out.elems[i] = e
	}
	return out
}

// Cmp performs a lexicographic string comparison of v against o's tokens,
// ignoring attributes.
func (v *StrVec) Cmp(o *StrVec) int {
	for i := 0; i < v.Len() && i < o.Len(); i++ {
		if c := strings.Compare(v.Val(i), o.Val(i)); c != 0 {
			return c
		}
	}
	return v.Len() - o.Len()
}

// Sort reorders tokens in place by the given comparator, leaving attributes
// attached to whichever token ends up where.
func (v *StrVec) Sort(less func(a, b string) bool) {
	sort.SliceStable(v.elems, func(i, j int) bool {
		return less(v.elems[i].tok.Str, v.elems[j].tok.Str)
	})
}

// Dump writes a human-readable rendering of the vector, one token per line.
func (v *StrVec) Dump() string {
	var b strings.Builder
	for i := 0; i < v.Len(); i++ {
		fmt.Fprintf(&b, "  %d: %q\n", i, v.Val(i))
	}
	if v.Len() == 0 {
		b.WriteString("  (empty)\n")
	}
	return b.String()
}

// Strings returns a plain []string copy of the vector's contents.
func (v *StrVec) Strings() []string {
	out := make([]string, v.Len())
	for i := range out {
		out[i] = v.Val(i)
	}
	return out
}
