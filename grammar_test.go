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

import "testing"

func TestSeqMatchesChildrenInOrder(t *testing.T) {
	t.Parallel()

	g := Seq("seq", Str("a", "foo"), Str("b", "bar"))
	root, err := ParseStrvec(g, FromArray("foo", "bar"))
	if err != nil {
		t.Fatalf("ParseStrvec: %v", err)
	}
	if !root.Matches() || root.Len() != 2 {
		t.Fatalf("Matches()=%v Len()=%d, want true, 2", root.Matches(), root.Len())
	}

	if root2, err := ParseStrvec(g, FromArray("foo", "baz")); err != nil {
		t.Fatalf("ParseStrvec: %v", err)
	} else if root2.Matches() {
		t.Fatalf("seq matched a mismatched second token")
	}
}

func TestOrTriesChildrenInOrderUntilMatch(t *testing.T) {
	t.Parallel()

	g := Or("or", Str("a", "foo"), Str("b", "bar"))
	for _, tok := range []string{"foo", "bar"} {
		tok := tok
		t.Run(tok, func(t *testing.T) {
			t.Parallel()

			root, err := ParseStrvec(g, FromArray(tok))
			if err != nil {
				t.Fatalf("ParseStrvec(%q): %v", tok, err)
			}
			if !root.Matches() || root.Len() != 1 {
				t.Fatalf("ParseStrvec(%q): Matches()=%v Len()=%d, want true, 1", tok, root.Matches(), root.Len())
			}
		})
	}

	root, err := ParseStrvec(g, FromArray("baz"))
	if err != nil {
		t.Fatalf("ParseStrvec: %v", err)
	}
	if root.Matches() {
		t.Fatalf("or matched a token none of its children accept")
	}
}

func TestManyRespectsMinAndMaxBounds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		tokens     []string
		wantMatch  bool
		wantLength int
	}{
		{"below minimum", []string{"x"}, false, 0},
		{"within bounds", []string{"x", "x", "x"}, true, 3},
		{"capped at maximum", []string{"x", "x", "x", "x", "x"}, true, 4},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			g := Many("many", Str("x", "x"), 2, 4)
			root, err := ParseStrvec(g, FromArray(c.tokens...))
			if err != nil {
				t.Fatalf("ParseStrvec: %v", err)
			}
			if root.Matches() != c.wantMatch {
				t.Fatalf("Matches() = %v, want %v", root.Matches(), c.wantMatch)
			}
			if c.wantMatch && root.Len() != c.wantLength {
				t.Fatalf("Len() = %d, want %d", root.Len(), c.wantLength)
			}
		})
	}
}

func TestManyUnboundedDiscardsZeroWidthMatch(t *testing.T) {
	t.Parallel()

	g := Many("many", Option("opt", Str("x", "y")), 0, 0)
	root, err := ParseStrvec(g, FromArray("z"))
	if err != nil {
		t.Fatalf("ParseStrvec: %v", err)
	}
	// option never fails (zero-width match on mismatch); many(max=0) must
	// discard that zero-width repetition instead of looping forever.
	if !root.Matches() || root.Len() != 0 {
		t.Fatalf("Matches()=%v Len()=%d, want true, 0", root.Matches(), root.Len())
	}
}

func TestSubsetMatchesAnyOrderOnce(t *testing.T) {
	t.Parallel()

	g := Subset("subset", Str("a", "a"), Str("b", "b"), Str("c", "c"))
	root, err := ParseStrvec(g, FromArray("c", "a", "b"))
	if err != nil {
		t.Fatalf("ParseStrvec: %v", err)
	}
	if !root.Matches() || root.Len() != 3 {
		t.Fatalf("Matches()=%v Len()=%d, want true, 3", root.Matches(), root.Len())
	}

	// a repeated token cannot satisfy two different children.
	root2, err := ParseStrvec(g, FromArray("a", "a"))
	if err != nil {
		t.Fatalf("ParseStrvec: %v", err)
	}
	if root2.Len() != 1 {
		t.Fatalf("subset over [a a]: Len() = %d, want 1 (each child used at most once)", root2.Len())
	}
}

func TestOptionNeverFails(t *testing.T) {
	t.Parallel()

	g := Option("opt", Str("x", "x"))
	root, err := ParseStrvec(g, FromArray("nope"))
	if err != nil {
		t.Fatalf("ParseStrvec: %v", err)
	}
	if !root.Matches() || root.Len() != 0 {
		t.Fatalf("option on mismatch: Matches()=%v Len()=%d, want true, 0", root.Matches(), root.Len())
	}
}

func TestOnceInsideManyOfOrStopsAtFirstRepeat(t *testing.T) {
	t.Parallel()

	x := Str("x", "x")
	g := Many("many-once", Or("or-wrap", Once("once-x", x)), 0, 0)
	root, err := ParseStrvec(g, FromArray("x", "x"))
	if err != nil {
		t.Fatalf("ParseStrvec: %v", err)
	}
	if !root.Matches() || root.Len() != 1 {
		t.Fatalf("Matches()=%v Len()=%d, want true, 1 (once blocks the second x)", root.Matches(), root.Len())
	}
}

func TestSeqCompletionSplitsAcrossChildren(t *testing.T) {
	t.Parallel()

	g := Seq("seq", Str("a", "foo"), Str("b", "bar"))

	t.Run("single candidate", func(t *testing.T) {
		t.Parallel()

		comp, err := CompleteStrvec(g, FromArray("fo"))
		if err != nil {
			t.Fatalf("CompleteStrvec: %v", err)
		}
		full := comp.Items(CompFull)
		if len(full) != 1 || full[0].Full != "foo" {
			t.Fatalf("completions for \"fo\" = %v, want exactly [foo]", full)
		}
	})

	t.Run("second child after first settles", func(t *testing.T) {
		t.Parallel()

		comp, err := CompleteStrvec(g, FromArray("foo", "ba"))
		if err != nil {
			t.Fatalf("CompleteStrvec: %v", err)
		}
		full := comp.Items(CompFull)
		found := false
		for _, it := range full {
			if it.Full == "bar" {
				found = true
			}
		}
		if !found {
			t.Fatalf("completions for [foo ba] = %v, want to include bar", full)
		}
	})
}

func TestShLexParsesQuotedWordsAsOneOuterToken(t *testing.T) {
	t.Parallel()

	g := ShLex("line", Seq("words", Str("a", "foo"), Str("b", "bar baz")))
	root, err := Parse(g, `foo 'bar baz'`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !root.Matches() || root.Len() != 1 {
		t.Fatalf("Matches()=%v Len()=%d, want true, 1 (sh_lex consumes exactly one outer token)", root.Matches(), root.Len())
	}
}

func TestShLexUnterminatedQuoteIsNoMatchNotError(t *testing.T) {
	t.Parallel()

	g := ShLex("line", Str("a", "foo"))
	root, err := Parse(g, `'foo`)
	if err != nil {
		t.Fatalf("Parse returned an error for an unterminated quote, want NoMatch: %v", err)
	}
	if root.Matches() {
		t.Fatalf("sh_lex matched an unterminated quote")
	}
}

func TestIntNodeRangeAndGetValue(t *testing.T) {
	t.Parallel()

	g := Int("n", 0, 100, 10)
	root, err := ParseStrvec(g, FromArray("42"))
	if err != nil {
		t.Fatalf("ParseStrvec: %v", err)
	}
	if !root.Matches() {
		t.Fatalf("int node rejected an in-range value")
	}
	v, err := GetValue(g, "42")
	if err != nil || v != 42 {
		t.Fatalf("GetValue = %d, %v, want 42, nil", v, err)
	}

	root2, err := ParseStrvec(g, FromArray("1000"))
	if err != nil {
		t.Fatalf("ParseStrvec: %v", err)
	}
	if root2.Matches() {
		t.Fatalf("int node accepted an out-of-range value")
	}
}
