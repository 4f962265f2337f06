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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLexStringBasic(t *testing.T) {
	t.Parallel()

	v, missing, err := LexString(`foo  bar baz`, true, false)
	if err != nil {
		t.Fatalf("LexString: %v", err)
	}
	if missing != 0 {
		t.Fatalf("missingQuote = %v, want 0", missing)
	}
	want := []string{"foo", "bar", "baz"}
	if diff := cmp.Diff(want, v.Strings()); diff != "" {
		t.Errorf("Strings() mismatch (-want +got):\n%s", diff)
	}
}

func TestLexStringQuotingAndEscaping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"single-quoted", `'a b' c`, []string{"a b", "c"}},
		{"double-quoted-with-escape", `"a \"b\" c"`, []string{`a "b" c`}},
		{"backslash-escaped-space", `a\ b c`, []string{"a b", "c"}},
		{"bare-comment", `# comment`, []string{}},
		{"trailing-comment", `foo # trailing comment`, []string{"foo"}},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			v, missing, err := LexString(c.in, true, false)
			if err != nil {
				t.Fatalf("LexString(%q): %v", c.in, err)
			}
			if missing != 0 {
				t.Fatalf("LexString(%q): missingQuote = %v, want 0", c.in, missing)
			}
			if diff := cmp.Diff(c.want, v.Strings()); diff != "" {
				t.Errorf("LexString(%q) mismatch (-want +got):\n%s", c.in, diff)
			}
		})
	}
}

func TestLexStringUnterminatedQuoteStrict(t *testing.T) {
	t.Parallel()

	_, _, err := LexString(`foo 'bar`, true, false)
	if err == nil {
		t.Fatal("LexString with unterminated quote in strict mode: want error, got nil")
	}
}

func TestLexStringUnterminatedQuoteLenient(t *testing.T) {
	t.Parallel()

	v, missing, err := LexString(`foo 'bar`, false, false)
	if err != nil {
		t.Fatalf("LexString: %v", err)
	}
	if missing != '\'' {
		t.Fatalf("missingQuote = %q, want '", missing)
	}
	if v.Len() != 2 || v.Val(1) != "bar" {
		t.Fatalf("tokens = %v, want [foo bar]", v.Strings())
	}
}

func TestLexStringKeepTrailingSpace(t *testing.T) {
	t.Parallel()

	t.Run("input ends in space", func(t *testing.T) {
		t.Parallel()

		v, _, err := LexString(`foo `, true, true)
		if err != nil {
			t.Fatalf("LexString: %v", err)
		}
		if v.Len() != 2 || v.Val(1) != "" {
			t.Fatalf("tokens = %v, want [foo \"\"]", v.Strings())
		}
	})

	t.Run("input does not end in space", func(t *testing.T) {
		t.Parallel()

		v, _, err := LexString(`foo`, true, true)
		if err != nil {
			t.Fatalf("LexString: %v", err)
		}
		if v.Len() != 1 {
			t.Fatalf("tokens = %v, want [foo] (no trailing empty token)", v.Strings())
		}
	})
}

func TestLexStringAttrsRecordOffsets(t *testing.T) {
	t.Parallel()

	v, _, err := LexString(`foo bar`, true, false)
	if err != nil {
		t.Fatalf("LexString: %v", err)
	}
	attrs := v.GetAttrs(1)
	start, _ := attrs.Get(AttrStart)
	end, _ := attrs.Get(AttrEnd)
	if start.(int) != 4 || end.(int) != 7 {
		t.Fatalf("bar's offsets = [%v, %v), want [4, 7)", start, end)
	}
}
