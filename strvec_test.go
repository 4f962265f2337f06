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

func TestStrVecAddLenVal(t *testing.T) {
	t.Parallel()

	v := FromArray("foo", "bar", "baz")
	if v.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", v.Len())
	}
	want := []string{"foo", "bar", "baz"}
	if diff := cmp.Diff(want, v.Strings()); diff != "" {
		t.Errorf("Strings() mismatch (-want +got):\n%s", diff)
	}
}

func TestStrVecNDupSharesThenCopiesOnWrite(t *testing.T) {
	t.Parallel()

	v := FromArray("a", "b", "c")
	dup := v.NDup(1, 2)
	if diff := cmp.Diff([]string{"b", "c"}, dup.Strings()); diff != "" {
		t.Fatalf("NDup(1,2) mismatch (-want +got):\n%s", diff)
	}

	if err := dup.Set(0, "B"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if dup.Val(0) != "B" {
		t.Errorf("dup.Val(0) = %q, want B", dup.Val(0))
	}
	if v.Val(1) != "b" {
		t.Errorf("original v.Val(1) = %q, want unchanged b (copy-on-write broken)", v.Val(1))
	}
}

func TestStrVecNDupOutOfRange(t *testing.T) {
	t.Parallel()

	v := FromArray("a", "b")
	if got := v.NDup(1, 5); got != nil {
		t.Errorf("NDup out of range = %v, want nil", got)
	}
}

func TestStrVecCmp(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		a    *StrVec
		b    *StrVec
		want func(cmp int) bool
	}{
		{"equal", FromArray("a", "b"), FromArray("a", "b"), func(c int) bool { return c == 0 }},
		{"less", FromArray("a", "b"), FromArray("a", "c"), func(c int) bool { return c < 0 }},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.a.Cmp(c.b); !c.want(got) {
				t.Errorf("Cmp() = %d, failed predicate for case %q", got, c.name)
			}
		})
	}
}

func TestStrVecDelLast(t *testing.T) {
	t.Parallel()

	v := FromArray("a", "b")
	v.DelLast()
	if diff := cmp.Diff([]string{"a"}, v.Strings()); diff != "" {
		t.Fatalf("after DelLast mismatch (-want +got):\n%s", diff)
	}
	v.DelLast()
	v.DelLast() // no-op on empty
	if v.Len() != 0 {
		t.Fatalf("Len() after draining = %d, want 0", v.Len())
	}
}
