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

func TestNodeCloneIncrementsAndFreeDecrements(t *testing.T) {
	t.Parallel()

	n := Str("t", "t")
	if n.Refs() != 1 {
		t.Fatalf("fresh node Refs() = %d, want 1", n.Refs())
	}

	n.Clone()
	if n.Refs() != 2 {
		t.Fatalf("after Clone, Refs() = %d, want 2", n.Refs())
	}

	if err := Free(n); err != nil {
		t.Fatalf("Free: %v", err)
	}
	if n.Refs() != 1 {
		t.Fatalf("after first Free, Refs() = %d, want 1 (still externally held)", n.Refs())
	}
	if n.Config() == nil {
		t.Fatalf("node destroyed too early: Config() is nil after first Free")
	}

	if err := Free(n); err != nil {
		t.Fatalf("Free: %v", err)
	}
	if n.Config() != nil {
		t.Fatalf("after last Free, Config() is non-nil, want node destroyed")
	}
}

// TestFreeHandlesBypassCycle builds a recursive grammar closed through a
// bypass back-edge (expr -> ... -> not-expr -> expr) and checks that
// releasing the caller's handle on the bypass node collects that node even
// though the cycle's back-edge still holds a reference to it, exercising the
// mark-and-sweep collector's cycle-safety rather than a naive refcount
// decrement that would never see the bypass node's refcount reach zero.
// The other nodes stay alive because the test still holds their handles.
func TestFreeHandlesBypassCycle(t *testing.T) {
	t.Parallel()

	one := Str("one", "1")
	exprBypass := Bypass("expr", one)
	bang := Str("bang", "!")
	notExpr := Seq("not-expr", bang, exprBypass)
	exprOr := Or("expr-or", one, notExpr)
	if err := exprBypass.SetChild(exprOr); err != nil {
		t.Fatalf("SetChild: %v", err)
	}

	root, err := ParseStrvec(exprBypass, FromArray("!", "!", "1"))
	if err != nil {
		t.Fatalf("ParseStrvec: %v", err)
	}
	if !root.Matches() || root.Len() != 3 {
		t.Fatalf("root.Matches()=%v Len()=%d, want true, 3", root.Matches(), root.Len())
	}

	if err := Free(exprBypass); err != nil {
		t.Fatalf("Free on cyclic graph: %v", err)
	}
	if exprBypass.Config() != nil {
		t.Fatalf("bypass node on the cycle not collected: exprBypass.Config() still non-nil")
	}
}

func TestFindLocatesNodeByID(t *testing.T) {
	t.Parallel()

	leaf := Str("needle", "x")
	root := Seq("root", Str("a", "a"), leaf, Str("b", "b"))
	if got := Find(root, "needle"); got != leaf {
		t.Fatalf("Find(root, needle) = %v, want %v", got, leaf)
	}
	if got := Find(root, "missing"); got != nil {
		t.Fatalf("Find(root, missing) = %v, want nil", got)
	}
}
