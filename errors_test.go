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
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestErrorIsMatchesByKind(t *testing.T) {
	t.Parallel()

	err := wrapError(KindNotFound, nil, "no such type %q", "bogus")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("errors.Is(err, ErrNotFound) = false, want true")
	}
	if errors.Is(err, ErrBadMessage) {
		t.Fatalf("errors.Is(err, ErrBadMessage) = true, want false")
	}
}

func TestLookupNodeTypeNotFoundKind(t *testing.T) {
	t.Parallel()

	_, err := LookupNodeType("does-not-exist")
	if diff := cmp.Diff(ErrNotFound, err, cmpopts.EquateErrors()); diff != "" {
		t.Errorf("LookupNodeType error mismatch (-want +got):\n%s", diff)
	}
}

func TestDuplicateNodeTypeRegistrationIsAlreadyExists(t *testing.T) {
	t.Parallel()

	err := RegisterNodeType(&NodeType{Name: "str"})
	if diff := cmp.Diff(ErrAlreadyExists, err, cmpopts.EquateErrors()); diff != "" {
		t.Errorf("re-registering %q error mismatch (-want +got):\n%s", "str", diff)
	}
}
