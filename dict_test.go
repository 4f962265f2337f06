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

func TestDictSetGetDel(t *testing.T) {
	t.Parallel()

	d := NewDict()
	d.Set("k", 42, nil)
	v, ok := d.Get("k")
	if !ok || v.(int) != 42 {
		t.Fatalf("Get(k) = %v, %v, want 42, true", v, ok)
	}
	d.Del("k")
	if d.HasKey("k") {
		t.Errorf("HasKey(k) after Del = true, want false")
	}
}

func TestDictDupSharesUntilLastHolderDeletes(t *testing.T) {
	t.Parallel()

	destroyed := 0
	d := NewDict()
	d.Set("k", "v", func(interface{}) { destroyed++ })

	dup := d.Dup()
	d.Del("k")
	if destroyed != 0 {
		t.Fatalf("destructor ran after one of two holders released, want still shared")
	}
	if v, ok := dup.Get("k"); !ok || v.(string) != "v" {
		t.Fatalf("dup.Get(k) = %v, %v, want v, true", v, ok)
	}

	dup.Del("k")
	if destroyed != 1 {
		t.Fatalf("destructor ran %d times after last holder released, want 1", destroyed)
	}
}

func TestDictFreeReleasesAll(t *testing.T) {
	t.Parallel()

	destroyed := 0
	d := NewDict()
	d.Set("a", 1, func(interface{}) { destroyed++ })
	d.Set("b", 2, func(interface{}) { destroyed++ })
	d.Free()
	if destroyed != 2 {
		t.Fatalf("destroyed = %d, want 2", destroyed)
	}
	if d.Len() != 0 {
		t.Fatalf("Len() after Free = %d, want 0", d.Len())
	}
}

func TestDictKeysSorted(t *testing.T) {
	t.Parallel()

	d := NewDict()
	d.Set("z", 1, nil)
	d.Set("a", 2, nil)
	d.Set("m", 3, nil)

	want := []string{"a", "m", "z"}
	if diff := cmp.Diff(want, d.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
}
