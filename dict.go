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

import "sort"

// Destructor is called when the last reference to a dictionary value is
// released.
type Destructor func(value interface{})

type dictEntry struct {
	value   interface{}
	destroy Destructor
	refs    int32
}

func (e *dictEntry) release() {
	e.refs--
	if e.refs <= 0 && e.destroy != nil {
		e.destroy(e.value)
	}
}

// Dict is a string-keyed attribute dictionary. Values may carry a
// destructor invoked when the last reference is released. Dup shares
// entries by reference count rather than deep-copying values.
type Dict struct {
	entries map[string]*dictEntry
}

// NewDict returns an empty dictionary.
func NewDict() *Dict {
	return &Dict{entries: make(map[string]*dictEntry)}
}

// Set stores value under key, replacing any previous value. If the
// previous value's entry was shared with another Dict (via Dup), this
// Dict's reference is released without disturbing the other holder's
// view; otherwise the destructor runs immediately.
func (d *Dict) Set(key string, value interface{}, destroy Destructor) {
	if d.entries == nil {
		d.entries = make(map[string]*dictEntry)
	}
	if old, ok := d.entries[key]; ok {
		old.release()
	}
	d.entries[key] = &dictEntry{value: value, destroy: destroy, refs: 1}
}

// Get returns the value stored at key and whether it was present.
func (d *Dict) Get(key string) (interface{}, bool) {
	if d == nil || d.entries == nil {
		return nil, false
	}
	e, ok := d.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// HasKey reports whether key is present.
func (d *Dict) HasKey(key string) bool {
	_, ok := d.Get(key)
	return ok
}

// Del removes key, releasing its reference (running the destructor if this
// was the last holder).
func (d *Dict) Del(key string) {
	if d == nil || d.entries == nil {
		return
	}
	if e, ok := d.entries[key]; ok {
		e.release()
		delete(d.entries, key)
	}
}

// Len returns the number of keys.
func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Keys returns the dictionary's keys in sorted order. The dictionary's own
// iteration order is unspecified per spec.md §4.2; sorting here only makes
// test output and Dump deterministic.
func (d *Dict) Keys() []string {
	if d == nil {
		return nil
	}
	keys := make([]string, 0, len(d.entries))
	for k := range d.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Dup returns a logical copy of d sharing all entries by reference count.
func (d *Dict) Dup() *Dict {
	out := NewDict()
	if d == nil {
		return out
	}
	for k, e := range d.entries {
		e.refs++
		out.entries[k] = e
	}
	return out
}

// Free releases d's reference to every entry, running destructors for any
// entry this was the last holder of.
func (d *Dict) Free() {
	if d == nil {
		return
	}
	for _, e := range d.entries {
		e.release()
	}
	d.entries = nil
}
