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
	"sort"
	"sync"
)

// NodeType is the vtable every grammar node kind implements, per
// spec.md §3/§4.4.
type NodeType struct {
	// Name is the type's registered name, used for lookup and as the
	// default description of generic nodes.
	Name string
	// Schema describes the configuration this type accepts. Nil means
	// the type takes no configuration.
	Schema Schema
	// SetConfig applies a validated configuration to the node's private
	// area. Called only after the configuration has passed Schema
	// validation.
	SetConfig func(n *Node, cfg *Config) error
	// Parse matches strvec against n, returning a non-negative count of
	// consumed tokens or NoMatch; failures are reported as a non-nil error.
	Parse func(n *Node, pstate *PNode, strvec *StrVec) (int, error)
	// Complete enumerates continuations of strvec into comp. Nil means
	// this type falls back to emitting a single "unknown" item
	// (spec.md §4.8).
	Complete func(n *Node, comp *Comp, strvec *StrVec) error
	// Desc returns a one-line human-readable description. Nil means the
	// type name is used.
	Desc func(n *Node) string
	// ChildrenCount and GetChild expose the node's children for
	// traversal and for the cycle-safe Free algorithm. GetChild reports
	// how many of the node's own references are attributable to this
	// child edge (typically 1, sometimes 2).
	ChildrenCount func(n *Node) int
	GetChild      func(n *Node, i int) (child *Node, refs int, ok bool)
	// InitPriv initializes the node's private area right after
	// allocation. FreePriv tears it down, releasing any owned child
	// references, during the sweep phase of Free.
	InitPriv func(n *Node)
	FreePriv func(n *Node)
}

var registry = struct {
	sync.Mutex
	types map[string]*NodeType
	order []string
}{types: make(map[string]*NodeType)}

// RegisterNodeType registers a node type under its Name. Registration is
// not safe after Init has run (spec.md §5); it is intended to happen from
// package-level init() functions.
func RegisterNodeType(t *NodeType) error {
	registry.Lock()
	defer registry.Unlock()
	if initDone {
		return wrapError(KindBusy, nil, "cannot register node type %q after Init", t.Name)
	}
	if _, exists := registry.types[t.Name]; exists {
		return wrapError(KindAlreadyExists, nil, "node type %q already registered", t.Name)
	}
	registry.types[t.Name] = t
	registry.order = append(registry.order, t.Name)
	return nil
}

// LookupNodeType returns the node type registered under name.
func LookupNodeType(name string) (*NodeType, error) {
	registry.Lock()
	defer registry.Unlock()
	t, ok := registry.types[name]
	if !ok {
		return nil, wrapError(KindNotFound, nil, "no node type registered as %q", name)
	}
	return t, nil
}

// RegisteredTypeNames returns node type names in registration order.
func RegisteredTypeNames() []string {
	registry.Lock()
	defer registry.Unlock()
	out := make([]string, len(registry.order))
	copy(out, registry.order)
	return out
}

type initHook struct {
	priority int
	fn       func() error
}

var (
	hooksMu  sync.Mutex
	inits    []initHook
	exits    []initHook
	initDone bool
)

// RegisterInit registers an init hook run by Init in ascending priority
// order, and an exit hook run by Exit in descending priority order.
func RegisterInit(priority int, initFn, exitFn func() error) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if initFn != nil {
		inits = append(inits, initHook{priority: priority, fn: initFn})
	}
	if exitFn != nil {
		exits = append(exits, initHook{priority: priority, fn: exitFn})
	}
}

// Init finalizes process-wide state and runs registered init hooks in
// ascending priority order. Registering new node types after Init returns
// KindBusy; RegisterInit does not check whether Init has run.
func Init() error {
	hooksMu.Lock()
	sort.SliceStable(inits, func(i, j int) bool { return inits[i].priority < inits[j].priority })
	hooks := append([]initHook(nil), inits...)
	hooksMu.Unlock()

	for _, h := range hooks {
		if err := h.fn(); err != nil {
			return err
		}
	}

	registry.Lock()
	initDone = true
	registry.Unlock()
	return nil
}

// Exit runs registered exit hooks in descending priority order.
func Exit() error {
	hooksMu.Lock()
	sort.SliceStable(exits, func(i, j int) bool { return exits[i].priority > exits[j].priority })
	hooks := append([]initHook(nil), exits...)
	hooksMu.Unlock()

	for _, h := range hooks {
		if err := h.fn(); err != nil {
			return err
		}
	}
	return nil
}
