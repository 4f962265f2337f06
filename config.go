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

import "fmt"

// ConfigKind tags the type of value held by a Config.
type ConfigKind int

const (
	ConfigNone ConfigKind = iota
	ConfigBoolKind
	ConfigInt64Kind
	ConfigUint64Kind
	ConfigStringKind
	ConfigNodeKind
	ConfigListKind
	ConfigDictKind
)

func (k ConfigKind) String() string {
	switch k {
	case ConfigNone:
		return "none"
	case ConfigBoolKind:
		return "bool"
	case ConfigInt64Kind:
		return "int64"
	case ConfigUint64Kind:
		return "uint64"
	case ConfigStringKind:
		return "string"
	case ConfigNodeKind:
		return "node"
	case ConfigListKind:
		return "list"
	case ConfigDictKind:
		return "dict"
	default:
		return "unknown"
	}
}

// Config is a tagged-union configuration value, per spec.md §4.3. List and
// dict values own the Config/Node values nested inside them.
type Config struct {
	Kind   ConfigKind
	Bool   bool
	I64    int64
	U64    uint64
	Str    string
	Node   *Node
	List   []*Config
	Dict   map[string]*Config
}

// ConfigBool builds a bool configuration value.
func ConfigBool(v bool) *Config { return &Config{Kind: ConfigBoolKind, Bool: v} }

// ConfigI64 builds a signed integer configuration value.
func ConfigI64(v int64) *Config { return &Config{Kind: ConfigInt64Kind, I64: v} }

// ConfigU64 builds an unsigned integer configuration value.
func ConfigU64(v uint64) *Config { return &Config{Kind: ConfigUint64Kind, U64: v} }

// ConfigString builds a string configuration value.
func ConfigString(v string) *Config { return &Config{Kind: ConfigStringKind, Str: v} }

// ConfigNode builds a node-reference configuration value. It clones n, so
// the returned Config holds its own strong reference independent of
// whatever handle the caller already has on n.
func ConfigNode(n *Node) *Config { return &Config{Kind: ConfigNodeKind, Node: n.Clone()} }

// ConfigListNew builds an empty list configuration value.
func ConfigListNew() *Config { return &Config{Kind: ConfigListKind} }

// ConfigDictNew builds an empty dict configuration value.
func ConfigDictNew() *Config { return &Config{Kind: ConfigDictKind, Dict: map[string]*Config{}} }

// ListAdd appends value to list, consuming it.
func ListAdd(list *Config, value *Config) error {
	if list == nil || list.Kind != ConfigListKind {
		return newError(KindInvalidArgument, "ListAdd: not a list config")
	}
	list.List = append(list.List, value)
	return nil
}

// DictSet stores value under key in dict, consuming it and replacing any
// previous value at that key.
func DictSet(dict *Config, key string, value *Config) error {
	if dict == nil || dict.Kind != ConfigDictKind {
		return newError(KindInvalidArgument, "DictSet: not a dict config")
	}
	if dict.Dict == nil {
		dict.Dict = map[string]*Config{}
	}
	dict.Dict[key] = value
	return nil
}

// DictGet returns the value at key, or an error if absent.
func DictGet(dict *Config, key string) (*Config, error) {
	if dict == nil || dict.Kind != ConfigDictKind {
		return nil, newError(KindInvalidArgument, "DictGet: not a dict config")
	}
	v, ok := dict.Dict[key]
	if !ok {
		return nil, wrapError(KindNotFound, nil, "key %q not present", key)
	}
	return v, nil
}

// Cmp performs a deep-equal comparison, returning 0 when equal.
func (c *Config) Cmp(o *Config) int {
	if c == nil && o == nil {
		return 0
	}
	if c == nil || o == nil {
		return -1
	}
	if c.Kind != o.Kind {
		return int(c.Kind) - int(o.Kind)
	}
	switch c.Kind {
	case ConfigBoolKind:
		if c.Bool == o.Bool {
			return 0
		}
		return 1
	case ConfigInt64Kind:
		return int(c.I64 - o.I64)
	case ConfigUint64Kind:
		if c.U64 == o.U64 {
			return 0
		}
		return 1
	case ConfigStringKind:
		if c.Str == o.Str {
			return 0
		}
		return 1
	case ConfigNodeKind:
		if c.Node == o.Node {
			return 0
		}
		return 1
	case ConfigListKind:
		if len(c.List) != len(o.List) {
			return len(c.List) - len(o.List)
		}
		for i := range c.List {
			if d := c.List[i].Cmp(o.List[i]); d != 0 {
				return d
			}
		}
		return 0
	case ConfigDictKind:
		if len(c.Dict) != len(o.Dict) {
			return len(c.Dict) - len(o.Dict)
		}
		for k, v := range c.Dict {
			ov, ok := o.Dict[k]
			if !ok {
				return 1
			}
			if d := v.Cmp(ov); d != 0 {
				return d
			}
		}
		return 0
	default:
		return 0
	}
}

// Dup deep-clones scalar/string/list/dict values; node references are
// shared-refcount cloned via Node.Clone.
func (c *Config) Dup() *Config {
	if c == nil {
		return nil
	}
	out := &Config{Kind: c.Kind, Bool: c.Bool, I64: c.I64, U64: c.U64, Str: c.Str}
	switch c.Kind {
	case ConfigNodeKind:
		if c.Node != nil {
			out.Node = c.Node.Clone()
		}
	case ConfigListKind:
		out.List = make([]*Config, len(c.List))
		for i, v := range c.List {
			out.List[i] = v.Dup()
		}
	case ConfigDictKind:
		out.Dict = make(map[string]*Config, len(c.Dict))
		for k, v := range c.Dict {
			out.Dict[k] = v.Dup()
		}
	}
	return out
}

// SchemaEntry describes one allowed key of a dict-typed configuration, or
// (with Key == "") the element type of a list-typed configuration.
type SchemaEntry struct {
	Key      string
	Desc     string
	Type     ConfigKind
	Sub      []SchemaEntry // sub-schema, required when Type is list or dict
	Optional bool
}

// Schema is the set of entries a node type's configuration must satisfy.
type Schema []SchemaEntry

// Validate checks cfg against schema: every dict key must be known (and
// every non-optional key present), every list/dict structure must carry
// its declared sub-schema, and each value's Kind must match.
func Validate(schema Schema, cfg *Config) error {
	if cfg == nil {
		return newError(KindInvalidArgument, "nil configuration")
	}
	if cfg.Kind != ConfigDictKind {
		return newError(KindInvalidArgument, "top-level configuration must be a dict")
	}
	known := make(map[string]SchemaEntry, len(schema))
	for _, e := range schema {
		known[e.Key] = e
	}
	for key, val := range cfg.Dict {
		entry, ok := known[key]
		if !ok {
			return newError(KindInvalidArgument, "unknown configuration key %q", key)
		}
		if err := validateEntry(entry, val); err != nil {
			return err
		}
	}
	for _, e := range schema {
		if e.Optional {
			continue
		}
		if _, ok := cfg.Dict[e.Key]; !ok {
			return newError(KindInvalidArgument, "missing required configuration key %q", e.Key)
		}
	}
	return nil
}

func validateEntry(entry SchemaEntry, val *Config) error {
	if val.Kind != entry.Type {
		return newError(KindInvalidArgument, "key %q: expected %s, got %s", entry.Key, entry.Type, val.Kind)
	}
	switch entry.Type {
	case ConfigListKind:
		if len(entry.Sub) != 1 {
			return newError(KindInvalidArgument, "key %q: list schema must declare exactly one element sub-schema", entry.Key)
		}
		for i, item := range val.List {
			if err := validateEntry(entry.Sub[0], item); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
	case ConfigDictKind:
		if len(entry.Sub) == 0 {
			return newError(KindInvalidArgument, "key %q: dict schema must declare a sub-schema", entry.Key)
		}
		if err := Validate(entry.Sub, val); err != nil {
			return err
		}
	}
	return nil
}
