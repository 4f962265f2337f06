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

import "strconv"

type intPriv struct {
	signed  bool
	min     int64
	max     int64
	umin    uint64
	umax    uint64
	base    int
}

func registerIntType(name string, signed bool) {
	must(RegisterNodeType(&NodeType{
		Name: name,
		Schema: Schema{
			{Key: "min", Desc: "minimum accepted value", Type: ConfigInt64Kind, Optional: true},
			{Key: "max", Desc: "maximum accepted value", Type: ConfigInt64Kind, Optional: true},
			{Key: "base", Desc: "numeric base, 0 means auto-detect", Type: ConfigInt64Kind, Optional: true},
		},
		SetConfig: func(n *Node, cfg *Config) error {
			p := n.priv.(*intPriv)
			p.base = 0
			if v, err := DictGet(cfg, "base"); err == nil {
				p.base = int(v.I64)
			}
			if signed {
				p.min, p.max = minI64Default(), maxI64Default()
				if v, err := DictGet(cfg, "min"); err == nil {
					p.min = v.I64
				}
				if v, err := DictGet(cfg, "max"); err == nil {
					p.max = v.I64
				}
			} else {
				p.umin, p.umax = 0, maxU64Default()
				if v, err := DictGet(cfg, "min"); err == nil {
					p.umin = uint64(v.I64)
				}
				if v, err := DictGet(cfg, "max"); err == nil {
					p.umax = uint64(v.I64)
				}
			}
			return nil
		},
		Parse: func(n *Node, pstate *PNode, strvec *StrVec) (int, error) {
			if strvec.Len() == 0 {
				return NoMatch, nil
			}
			p := n.priv.(*intPriv)
			if signed {
				v, err := strconv.ParseInt(strvec.Val(0), p.base, 64)
				if err != nil {
					return NoMatch, nil
				}
				if v < p.min || v > p.max {
					return NoMatch, nil
				}
			} else {
				v, err := strconv.ParseUint(strvec.Val(0), p.base, 64)
				if err != nil {
					return NoMatch, nil
				}
				if v < p.umin || v > p.umax {
					return NoMatch, nil
				}
			}
			return 1, nil
		},
		Complete: func(n *Node, comp *Comp, strvec *StrVec) error {
			start := ""
			if strvec.Len() > 0 {
				start = strvec.Val(strvec.Len() - 1)
			}
			comp.AddItem(n, CompUnknown, start, start)
			return nil
		},
		InitPriv: func(n *Node) { n.priv = &intPriv{signed: signed, base: 0} },
	}))
}

func init() {
	registerIntType("int", true)
	registerIntType("uint", false)
}

func minI64Default() int64 { return -1 << 63 }
func maxI64Default() int64 { return 1<<63 - 1 }
func maxU64Default() uint64 { return 1<<64 - 1 }

// Int builds a node matching one token parsed as a signed integer in base
// (0 meaning auto-detect), within [min, max].
func Int(id string, min, max int64, base int) *Node {
	n, err := NewNode("int", id)
	if err != nil {
		panic(err)
	}
	cfg := ConfigDictNew()
	_ = DictSet(cfg, "min", ConfigI64(min))
	_ = DictSet(cfg, "max", ConfigI64(max))
	_ = DictSet(cfg, "base", ConfigI64(int64(base)))
	if err := n.SetConfig(cfg); err != nil {
		panic(err)
	}
	return n
}

// Uint builds a node matching one token parsed as an unsigned integer in
// base (0 meaning auto-detect), within [min, max].
func Uint(id string, min, max uint64, base int) *Node {
	n, err := NewNode("uint", id)
	if err != nil {
		panic(err)
	}
	cfg := ConfigDictNew()
	_ = DictSet(cfg, "min", ConfigI64(int64(min)))
	_ = DictSet(cfg, "max", ConfigI64(int64(max)))
	_ = DictSet(cfg, "base", ConfigI64(int64(base)))
	if err := n.SetConfig(cfg); err != nil {
		panic(err)
	}
	return n
}

// GetValue re-parses the matched token's numeric value for caller use,
// the way the original ec_node_int's get_value helper does: the value is
// never stored on the parse tree itself.
func GetValue(n *Node, tok string) (int64, error) {
	p, ok := n.priv.(*intPriv)
	if !ok {
		return 0, newError(KindInvalidArgument, "GetValue: not an int/uint node")
	}
	if p.signed {
		return strconv.ParseInt(tok, p.base, 64)
	}
	v, err := strconv.ParseUint(tok, p.base, 64)
	return int64(v), err
}
