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

func init() {
	must(RegisterNodeType(&NodeType{
		Name: "empty",
		Parse: func(n *Node, pstate *PNode, strvec *StrVec) (int, error) {
			return 0, nil
		},
		Complete: func(n *Node, comp *Comp, strvec *StrVec) error {
			return nil
		},
	}))
}

// Empty builds a node that always matches, consuming zero tokens.
func Empty(id string) *Node {
	n, err := NewNode("empty", id)
	if err != nil {
		panic(err)
	}
	return n
}
