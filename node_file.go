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
	"os"
	"strings"
)

// fileOps indirects the filesystem primitives the file node needs so
// tests can stub directory contents deterministically, per spec.md
// §4.6.16 and the original's ec_node_file_set_ops (five primitives;
// Go's os.Lstat/os.ReadDir cover the original's lstat/opendir/readdir/
// closedir/dirfd+fstatat combination since DT_UNKNOWN fallback is not a
// concern with os.DirEntry, which always resolves the type).
type fileOps struct {
	lstat   func(name string) (os.FileInfo, error)
	readDir func(name string) ([]os.DirEntry, error)
}

var defaultFileOps = fileOps{
	lstat:   os.Lstat,
	readDir: os.ReadDir,
}

type filePriv struct {
	ops fileOps
}

func init() {
	must(RegisterNodeType(&NodeType{
		Name: "file",
		Parse: func(n *Node, pstate *PNode, strvec *StrVec) (int, error) {
			if strvec.Len() == 0 {
				return NoMatch, nil
			}
			return 1, nil
		},
		Complete: func(n *Node, comp *Comp, strvec *StrVec) error {
			return fileComplete(n.priv.(*filePriv).ops, n, comp, strvec)
		},
		InitPriv: func(n *Node) { n.priv = &filePriv{ops: defaultFileOps} },
	}))
}

// File builds a node that matches any single token (the empty string
// included) and offers
// path-aware directory-listing completion.
func File(id string) *Node {
	n, err := NewNode("file", id)
	if err != nil {
		panic(err)
	}
	return n
}

// SetFileOps overrides the filesystem primitives used by a file node's
// completion, for deterministic tests.
func SetFileOps(n *Node, lstat func(string) (os.FileInfo, error), readDir func(string) ([]os.DirEntry, error)) {
	n.priv.(*filePriv).ops = fileOps{lstat: lstat, readDir: readDir}
}

// splitPath mirrors the original's split_path: it always returns a
// substring of path for dirname (including a trailing slash, or empty)
// and basename, never modifying or assuming normalization.
func splitPath(path string) (dirname, basename string) {
	idx := strings.LastIndexByte(path, '/')
	if idx < 0 {
		return "", path
	}
	return path[:idx+1], path[idx+1:]
}

func fileComplete(ops fileOps, node *Node, comp *Comp, strvec *StrVec) error {
	if strvec.Len() != 1 {
		return nil
	}
	input := strvec.Val(0)
	dname, bname := splitPath(input)

	effectiveDir := dname
	if effectiveDir == "" {
		effectiveDir = "."
	}

	st, err := ops.lstat(effectiveDir)
	if err != nil || !st.IsDir() {
		return nil
	}

	entries, err := ops.readDir(effectiveDir)
	if err != nil {
		return nil
	}

	for _, de := range entries {
		name := de.Name()
		if !strings.HasPrefix(name, bname) {
			continue
		}
		if len(bname) == 0 || bname[0] != '.' {
			if strings.HasPrefix(name, ".") {
				continue
			}
		}

		isDir := de.IsDir()
		suffix := name[len(bname):]
		if isDir {
			comp.AddItem(node, CompPartial, input, input+suffix+"/").Display = name + "/"
		} else {
			comp.AddItem(node, CompFull, input, input+suffix).Display = name
		}
	}
	return nil
}
