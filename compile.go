// Copyright 2026 The svcore Authors
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

package svcore

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/hdlcore/svcore/diag"
	"github.com/hdlcore/svcore/hier"
	"github.com/hdlcore/svcore/parse"
	"github.com/hdlcore/svcore/syntax"
	"github.com/hdlcore/svcore/token"
)

// ParsedFile is one compilation unit's parse result: the syntax tree
// that owns every node reachable from Root, and the diagnostics raised
// while building it. One Tree per file, never shared.
type ParsedFile struct {
	Tree  *syntax.Tree
	Root  *syntax.Node
	Diags *diag.Sink
}

// ParseFile tokenizes src with a fresh Parser and recognizes one
// compilation unit from it.
func ParseFile(src token.Source) *ParsedFile {
	tree := &syntax.Tree{}
	diags := &diag.Sink{}
	p := parse.New(src, diags, tree)
	root := ParseCompilationUnit(p)
	return &ParsedFile{Tree: tree, Root: root, Diags: diags}
}

// NewCompilation is a thin passthrough to hier.NewCompilation, kept
// here so callers of this package's driver never need to import
// package hier directly just to start one.
func NewCompilation(opts hier.Options, binder hier.Binder) *hier.Compilation {
	return hier.NewCompilation(opts, binder)
}

// Elaborate feeds one parsed file's compilation unit into c, merging
// the file's parse diagnostics with those raised during elaboration so
// the combined run reads in source order. The parse diagnostics are
// carried over as-is, arguments and related info included. It is the
// single-file counterpart to CompileFiles.
func Elaborate(c *hier.Compilation, file *ParsedFile) *hier.Symbol {
	start := c.Diagnostics().Len()
	sym := c.ElaborateCompilationUnit(file.Root)
	c.Diagnostics().MergeByOffset(start, file.Diags.Diagnostics())
	return sym
}

// CompileFiles parses every source concurrently, bounded by
// maxParallelism (0 means GOMAXPROCS), then elaborates each resulting
// compilation unit into one shared Compilation in the same order
// sources were given, and finalizes it.
//
// The parallel part builds independent Trees that never touch the
// single-threaded Compilation; elaboration stays sequential.
func CompileFiles(ctx context.Context, sources []token.Source, opts hier.Options, binder hier.Binder, maxParallelism int64) (*hier.Compilation, error) {
	if maxParallelism <= 0 {
		maxParallelism = int64(runtime.GOMAXPROCS(0))
	}
	sem := semaphore.NewWeighted(maxParallelism)

	parsed := make([]*ParsedFile, len(sources))
	var wg sync.WaitGroup
	for i, src := range sources {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		go func(i int, src token.Source) {
			defer wg.Done()
			defer sem.Release(1)
			parsed[i] = ParseFile(src)
		}(i, src)
	}
	wg.Wait()

	c := hier.NewCompilation(opts, binder)
	for _, file := range parsed {
		Elaborate(c, file)
	}
	c.Finalize()
	return c, nil
}
