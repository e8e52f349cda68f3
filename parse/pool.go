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

package parse

import "sync"

// Pool vends short-lived growable scratch buffers of T; each buffer is
// returned to its pool when the recognizer frame that took it ends.
// A recognizer that needs a scratch []Trivia, []Token, or
// []syntax.TokenOrSyntax gets one from a Pool instead of allocating
// fresh, and must release it on every exit path, including error paths.
//
// A sync.Pool of slice pointers keeps the hot recognizer paths free of
// per-frame allocations without resorting to unsafe small-buffer
// tricks.
type Pool[T any] struct {
	pool sync.Pool
}

// NewPool returns a ready-to-use Pool.
func NewPool[T any]() *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				buf := make([]T, 0, 8)
				return &buf
			},
		},
	}
}

// Get returns a zero-length scratch buffer. Must be paired with Put.
func (p *Pool[T]) Get() *[]T {
	buf := p.pool.Get().(*[]T)
	*buf = (*buf)[:0]
	return buf
}

// Put returns buf to the pool for reuse. Callers must not use buf after
// calling Put; published data must be copied out first, into storage
// whose lifetime matches the tree's.
func (p *Pool[T]) Put(buf *[]T) {
	p.pool.Put(buf)
}

// Publish copies *buf into a freshly allocated, right-sized slice
// suitable for storing in the long-lived tree, then returns buf to the
// pool. This is the one place scratch data crosses into arena-owned
// storage; no published node may reference pool-owned memory.
func Publish[T any](p *Pool[T], buf *[]T) []T {
	out := append([]T(nil), *buf...)
	p.Put(buf)
	return out
}
