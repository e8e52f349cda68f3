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

// Package diag is the diagnostics sink consumed by the parser base and
// the elaborator.
//
// It deliberately stops at the data model: an append-only collection of
// {code, location, arguments} records. Rendering those records to a
// terminal or editor is a presentation concern that belongs to whatever
// tool embeds the front-end, not to this package.
package diag

import "github.com/hdlcore/svcore/token"

// Code is a closed taxonomy of diagnostic kinds.
type Code string

const (
	CodeExpectedToken              Code = "expected-token"
	CodeSkippedTokens              Code = "skipped-tokens"
	CodeUnknownName                Code = "unknown-name"
	CodeDuplicateDeclaration       Code = "duplicate-declaration"
	CodeConstantEvaluationFailure  Code = "constant-evaluation-failure"
	CodeIterationCapExceeded       Code = "iteration-cap-exceeded"
	CodeInternalInvariantViolation Code = "internal-invariant-violation"
)

// Diagnostic is a single {code, location, arguments} record. Sink.Errorf
// returns a pointer to the stored value so callers can attach further
// context after the fact.
type Diagnostic struct {
	Code     Code
	Location token.Location
	Message  string
	Args     []any

	// Related holds auxiliary locations a caller attached after the
	// fact, e.g. "first declared here" for a duplicate-declaration
	// diagnostic.
	Related []RelatedInfo
}

// RelatedInfo is a secondary location attached to a Diagnostic to give it
// more context, e.g. pointing at the first of two conflicting
// declarations.
type RelatedInfo struct {
	Location token.Location
	Message  string
}

// Note appends related context to this diagnostic and returns it, for
// chaining off of Sink.Errorf's result.
func (d *Diagnostic) Note(loc token.Location, message string) *Diagnostic {
	d.Related = append(d.Related, RelatedInfo{Location: loc, Message: message})
	return d
}

// Sink is an append-only collection of diagnostics.
type Sink struct {
	diagnostics []*Diagnostic
}

// Errorf records a new diagnostic and returns a mutable reference to it.
func (s *Sink) Errorf(code Code, loc token.Location, format string, args ...any) *Diagnostic {
	d := &Diagnostic{Code: code, Location: loc, Message: format, Args: args}
	s.diagnostics = append(s.diagnostics, d)
	return d
}

// MergeByOffset merges ds into the diagnostics recorded at index start
// or later, ordering the combined tail by source offset; at equal
// offsets the entries of ds come first. Entries before start are left
// untouched, and the merged diagnostics are shared, not copied, so
// their codes, arguments, and related info survive intact.
//
// Used when two sinks that each observed one input in source order
// (say, a parse pass and an elaboration pass) are combined into one
// run that should still read in source order.
func (s *Sink) MergeByOffset(start int, ds []*Diagnostic) {
	if start < 0 || start > len(s.diagnostics) {
		start = len(s.diagnostics)
	}
	tail := s.diagnostics[start:]
	merged := make([]*Diagnostic, 0, len(tail)+len(ds))
	i, j := 0, 0
	for i < len(ds) && j < len(tail) {
		if ds[i].Location.Offset <= tail[j].Location.Offset {
			merged = append(merged, ds[i])
			i++
		} else {
			merged = append(merged, tail[j])
			j++
		}
	}
	merged = append(merged, ds[i:]...)
	merged = append(merged, tail[j:]...)
	s.diagnostics = append(s.diagnostics[:start], merged...)
}

// Diagnostics returns every diagnostic recorded so far, in the order they
// were reported.
func (s *Sink) Diagnostics() []*Diagnostic {
	return s.diagnostics
}

// Len returns the number of diagnostics recorded so far.
func (s *Sink) Len() int {
	return len(s.diagnostics)
}

// HasCode reports whether any recorded diagnostic has the given code.
func (s *Sink) HasCode(code Code) bool {
	for _, d := range s.diagnostics {
		if d.Code == code {
			return true
		}
	}
	return false
}
