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

// Package svcore is the public driver tying the parser base (package
// parse), the syntax tree (package syntax), and the hierarchy model
// (package hier) together: parse a compilation unit's tokens into a
// syntax.Node tree, elaborate one or many such trees into one
// hier.Compilation, and do so for several independent files with a
// bounded amount of parallelism.
//
// There is no import graph to resolve (nothing here models
// SystemVerilog's `include`/package-import resolution), so
// CompileFiles only needs to bound parallel parsing before elaborating
// sequentially into a single Compilation.
package svcore
