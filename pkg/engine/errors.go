// Copyright 2025 refx authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package engine

import (
	"gitlab.com/tozd/go/errors"
)

var (
	// ❌ ErrInvalidPattern means the pattern/flags pair does not compile.
	// It aborts the whole operation (batch and group included) with no mutation.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ❌ ErrEmptyPattern means an empty find pattern was submitted.
	// Rejected before compilation, no mutation.
	ErrEmptyPattern = errors.New("empty pattern")

	// ❌ ErrEmptyGroup means a group resolved to zero existing expressions.
	ErrEmptyGroup = errors.New("group has no stored expressions")
)
