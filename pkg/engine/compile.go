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
	"regexp"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🎯 AssembleFlags builds the flag string for a scan. Every scan is global
// and multiline; case-insensitive is appended only when configured.
func AssembleFlags(caseInsensitive bool) string {
	if caseInsensitive {
		return "gmi"
	}
	return "gm"
}

// 🔧 Compile validates and compiles a pattern+flags pair into a matcher.
// Global scanning ("g") is implicit in how the scanner iterates, so the flag
// is accepted and dropped. Unknown flags and malformed patterns fail with
// ErrInvalidPattern. No side effects.
func Compile(pattern, flags string) (*regexp.Regexp, error) {
	var inline strings.Builder
	for _, f := range flags {
		switch f {
		case 'g':
			// global scan is the scanner's job, not the matcher's
		case 'm':
			inline.WriteRune('m')
		case 'i':
			inline.WriteRune('i')
		case 's':
			inline.WriteRune('s')
		default:
			return nil, errors.Errorf("%w: unknown flag %q", ErrInvalidPattern, string(f))
		}
	}

	src := pattern
	if inline.Len() > 0 {
		src = "(?" + inline.String() + ")" + pattern
	}

	re, err := regexp.Compile(src)
	if err != nil {
		return nil, errors.Errorf("%w: %v", ErrInvalidPattern, err)
	}

	return re, nil
}
