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
)

// 🎯 Match is a single scanner hit within the scanned text.
type Match struct {
	Start  int    // byte offset of the match within the scanned text
	Length int    // match length in bytes, 0 for a zero-length match
	Text   string // matched text

	// groups holds the absolute submatch index pairs for this match,
	// in the layout regexp.Expand expects.
	groups []int
}

// 🔍 Scan produces the ordered, non-overlapping, leftmost-first sequence of
// matches of re over text. Matching always runs against the full text so
// line anchors and word boundaries keep their context at every position. A
// zero-length match is emitted at most once per position and never directly
// after another match, so the scan terminates in at most len(text)+1 steps.
// Each call is a pure function of (text, re).
func Scan(text string, re *regexp.Regexp) []Match {
	locs := re.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}

	matches := make([]Match, len(locs))
	for i, loc := range locs {
		start, end := loc[0], loc[1]
		matches[i] = Match{
			Start:  start,
			Length: end - start,
			Text:   text[start:end],
			groups: loc,
		}
	}

	return matches
}
