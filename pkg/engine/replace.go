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
)

// 🔧 ReplacementOptions controls escape-sequence post-processing of the
// replacement template.
type ReplacementOptions struct {
	ExpandLineBreak bool // literal `\n` becomes an actual line break
	ExpandTab       bool // literal `\t` becomes an actual tab
}

// 📝 ResolveReplacement resolves escape sequences in a replacement template.
// Line-break expansion runs before tab expansion; the two substitutions do
// not interact. Group references ($0, $1, ${name}) are left untouched — they
// are expanded later by the replace pass itself.
func ResolveReplacement(template string, opts ReplacementOptions) string {
	resolved := template
	if opts.ExpandLineBreak {
		resolved = strings.ReplaceAll(resolved, `\n`, "\n")
	}
	if opts.ExpandTab {
		resolved = strings.ReplaceAll(resolved, `\t`, "\t")
	}
	return resolved
}

// 🔄 replaceAll rewrites text by substituting the resolved template at every
// scanned match, expanding group references per match. Walking the scanner's
// own match list keeps the replacement count equal to the scan count by
// construction, including for zero-length matches.
func replaceAll(text string, re *regexp.Regexp, template string, matches []Match) string {
	buf := make([]byte, 0, len(text))
	last := 0
	for _, m := range matches {
		buf = append(buf, text[last:m.Start]...)
		buf = re.ExpandString(buf, template, text, m.groups)
		last = m.Start + m.Length
	}
	buf = append(buf, text[last:]...)
	return string(buf)
}
