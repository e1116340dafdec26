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

package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	entryIndent = 4  // spaces to indent entry lines
	nameWidth   = 30 // Base width for entry name
	kindWidth   = 12 // Width for entry kind
	statusWidth = 12 // Width for status text
)

// 🎯 FormatEntry formats a sync entry for display
func FormatEntry(e Entry) string {
	// Determine prefix symbol
	var prefix string
	switch e.Status {
	case StatusNew:
		prefix = color.GreenString("✓")
	case StatusUpdated:
		prefix = color.YellowString("⟳")
	case StatusSkipped:
		prefix = color.RedString("-")
	default:
		prefix = color.HiBlackString("•")
	}

	// Format parts with padding
	namePart := fmt.Sprintf("%-*s", nameWidth, e.Name)
	kindPart := fmt.Sprintf("%-*s", kindWidth, e.Kind)
	statusPart := fmt.Sprintf("%-*s", statusWidth, e.Status.String())

	// Build final string with indentation
	return fmt.Sprintf("%s%s %s %s %s",
		strings.Repeat(" ", entryIndent),
		prefix,
		namePart,
		kindPart,
		statusPart,
	)
}

// 📈 FormatProgress formats a progress message with percentage
func FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}
