package utils

import (
	"fmt"
	"strings"
)

// Display path separators.
const (
	SeparatorSlash     = "slash"
	SeparatorBackslash = "backslash"
)

const backslashCharacter = "\\"

// SeparatorCharacter maps a separator name to the character written into headings.
// An empty name selects SeparatorSlash.
func SeparatorCharacter(separatorName string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(separatorName)) {
	case "", SeparatorSlash:
		return pathSegmentSeparator, nil
	case SeparatorBackslash:
		return backslashCharacter, nil
	default:
		return "", fmt.Errorf("unsupported separator %q (want %s or %s)", separatorName, SeparatorSlash, SeparatorBackslash)
	}
}

// DisplayPath renders relativePath for a document heading. A file directly under
// the root is shown by name; deeper files have their segments joined by separator
// regardless of the host platform.
func DisplayPath(relativePath string, separator string) string {
	segments := splitSegments(relativePath)
	if len(segments) == 0 {
		return ""
	}
	if separator == "" {
		separator = pathSegmentSeparator
	}
	return strings.Join(segments, separator)
}
