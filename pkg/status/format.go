package status

import (
	"fmt"
)

// FileFormatter defines how patch outcomes and errors are phrased
type FileFormatter interface {
	// FormatOutcome formats the one-line summary of a patched file
	FormatOutcome(info FileInfo) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatOutcome formats a file outcome as a sentence
func (f *DefaultFileFormatter) FormatOutcome(info FileInfo) string {
	switch {
	case info.Error != nil:
		return fmt.Sprintf("Failed to patch %s: %v", info.Path, info.Error)
	case info.Status == StatusModified:
		return fmt.Sprintf("Patched %s (%s)", info.Path, plural(info.Replacements, "replacement"))
	case info.Status == StatusPending:
		return fmt.Sprintf("Would patch %s (%s)", info.Path, plural(info.Replacements, "replacement"))
	default:
		return fmt.Sprintf("%s is already up to date", info.Path)
	}
}

// FormatError formats an error message with emoji
func (f *DefaultFileFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
