package validate

import (
	"fmt"
	"strings"
)

// Report renders the validation outcome of a configuration file as a
// human-readable document, suitable for terminal output.
func Report(path string) string {
	valid, errs := File(path)

	var sb strings.Builder
	sb.WriteString("Configuration validation report\n")
	sb.WriteString(fmt.Sprintf("File: %s\n", path))
	if valid {
		sb.WriteString("Status: valid\n\nAll checks passed.\n")
		return sb.String()
	}

	sb.WriteString("Status: invalid\n\n")
	sb.WriteString(fmt.Sprintf("Found %d problem(s):\n", len(errs)))
	for i, msg := range errs {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, msg))
	}
	return sb.String()
}
