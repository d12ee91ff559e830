package service

import "strings"

// csvSafe keeps spreadsheet apps from reading a cell as a formula.
func csvSafe(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || trimmed == "-" {
		return s
	}
	switch trimmed[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
