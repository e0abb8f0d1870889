package mysql

import "strings"

// stringOrDash keeps non-nullable identity columns from going in blank
func stringOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
