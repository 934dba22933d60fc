package repo

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`, `[`, `\[`)

// likePattern turns a substring query into a LIKE pattern using '\' as escape.
func likePattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}
