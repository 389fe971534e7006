package scaffold

import (
	"strings"
	"text/template"

	"github.com/iancoleman/strcase"
)

// Funcs returns the function set available to path and content templates.
// Every function is a pure string transform, keeping rendering deterministic
// for a fixed variable set.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"snake":          strcase.ToSnake,
		"screamingSnake": strcase.ToScreamingSnake,
		"camel":          strcase.ToCamel,
		"lowerCamel":     strcase.ToLowerCamel,
		"kebab":          strcase.ToKebab,
		"screamingKebab": strcase.ToScreamingKebab,
		"upper":          strings.ToUpper,
		"lower":          strings.ToLower,
	}
}
