package component

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Name labels an entity.
type Name struct {
	Value string `yaml:"value"`
}

// Display returns the name title-cased for log output.
func (n Name) Display() string {
	return cases.Title(language.English).String(n.Value)
}
