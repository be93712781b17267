package widgets

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultColorPalette is the fixed palette default summary cards cycle
// through.
var DefaultColorPalette = []string{
	"red", "orange", "yellow", "green", "blue", "indigo", "violet",
}

// DefaultIconCatalog is the fixed icon set default summary cards cycle
// through.
var DefaultIconCatalog = []string{
	"activity", "bar-chart", "database", "layers", "pie-chart",
	"shopping-cart", "tag", "users", "zap",
}

// cycleEntry picks the rotation entry for index i. The modulus is one less
// than the list length: the final entry is intentionally excluded from
// rotation, and existing dashboards depend on these exact assignments.
func cycleEntry(list []string, i int) string {
	return list[i%(len(list)-1)]
}

// humanizeEntityName renders an entity name as a display title:
// "user_profiles" becomes "User Profiles".
// A fresh caser per call: cases.Caser is not safe for concurrent use.
func humanizeEntityName(name string) string {
	cleaned := strings.NewReplacer("_", " ", "-", " ").Replace(name)
	return cases.Title(language.English).String(cleaned)
}
