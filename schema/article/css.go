package article

import (
	"strconv"

	"github.com/shodgson/article-go/model"
)

// Dimensions maps, per kind, the dimension options of a unit to the CSS
// property they are written to. These options never become attributes.
var Dimensions = map[model.Kind]map[string]string{
	HR: {
		"thickness": "border-top-width",
		"length":    "width",
		"height":    "height",
	},
	SPACE: {"width": "width", "height": "height"},
	BLANK: {"width": "width", "height": "height"},
}

// CSSLength turns a bare number into a pixel length. Other values are kept.
func CSSLength(v string) string {
	if _, err := strconv.ParseFloat(v, 64); err == nil && v != "0" {
		return v + "px"
	}
	return v
}
