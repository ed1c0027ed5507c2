package core

// BadgeColor describes how a category badge is painted.
type BadgeColor struct {
	Class      string // CSS class used by the web templates
	Foreground string // hex, used by terminal renderers
	Background string
}

var categoryColors = map[Category]BadgeColor{
	FoodDining:     {Class: "badge-orange", Foreground: "#9a3412", Background: "#ffedd5"},
	Transportation: {Class: "badge-blue", Foreground: "#1e40af", Background: "#dbeafe"},
	Shopping:       {Class: "badge-purple", Foreground: "#6b21a8", Background: "#f3e8ff"},
	Entertainment:  {Class: "badge-pink", Foreground: "#9d174d", Background: "#fce7f3"},
	BillsUtilities: {Class: "badge-red", Foreground: "#991b1b", Background: "#fee2e2"},
	Education:      {Class: "badge-green", Foreground: "#166534", Background: "#dcfce7"},
	HealthFitness:  {Class: "badge-teal", Foreground: "#115e59", Background: "#ccfbf1"},
	Other:          {Class: "badge-gray", Foreground: "#1f2937", Background: "#f3f4f6"},
}

// CategoryColor looks up the badge color of c, falling back to the Other entry.
func CategoryColor(c Category) BadgeColor {
	if color, ok := categoryColors[c]; ok {
		return color
	}
	return categoryColors[Other]
}
