package domain

// Tag cloud font size buckets. Sizes scale with relative post count.
const (
	TagCloudMinFontSize = 1
	TagCloudMaxFontSize = 5
)

// TagCloudEntry is one tag of the rendered tag cloud: its identity, how many
// posts carry it, and the font size bucket the rendering layer should use.
type TagCloudEntry struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	PostCount int64  `json:"post_count"`
	FontSize  int    `json:"font_size"`
}
