package models

// Article is the catalog tuple describing the article being read.
type Article struct {
	Title       string  `json:"title" yaml:"title"`
	URL         string  `json:"url" yaml:"url"`
	ItemID      string  `json:"item_id,omitempty" yaml:"item_id,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Time        float64 `json:"time,omitempty" yaml:"time,omitempty"` // unix seconds, 0 when unknown
}

// DisplayTitle falls back to the URL when the catalog has no title.
func (a Article) DisplayTitle() string {
	if a.Title == "" {
		return a.URL
	}
	return a.Title
}
