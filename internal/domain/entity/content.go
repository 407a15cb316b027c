package entity

import "time"

// Testimonial is a customer quote shown on the marketing pages once published.
type Testimonial struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Position    string    `json:"position"`
	Rating      int       `json:"rating"`
	Content     string    `json:"content"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PageContent is an editable JSON document for one marketing page.
// The shape of Content is owned by the presentation layer.
type PageContent struct {
	ID          int64          `json:"id"`
	PageSlug    string         `json:"pageSlug"`
	Content     map[string]any `json:"content"`
	LastUpdated time.Time      `json:"lastUpdated"`
}

// Clone deep-copies the content document.
func (p PageContent) Clone() PageContent {
	p.Content = CloneDocument(p.Content)
	return p
}

// CloneDocument deep-copies a decoded JSON object.
func CloneDocument(doc map[string]any) map[string]any {
	if doc == nil {
		return nil
	}
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return CloneDocument(x)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return x
	}
}
