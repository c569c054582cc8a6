package metadata

import (
	"bytes"
	"encoding/json"
)

// SearchDoc is one document from /search.json, limited to the projected fields.
type SearchDoc struct {
	Key                 string   `json:"key"`
	Title               string   `json:"title"`
	AuthorName          []string `json:"author_name"`
	FirstPublishYear    *int     `json:"first_publish_year"`
	ISBN                []string `json:"isbn"`
	Subject             []string `json:"subject"`
	CoverI              *int     `json:"cover_i"`
	Publisher           []string `json:"publisher"`
	NumberOfPagesMedian *int     `json:"number_of_pages_median"`
}

type searchResponse struct {
	NumFound int         `json:"numFound"`
	Docs     []SearchDoc `json:"docs"`
}

// WorkDetail is the subset of /works/{key}.json the normalizer reads.
type WorkDetail struct {
	Key         string    `json:"key"`
	Title       string    `json:"title"`
	Description TextValue `json:"description"`
	Subjects    []string  `json:"subjects"`
	Covers      []int     `json:"covers"`
}

// EditionDetail is the subset of /books/{key}.json exposed by GetEditionDetail.
type EditionDetail struct {
	Key           string   `json:"key"`
	Title         string   `json:"title"`
	Publishers    []string `json:"publishers"`
	PublishDate   string   `json:"publish_date"`
	ISBN10        []string `json:"isbn_10"`
	ISBN13        []string `json:"isbn_13"`
	NumberOfPages *int     `json:"number_of_pages"`
	Works         []keyRef `json:"works"`
}

type keyRef struct {
	Key string `json:"key"`
}

// TextValue holds a text field that the API returns either as a plain
// string or as {"type": "/type/text", "value": "..."}.
// Any other shape decodes as absent instead of failing the document.
type TextValue struct {
	Value string
	Valid bool
}

func (t *TextValue) UnmarshalJSON(data []byte) error {
	*t = TextValue{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			*t = TextValue{Value: s, Valid: true}
		}
	case '{':
		var wrapped struct {
			Value *string `json:"value"`
		}
		if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Value != nil {
			*t = TextValue{Value: *wrapped.Value, Valid: true}
		}
	}
	return nil
}

func (t TextValue) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.Value)
}

// Ptr returns the value as an optional string.
func (t TextValue) Ptr() *string {
	if !t.Valid {
		return nil
	}
	v := t.Value
	return &v
}
