package models

import "fmt"

// FindRequest is the body of a find call made over HTTP.
type FindRequest struct {
	Pattern string       `json:"pattern"`
	Options *FindOptions `json:"options,omitempty"`
}

// Validate applies defaults to the request. Any pattern is valid, including the empty one.
func (r *FindRequest) Validate() error {
	if r.Options == nil {
		r.Options = &FindOptions{}
	}
	if r.Options.Limit < 0 {
		return fmt.Errorf("limit cannot be negative")
	}
	return nil
}

// FindResponse is the result of a find call: file:// URIs, exact matches first.
type FindResponse struct {
	Results   []string `json:"results"`
	Total     int      `json:"total"`
	QueryTime int64    `json:"query_time_ms"`
	Pattern   string   `json:"pattern"`
}
