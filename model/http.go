package model

import "github.com/jsphweid/staffnote/note"

type RenderRequestBody struct {
	Notes  []note.Descriptor `json:"notes"`
	Format string            `json:"format,omitempty"`
}

type ErrorResponse struct {
	Error    string   `json:"detail"`
	Problems []string `json:"problems,omitempty"`
}
