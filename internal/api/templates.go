package api

import (
	"context"
	"fmt"
)

// Template is a clinical note template as listed by the server.
type Template struct {
	Key   string `json:"template_key"`
	Name  string `json:"template_name"`
	Notes string `json:"notes,omitempty"`
}

// LetterTemplate is a letter-generation template.
type LetterTemplate struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Instructions string `json:"instructions,omitempty"`
}

// Templates lists all clinical note templates.
func (c *Client) Templates(ctx context.Context) ([]Template, error) {
	var templates []Template
	if err := c.getJSON(ctx, "/api/templates", nil, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// SetDefaultTemplate marks the note template with the given key as the
// user's default. Safe to repeat: the server treats this as an upsert.
func (c *Client) SetDefaultTemplate(ctx context.Context, key string) error {
	return c.postJSON(ctx, "/api/templates/default/"+key, nil, nil)
}

// LetterTemplates lists all letter templates.
func (c *Client) LetterTemplates(ctx context.Context) ([]LetterTemplate, error) {
	var templates []LetterTemplate
	if err := c.getJSON(ctx, "/api/letter/templates", nil, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// SetDefaultLetterTemplate marks the letter template with the given ID as
// the user's default.
func (c *Client) SetDefaultLetterTemplate(ctx context.Context, id int) error {
	return c.postJSON(ctx, fmt.Sprintf("/api/letter/templates/default/%d", id), nil, nil)
}
