package api

import "context"

// ChatMessage is a single turn in a quick-chat conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResponse is the assistant's reply plus any retrieval context the
// server attached.
type ChatResponse struct {
	Message string            `json:"message"`
	Context map[string]string `json:"context,omitempty"`
}

// Chat sends a conversation to the server's chat engine and returns the
// assistant reply.
func (c *Client) Chat(ctx context.Context, messages []ChatMessage) (*ChatResponse, error) {
	payload := struct {
		Messages []ChatMessage `json:"messages"`
	}{Messages: messages}

	var out ChatResponse
	if err := c.postJSON(ctx, "/api/chat/chat", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
