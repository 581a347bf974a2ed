package telegram

// SendMessageRequest is the payload for Telegram sendMessage API.
// chat_id accepts either an integer id or an @username, so it is sent as a string.
type SendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

// APIResponse is a generic Telegram Bot API response wrapper.
type APIResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}
