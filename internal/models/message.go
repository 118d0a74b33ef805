package models

// IncomingMessage is a single customer chat message delivered by the
// transport. The transport filters out group chats and self-sent or status
// messages before publishing; the bot only ever sees direct customer text.
type IncomingMessage struct {
	CustomerID  string `json:"customer_id"`
	Text        string `json:"text"`
	DisplayName string `json:"display_name,omitempty"`
}

// OutgoingReply is the bot's answer, routed back to the originating
// conversation by the transport.
type OutgoingReply struct {
	CustomerID string `json:"customer_id"`
	Text       string `json:"text"`
}
