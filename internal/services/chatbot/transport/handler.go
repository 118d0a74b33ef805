package transport

import (
	"context"
	"fmt"

	"restaurant-chatbot/internal/logger"
	"restaurant-chatbot/internal/messaging"
	"restaurant-chatbot/internal/metrics"
	"restaurant-chatbot/internal/models"
	"restaurant-chatbot/internal/services/chatbot"
)

// DialogueEngine is the conversation core the handler drives.
type DialogueEngine interface {
	HandleMessage(ctx context.Context, customerID, rawText, displayName string) (string, error)
}

// ReplyPublisher sends the reply back toward the chat gateway.
type ReplyPublisher interface {
	PublishReply(ctx context.Context, reply models.OutgoingReply) error
}

// Handler is the boundary between the broker and the dialogue engine. It
// guarantees that nothing escapes a single turn: a panic or an engine error
// is logged, answered with a generic message, and the conversation state is
// left untouched.
type Handler struct {
	engine  DialogueEngine
	replies ReplyPublisher
	logger  *logger.Logger
}

// NewHandler creates a transport handler.
func NewHandler(engine DialogueEngine, replies ReplyPublisher, log *logger.Logger) *Handler {
	return &Handler{
		engine:  engine,
		replies: replies,
		logger:  log,
	}
}

// HandleInbound implements messaging.MessageHandler for the inbound queue.
func (h *Handler) HandleInbound(ctx context.Context, body []byte) error {
	var msg models.IncomingMessage
	if err := messaging.ParseMessage(body, &msg); err != nil {
		metrics.MessagesProcessed.WithLabelValues(metrics.OutcomeMalformed).Inc()
		h.logger.Error("inbound_decode_failed", "Failed to decode inbound message", "", err, nil)
		return messaging.ErrMalformedMessage
	}
	if msg.CustomerID == "" {
		metrics.MessagesProcessed.WithLabelValues(metrics.OutcomeMalformed).Inc()
		h.logger.Error("inbound_decode_failed", "Inbound message without customer id", "", nil, nil)
		return messaging.ErrMalformedMessage
	}

	requestID := logger.GenerateRequestID()
	h.logger.Debug("message_inbound", "Handling customer message", requestID, map[string]interface{}{
		"customer_id": msg.CustomerID,
		"text_length": len(msg.Text),
	})

	reply, outcome := h.processTurn(ctx, requestID, msg)
	metrics.MessagesProcessed.WithLabelValues(outcome).Inc()

	if err := h.replies.PublishReply(ctx, models.OutgoingReply{
		CustomerID: msg.CustomerID,
		Text:       reply,
	}); err != nil {
		return fmt.Errorf("failed to publish reply: %w", err)
	}

	return nil
}

// processTurn runs one dialogue turn and converts every failure mode into
// reply text.
func (h *Handler) processTurn(ctx context.Context, requestID string, msg models.IncomingMessage) (reply, outcome string) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("turn_panicked", "Recovered panic during turn", requestID,
				fmt.Errorf("panic: %v", r), map[string]interface{}{
					"customer_id": msg.CustomerID,
				})
			reply = chatbot.MsgTurnFailed
			outcome = metrics.OutcomePanic
		}
	}()

	reply, err := h.engine.HandleMessage(ctx, msg.CustomerID, msg.Text, msg.DisplayName)
	if err != nil {
		h.logger.Error("turn_failed", "Dialogue turn failed", requestID, err, map[string]interface{}{
			"customer_id": msg.CustomerID,
		})
		return chatbot.MsgTurnFailed, metrics.OutcomeError
	}

	return reply, metrics.OutcomeOK
}
