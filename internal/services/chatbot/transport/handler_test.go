package transport

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"restaurant-chatbot/internal/logger"
	"restaurant-chatbot/internal/messaging"
	"restaurant-chatbot/internal/models"
	"restaurant-chatbot/internal/services/chatbot"
)

type fakeEngine struct {
	reply string
	err   error
	panic bool

	lastCustomerID  string
	lastText        string
	lastDisplayName string
}

func (f *fakeEngine) HandleMessage(ctx context.Context, customerID, rawText, displayName string) (string, error) {
	f.lastCustomerID = customerID
	f.lastText = rawText
	f.lastDisplayName = displayName
	if f.panic {
		panic("boom")
	}
	return f.reply, f.err
}

type fakePublisher struct {
	err     error
	replies []models.OutgoingReply
}

func (f *fakePublisher) PublishReply(ctx context.Context, reply models.OutgoingReply) error {
	if f.err != nil {
		return f.err
	}
	f.replies = append(f.replies, reply)
	return nil
}

func inboundBody(t *testing.T, msg models.IncomingMessage) []byte {
	t.Helper()
	body, err := json.Marshal(msg)
	require.NoError(t, err)
	return body
}

func TestHandleInbound_PublishesReply(t *testing.T) {
	engine := &fakeEngine{reply: "aquí está el menú"}
	publisher := &fakePublisher{}
	handler := NewHandler(engine, publisher, logger.New("transport-test"))

	body := inboundBody(t, models.IncomingMessage{
		CustomerID:  "573001112233",
		Text:        "menú",
		DisplayName: "Ana",
	})

	require.NoError(t, handler.HandleInbound(context.Background(), body))

	require.Equal(t, "573001112233", engine.lastCustomerID)
	require.Equal(t, "menú", engine.lastText)
	require.Equal(t, "Ana", engine.lastDisplayName)

	require.Len(t, publisher.replies, 1)
	require.Equal(t, "573001112233", publisher.replies[0].CustomerID)
	require.Equal(t, "aquí está el menú", publisher.replies[0].Text)
}

func TestHandleInbound_EngineErrorAnswersGenerically(t *testing.T) {
	engine := &fakeEngine{err: errors.New("store unavailable")}
	publisher := &fakePublisher{}
	handler := NewHandler(engine, publisher, logger.New("transport-test"))

	body := inboundBody(t, models.IncomingMessage{CustomerID: "57300", Text: "1, 2"})

	// The turn is answered, not requeued.
	require.NoError(t, handler.HandleInbound(context.Background(), body))
	require.Len(t, publisher.replies, 1)
	require.Equal(t, chatbot.MsgTurnFailed, publisher.replies[0].Text)
}

func TestHandleInbound_PanicIsRecovered(t *testing.T) {
	engine := &fakeEngine{panic: true}
	publisher := &fakePublisher{}
	handler := NewHandler(engine, publisher, logger.New("transport-test"))

	body := inboundBody(t, models.IncomingMessage{CustomerID: "57300", Text: "1"})

	require.NoError(t, handler.HandleInbound(context.Background(), body))
	require.Len(t, publisher.replies, 1)
	require.Equal(t, chatbot.MsgTurnFailed, publisher.replies[0].Text)
}

func TestHandleInbound_MalformedPayload(t *testing.T) {
	handler := NewHandler(&fakeEngine{}, &fakePublisher{}, logger.New("transport-test"))

	err := handler.HandleInbound(context.Background(), []byte("not json"))
	require.ErrorIs(t, err, messaging.ErrMalformedMessage)
}

func TestHandleInbound_MissingCustomerID(t *testing.T) {
	publisher := &fakePublisher{}
	handler := NewHandler(&fakeEngine{}, publisher, logger.New("transport-test"))

	body := inboundBody(t, models.IncomingMessage{Text: "hola"})

	err := handler.HandleInbound(context.Background(), body)
	require.ErrorIs(t, err, messaging.ErrMalformedMessage)
	require.Empty(t, publisher.replies)
}

func TestHandleInbound_PublishFailurePropagates(t *testing.T) {
	engine := &fakeEngine{reply: "ok"}
	publisher := &fakePublisher{err: errors.New("broker gone")}
	handler := NewHandler(engine, publisher, logger.New("transport-test"))

	body := inboundBody(t, models.IncomingMessage{CustomerID: "57300", Text: "menú"})

	err := handler.HandleInbound(context.Background(), body)
	require.Error(t, err)
	require.NotErrorIs(t, err, messaging.ErrMalformedMessage)
}
