package chatbot

import (
	"context"
	"fmt"
	"strings"

	"restaurant-chatbot/internal/conversation"
	"restaurant-chatbot/internal/logger"
	"restaurant-chatbot/internal/metrics"
	"restaurant-chatbot/internal/models"
	"restaurant-chatbot/internal/pricing"
)

// fallbackCustomerName labels orders when neither the conversation nor the
// transport supplied a display name.
const fallbackCustomerName = "Cliente"

// menuKeywords trigger the menu listing when contained anywhere in the
// lowercased message.
var menuKeywords = []string{
	"menu", "menú", "carta",
	"que hay", "qué hay", "que tienen", "qué tienen",
	"platos", "opciones",
}

// MenuFetcher supplies the current menu. An empty result means nothing is
// available; fetch failures are the collaborator's to log and swallow.
type MenuFetcher interface {
	GetMenuItems(ctx context.Context) []models.MenuItem
}

// OrderCreator persists a confirmed order and returns its id and total.
type OrderCreator interface {
	CreateOrder(ctx context.Context, customerName string, lines []models.SelectedLine, deliveryAddress string, notes *string) (orderID string, total int64, err error)
}

// Engine is the per-customer dialogue state machine. It interprets one
// message at a time, drives the conversation toward a confirmed order or a
// cancellation, and produces the reply text.
type Engine struct {
	store  conversation.Store
	menu   MenuFetcher
	orders OrderCreator
	prices *pricing.Formatter
	logger *logger.Logger
}

// NewEngine wires the dialogue engine to its collaborators.
func NewEngine(store conversation.Store, menu MenuFetcher, orders OrderCreator, prices *pricing.Formatter, log *logger.Logger) *Engine {
	return &Engine{
		store:  store,
		menu:   menu,
		orders: orders,
		prices: prices,
		logger: log,
	}
}

// HandleMessage processes one inbound customer message and returns the reply
// text. It returns an error only when the conversation store itself fails;
// every user-level problem becomes a reply instead.
func (e *Engine) HandleMessage(ctx context.Context, customerID, rawText, displayName string) (string, error) {
	message := strings.ToLower(strings.TrimSpace(rawText))

	state, err := e.store.GetOrCreate(ctx, customerID)
	if err != nil {
		return "", fmt.Errorf("failed to load conversation: %w", err)
	}

	// Cancellation wins from any phase.
	if message == "cancelar" || message == "salir" {
		if err := e.store.Delete(ctx, customerID); err != nil {
			return "", fmt.Errorf("failed to delete conversation: %w", err)
		}
		return msgCancelled, nil
	}

	if state.Phase == conversation.PhaseAwaitingAddress {
		return e.handleAddress(ctx, customerID, state, rawText, displayName)
	}

	if containsMenuKeyword(message) {
		items := e.menu.GetMenuItems(ctx)
		state.Menu = items
		state.Phase = conversation.PhaseViewingMenu
		if err := e.store.Save(ctx, customerID, state); err != nil {
			return "", fmt.Errorf("failed to save conversation: %w", err)
		}
		return PresentMenu(items, e.prices), nil
	}

	if strings.ContainsAny(message, "0123456789") {
		return e.handleSelection(ctx, customerID, state, message, displayName)
	}

	// Anything else, any phase: explain how to start.
	return msgWelcome, nil
}

// handleSelection resolves a digit-bearing message against the snapshot menu
// and, on success, moves the conversation to the address phase.
func (e *Engine) handleSelection(ctx context.Context, customerID string, state *conversation.State, message, displayName string) (string, error) {
	menuItems := state.Menu
	if len(menuItems) == 0 {
		menuItems = e.menu.GetMenuItems(ctx)
		state.Menu = menuItems
	}

	selection := ParseSelection(message, menuItems)

	if len(selection.Lines) == 0 {
		// Keep the snapshot so a corrected retry resolves against the
		// same positions; the phase stays as it was.
		if err := e.store.Save(ctx, customerID, state); err != nil {
			return "", fmt.Errorf("failed to save conversation: %w", err)
		}
		return msgNoDishesFound, nil
	}

	state.Selected = selection.Lines
	state.Notes = selection.Notes
	if displayName != "" {
		state.CustomerName = &displayName
	}
	state.Phase = conversation.PhaseAwaitingAddress

	if err := e.store.Save(ctx, customerID, state); err != nil {
		return "", fmt.Errorf("failed to save conversation: %w", err)
	}

	return e.selectionSummary(selection), nil
}

// handleAddress treats the raw text as a candidate delivery address and
// finalizes the order. A creation failure discards the conversation: the
// customer restarts from the menu, there is no partial-order recovery.
func (e *Engine) handleAddress(ctx context.Context, customerID string, state *conversation.State, rawText, displayName string) (string, error) {
	address := strings.TrimSpace(rawText)

	if len([]rune(address)) < 5 {
		return msgAddressTooShort, nil
	}

	customerName := fallbackCustomerName
	if state.CustomerName != nil && *state.CustomerName != "" {
		customerName = *state.CustomerName
	} else if displayName != "" {
		customerName = displayName
	}

	orderID, total, err := e.orders.CreateOrder(ctx, customerName, state.Selected, address, state.Notes)
	if err != nil {
		metrics.OrderCreateFailures.Inc()
		e.logger.Error("order_creation_failed", "Failed to create order", "", err, map[string]interface{}{
			"customer_id": customerID,
			"line_count":  len(state.Selected),
		})
		if delErr := e.store.Delete(ctx, customerID); delErr != nil {
			e.logger.Error("conversation_delete_failed", "Failed to delete conversation after order failure", "", delErr, nil)
		}
		return msgOrderFailed, nil
	}

	lines, notes := state.Selected, state.Notes
	if err := e.store.Delete(ctx, customerID); err != nil {
		return "", fmt.Errorf("failed to delete conversation: %w", err)
	}

	metrics.OrdersCreated.Inc()
	e.logger.Info("order_created", "Order confirmed", "", map[string]interface{}{
		"customer_id": customerID,
		"order_id":    orderID,
		"total":       total,
	})

	return e.orderConfirmation(orderID, lines, total, address, notes), nil
}

// selectionSummary builds the order summary that prompts for the delivery
// address.
func (e *Engine) selectionSummary(selection Selection) string {
	var b strings.Builder
	b.WriteString("🛒 Tu pedido:\n\n")

	for _, line := range selection.Lines {
		fmt.Fprintf(&b, "• %s x%d - %s\n", line.Name, line.Quantity, e.prices.Format(line.Subtotal()))
	}

	fmt.Fprintf(&b, "\n💰 Subtotal: %s\n", e.prices.Format(models.TotalPrice(selection.Lines)))

	if selection.Notes != nil {
		fmt.Fprintf(&b, "📝 Notas: %s\n", *selection.Notes)
	}

	b.WriteString("\n📍 Ahora escribe la dirección de entrega:\n")
	b.WriteString("(Escribe \"cancelar\" para cancelar el pedido)")

	return b.String()
}

// orderConfirmation builds the final confirmation message.
func (e *Engine) orderConfirmation(orderID string, lines []models.SelectedLine, total int64, address string, notes *string) string {
	var b strings.Builder
	b.WriteString("✅ ¡PEDIDO CONFIRMADO!\n\n")
	fmt.Fprintf(&b, "📋 Pedido #%s\n\n", orderIDSuffix(orderID))

	for _, line := range lines {
		fmt.Fprintf(&b, "• %s x%d - %s\n", line.Name, line.Quantity, e.prices.Format(line.Subtotal()))
	}

	fmt.Fprintf(&b, "\n💰 Total: %s\n", e.prices.Format(total))
	fmt.Fprintf(&b, "📍 Dirección: %s\n", address)

	if notes != nil {
		fmt.Fprintf(&b, "📝 Notas: %s\n", *notes)
	}

	b.WriteString("\n⏰ Tu pedido está siendo preparado.\n")
	b.WriteString("¡Gracias por tu preferencia! 🙏")

	return b.String()
}

// orderIDSuffix keeps the customer-facing order reference short.
func orderIDSuffix(orderID string) string {
	if len(orderID) <= 6 {
		return orderID
	}
	return orderID[len(orderID)-6:]
}

func containsMenuKeyword(message string) bool {
	for _, keyword := range menuKeywords {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	return false
}
