package chatbot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"restaurant-chatbot/internal/models"
	"restaurant-chatbot/internal/pricing"
)

func testFormatter(t *testing.T) *pricing.Formatter {
	t.Helper()
	f, err := pricing.NewFormatter("en-CO")
	require.NoError(t, err)
	return f
}

func TestPresentMenu(t *testing.T) {
	items := []models.MenuItem{
		{ID: "a", Name: "Soup", Price: 10000},
		{ID: "b", Name: "Rice", Price: 8000},
	}

	out := PresentMenu(items, testFormatter(t))

	require.Contains(t, out, "1. Soup - $10,000")
	require.Contains(t, out, "2. Rice - $8,000")
	require.Contains(t, out, "Para hacer un pedido")
	require.Contains(t, out, "notas")

	// Listing preserves input order.
	require.Less(t, strings.Index(out, "1. Soup"), strings.Index(out, "2. Rice"))
}

func TestPresentMenu_Empty(t *testing.T) {
	out := PresentMenu(nil, testFormatter(t))
	require.Equal(t, msgMenuEmpty, out)
}

func TestPresentMenu_Idempotent(t *testing.T) {
	items := []models.MenuItem{
		{ID: "a", Name: "Ajiaco", Price: 18000},
		{ID: "b", Name: "Bandeja Paisa", Price: 25000},
		{ID: "c", Name: "Jugo Natural", Price: 6000},
	}
	f := testFormatter(t)
	require.Equal(t, PresentMenu(items, f), PresentMenu(items, f))
}
