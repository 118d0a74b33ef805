package chatbot

import (
	"fmt"
	"strings"

	"restaurant-chatbot/internal/models"
	"restaurant-chatbot/internal/pricing"
)

// PresentMenu renders the menu as a 1-indexed numbered listing followed by
// ordering instructions. The numbering is positional: entry n refers to
// items[n-1], so the caller must snapshot the exact slice it presented and
// parse later selections against that snapshot.
func PresentMenu(items []models.MenuItem, prices *pricing.Formatter) string {
	if len(items) == 0 {
		return msgMenuEmpty
	}

	var b strings.Builder
	b.WriteString("🍽️ MENÚ DEL DÍA\n\n")

	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, item.Name, prices.Format(item.Price))
	}

	b.WriteString("\n📝 Para hacer un pedido:\n")
	b.WriteString("Escribe los números de los platos que deseas.\n")
	b.WriteString("Ejemplo: 1, 3 o 2\n\n")
	b.WriteString("💬 También puedes agregar notas como:\n")
	b.WriteString("\"1, 2 sin sopa y ensalada aparte\"")

	return b.String()
}
