package chatbot

import (
	"strconv"
	"strings"
	"unicode"

	"restaurant-chatbot/internal/models"
)

// Selection is the result of parsing one customer message against a menu
// snapshot. Notes is nil when the message carried no usable free text.
type Selection struct {
	Lines []models.SelectedLine
	Notes *string
}

// ParseSelection extracts menu selections and trailing free-text notes from
// a raw message. Two independent passes:
//
// Pass 1 reads every maximal run of decimal digits, left to right, as a
// 1-based index into menu. Repeated indices accumulate quantity; indices
// outside [1, len(menu)] are dropped silently. Lines come out in first-seen
// order and never repeat a menu item id.
//
// Pass 2 starts at the first digit of the message, skips over digits, commas
// and whitespace, and takes the remainder as candidate notes. The candidate
// counts only when its trimmed length exceeds 2 and it contains at least one
// letter. The passes are deliberately independent: digits inside the notes
// text still count as selections ("1 sin sal 2" selects items 1 and 2 and
// keeps "sin sal 2" as notes).
//
// ParseSelection is total: a message without digits yields an empty
// selection, never an error.
func ParseSelection(text string, menu []models.MenuItem) Selection {
	runes := []rune(text)

	var lines []models.SelectedLine
	lineIndex := make(map[string]int)
	firstDigit := -1

	for i := 0; i < len(runes); {
		if !isDigit(runes[i]) {
			i++
			continue
		}
		if firstDigit < 0 {
			firstDigit = i
		}
		j := i
		for j < len(runes) && isDigit(runes[j]) {
			j++
		}
		if n, err := strconv.Atoi(string(runes[i:j])); err == nil && n >= 1 && n <= len(menu) {
			item := menu[n-1]
			if idx, seen := lineIndex[item.ID]; seen {
				lines[idx].Quantity++
			} else {
				lineIndex[item.ID] = len(lines)
				lines = append(lines, models.SelectedLine{
					MenuItemID: item.ID,
					Name:       item.Name,
					Quantity:   1,
					Price:      item.Price,
				})
			}
		}
		i = j
	}

	selection := Selection{Lines: lines}

	if firstDigit >= 0 {
		j := firstDigit
		for j < len(runes) && isSelectionSeparator(runes[j]) {
			j++
		}
		trailing := strings.TrimSpace(string(runes[j:]))
		if len([]rune(trailing)) > 2 && containsLetter(trailing) {
			selection.Notes = &trailing
		}
	}

	return selection
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isSelectionSeparator reports whether r can appear inside the digit-led
// span that precedes the notes text.
func isSelectionSeparator(r rune) bool {
	return isDigit(r) || r == ',' || unicode.IsSpace(r)
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
