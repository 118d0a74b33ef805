package chatbot

import (
	"testing"

	"github.com/stretchr/testify/require"

	"restaurant-chatbot/internal/models"
)

func testMenu() []models.MenuItem {
	return []models.MenuItem{
		{ID: "a", Name: "Soup", Price: 10000},
		{ID: "b", Name: "Rice", Price: 8000},
		{ID: "c", Name: "Juice", Price: 6000},
	}
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantLines []models.SelectedLine
		wantNotes string
		noNotes   bool
	}{
		{
			name: "single item",
			text: "1",
			wantLines: []models.SelectedLine{
				{MenuItemID: "a", Name: "Soup", Quantity: 1, Price: 10000},
			},
			noNotes: true,
		},
		{
			name: "repeated references accumulate quantity",
			text: "1, 1, 2",
			wantLines: []models.SelectedLine{
				{MenuItemID: "a", Name: "Soup", Quantity: 2, Price: 10000},
				{MenuItemID: "b", Name: "Rice", Quantity: 1, Price: 8000},
			},
			noNotes: true,
		},
		{
			name: "selection with trailing notes",
			text: "1, 1, 2 sin sal",
			wantLines: []models.SelectedLine{
				{MenuItemID: "a", Name: "Soup", Quantity: 2, Price: 10000},
				{MenuItemID: "b", Name: "Rice", Quantity: 1, Price: 8000},
			},
			wantNotes: "sin sal",
		},
		{
			name: "accented notes",
			text: "3 con ají extra",
			wantLines: []models.SelectedLine{
				{MenuItemID: "c", Name: "Juice", Quantity: 1, Price: 6000},
			},
			wantNotes: "con ají extra",
		},
		{
			name: "out of range indices dropped silently",
			text: "0, 1, 99",
			wantLines: []models.SelectedLine{
				{MenuItemID: "a", Name: "Soup", Quantity: 1, Price: 10000},
			},
			noNotes: true,
		},
		{
			name:      "only out of range indices",
			text:      "0, 99",
			wantLines: nil,
			noNotes:   true,
		},
		{
			name:      "no digits at all",
			text:      "hola buenas tardes",
			wantLines: nil,
			noNotes:   true,
		},
		{
			name: "first seen order preserved",
			text: "2, 1, 2",
			wantLines: []models.SelectedLine{
				{MenuItemID: "b", Name: "Rice", Quantity: 2, Price: 8000},
				{MenuItemID: "a", Name: "Soup", Quantity: 1, Price: 10000},
			},
			noNotes: true,
		},
		{
			name: "digits after prose still count as selections",
			text: "sin sal 2",
			wantLines: []models.SelectedLine{
				{MenuItemID: "b", Name: "Rice", Quantity: 1, Price: 8000},
			},
			// The digit-led span starts at the trailing "2"; nothing
			// follows it, so there are no notes.
			noNotes: true,
		},
		{
			name: "notes may themselves contain digits",
			text: "1 sin sal 2",
			wantLines: []models.SelectedLine{
				{MenuItemID: "a", Name: "Soup", Quantity: 1, Price: 10000},
				{MenuItemID: "b", Name: "Rice", Quantity: 1, Price: 8000},
			},
			wantNotes: "sin sal 2",
		},
		{
			name: "short trailing text is not notes",
			text: "1 ok",
			wantLines: []models.SelectedLine{
				{MenuItemID: "a", Name: "Soup", Quantity: 1, Price: 10000},
			},
			noNotes: true,
		},
		{
			name: "trailing text without letters is not notes",
			text: "1 !!!!",
			wantLines: []models.SelectedLine{
				{MenuItemID: "a", Name: "Soup", Quantity: 1, Price: 10000},
			},
			noNotes: true,
		},
		{
			name: "notes glued to the number",
			text: "1abc",
			wantLines: []models.SelectedLine{
				{MenuItemID: "a", Name: "Soup", Quantity: 1, Price: 10000},
			},
			wantNotes: "abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSelection(tt.text, testMenu())
			require.Equal(t, tt.wantLines, got.Lines)
			if tt.noNotes {
				require.Nil(t, got.Notes)
			} else {
				require.NotNil(t, got.Notes)
				require.Equal(t, tt.wantNotes, *got.Notes)
			}
		})
	}
}

func TestParseSelection_EmptyMenu(t *testing.T) {
	got := ParseSelection("1, 2, 3", nil)
	require.Empty(t, got.Lines)
	require.Nil(t, got.Notes)
}

func TestParseSelection_NoDuplicateLineIDs(t *testing.T) {
	got := ParseSelection("1 2 1 3 2 1", testMenu())
	seen := make(map[string]bool)
	for _, line := range got.Lines {
		require.False(t, seen[line.MenuItemID], "duplicate line for %s", line.MenuItemID)
		seen[line.MenuItemID] = true
		require.GreaterOrEqual(t, line.Quantity, 1)
	}
	require.Len(t, got.Lines, 3)
	require.Equal(t, 3, got.Lines[0].Quantity)
}
