package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	f, err := NewFormatter("en-CO")
	require.NoError(t, err)

	tests := []struct {
		amount int64
		want   string
	}{
		{0, "$0"},
		{999, "$999"},
		{8000, "$8,000"},
		{10000, "$10,000"},
		{28000, "$28,000"},
		{1234567, "$1,234,567"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, f.Format(tt.amount))
	}
}

func TestNewFormatter_InvalidLocale(t *testing.T) {
	_, err := NewFormatter("not a locale")
	require.Error(t, err)
}
