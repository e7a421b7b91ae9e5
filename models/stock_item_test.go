package models

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSKU(t *testing.T) {
	tests := []struct {
		name           string
		category       string
		expectedPrefix string
	}{
		{name: "Phone case category", category: StockCategoryPhoneCase, expectedPrefix: "PHO"},
		{name: "Cable category", category: StockCategoryCable, expectedPrefix: "CAB"},
		{name: "Short category keeps all letters", category: "ab", expectedPrefix: "AB"},
		{name: "Empty category falls back to ITM", category: "", expectedPrefix: "ITM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sku := GenerateSKU(tt.category)

			parts := strings.SplitN(sku, "-", 2)
			assert.Len(t, parts, 2)
			assert.Equal(t, tt.expectedPrefix, parts[0])

			suffix, err := strconv.Atoi(parts[1])
			assert.NoError(t, err)
			assert.GreaterOrEqual(t, suffix, 1000)
			assert.LessOrEqual(t, suffix, 9999)
		})
	}
}

func TestValidStockCategory(t *testing.T) {
	assert.True(t, ValidStockCategory(StockCategoryPhoneCase))
	assert.True(t, ValidStockCategory(StockCategoryOther))
	assert.False(t, ValidStockCategory("snacks"))
	assert.False(t, ValidStockCategory(""))
}
