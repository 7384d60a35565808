package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPurchaseItemSubtotal(t *testing.T) {
	testCases := []struct {
		name      string
		quantity  int
		unitPrice string
		expected  string
	}{
		{"Whole amounts", 3, "10", "30"},
		{"Fractional price", 2, "45.50", "91"},
		{"Single unit", 1, "7.90", "7.90"},
		{"Free item", 5, "0", "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			item := PurchaseItem{
				Quantity:  tc.quantity,
				UnitPrice: decimal.RequireFromString(tc.unitPrice),
			}
			assert.True(t, item.Subtotal().Equal(decimal.RequireFromString(tc.expected)),
				"got %s", item.Subtotal())
		})
	}
}

func TestUserRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleEmployee.Valid())
	assert.False(t, UserRole("superuser").Valid())
	assert.False(t, UserRole("").Valid())
}
