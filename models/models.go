package models

// AllModels returns all model structs for auto-migration
// IMPORTANT: Order matters! Parent tables must be created before child tables
func AllModels() []interface{} {
	return []interface{}{
		// 1. Independent tables (no foreign keys)
		&User{},
		&Supplier{},
		&Category{},

		// 2. Tables referencing the above
		&Product{},  // category_id, supplier_id
		&Purchase{}, // user_id, supplier_id

		// 3. Detail tables
		&PurchaseItem{}, // purchase_id, product_id
	}
}
