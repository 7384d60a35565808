package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Overview carries the dashboard figures.
type Overview struct {
	TotalProducts   int64           `json:"total_products"`
	TotalSuppliers  int64           `json:"total_suppliers"`
	TotalCategories int64           `json:"total_categories"`
	TotalPurchases  int64           `json:"total_purchases"`
	TotalSpend      decimal.Decimal `json:"total_spend"`
}

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// GetOverview collects entity counts and the sum of all purchase totals.
func (r *StatsRepository) GetOverview() (*Overview, error) {
	var overview Overview

	if err := r.db.Model(&Product{}).Count(&overview.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&Supplier{}).Count(&overview.TotalSuppliers).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&Category{}).Count(&overview.TotalCategories).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&Purchase{}).Count(&overview.TotalPurchases).Error; err != nil {
		return nil, err
	}

	var spend decimal.NullDecimal
	if err := r.db.Model(&Purchase{}).
		Select("COALESCE(SUM(total), 0)").
		Scan(&spend).Error; err != nil {
		return nil, err
	}
	if spend.Valid {
		overview.TotalSpend = spend.Decimal
	}

	return &overview, nil
}

// GetLowStock returns products at or below the threshold, most starved
// first.
func (r *StatsRepository) GetLowStock(threshold int) ([]Product, error) {
	var products []Product
	if err := r.db.
		Where("stock <= ?", threshold).
		Order("stock ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetRecentPurchases returns the latest n purchase headers with their
// supplier and user expanded.
func (r *StatsRepository) GetRecentPurchases(n int) ([]Purchase, error) {
	var purchases []Purchase
	if err := r.db.
		Preload("Supplier").
		Preload("User").
		Order("created_at DESC").
		Limit(n).
		Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}
