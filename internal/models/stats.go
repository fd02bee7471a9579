package models

import "github.com/shopspring/decimal"

// CreatorStats сводка заработка автора.
type CreatorStats struct {
	TotalEarned       decimal.Decimal `db:"total_earned" json:"total_earned"`
	ThisMonthEarnings decimal.Decimal `db:"this_month_earnings" json:"this_month_earnings"`
	PendingAmount     decimal.Decimal `db:"pending_amount" json:"pending_amount"`
	PendingOffers     int             `db:"pending_offers" json:"pending_offers"`
	ActiveDeals       int             `db:"active_deals" json:"active_deals"`
}

// BrandStats сводка расходов и результатов бренда.
type BrandStats struct {
	TotalSpend      decimal.Decimal `db:"total_spend" json:"total_spend"`
	TotalReach      int64           `db:"total_reach" json:"total_reach"`
	TotalEngagement int64           `db:"total_engagement" json:"total_engagement"`
	AverageROI      decimal.Decimal `db:"average_roi" json:"average_roi"`
	ActiveCampaigns int             `db:"active_campaigns" json:"active_campaigns"`
}
