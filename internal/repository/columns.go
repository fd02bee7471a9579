package repository

import (
	"strings"

	"github.com/ignatzorin/collabhub-backend/internal/repository/common"
)

var (
	creatorColumnList = []string{
		"id", "user_id", "username", "display_name", "bio", "niche", "followers_count",
		"engagement_rate", "average_rate", "location", "profile_image_url", "tags", "is_active", "created_at",
	}
	brandColumnList    = []string{"id", "user_id", "company_name", "industry", "description", "website", "logo_url", "created_at"}
	campaignColumnList = []string{"id", "brand_id", "name", "description", "objective", "budget", "status", "created_at", "updated_at"}
	offerColumnList    = []string{
		"id", "campaign_id", "creator_id", "amount", "message", "status",
		"counter_amount", "counter_message", "created_at", "updated_at",
	}
	contractColumnList = []string{
		"id", "offer_id", "final_amount", "terms", "creator_signed", "brand_signed",
		"creator_signed_at", "brand_signed_at", "pdf_url", "created_at",
	}
	paymentColumnList = []string{"id", "contract_id", "amount", "status", "due_date", "paid_at", "created_at"}
	reportColumnList  = []string{
		"id", "contract_id", "reach", "impressions", "engagement", "clicks", "engagement_rate", "roi", "generated_at",
	}
)

// offerDetailsColumns колонки оффера с автором, кампанией и брендом под префиксом prefix.
func offerDetailsColumns(prefix string) string {
	return strings.Join([]string{
		common.SelectAs("o", prefix, offerColumnList),
		common.SelectAs("cr", prefix+"creator.", creatorColumnList),
		common.SelectAs("cp", prefix+"campaign.", campaignColumnList),
		common.SelectAs("b", prefix+"campaign.brand.", brandColumnList),
	}, ", ")
}

// offerDetailsJoins соединяет оффер с автором, кампанией и брендом.
const offerDetailsJoins = `
	JOIN creators cr ON cr.id = o.creator_id
	JOIN campaigns cp ON cp.id = o.campaign_id
	JOIN brands b ON b.id = cp.brand_id
`
