package domain

import "strings"

// ListingStatus — статус объявления в терминах источника данных.
type ListingStatus string

const (
	StatusForSale    ListingStatus = "for_sale"
	StatusPending    ListingStatus = "pending"
	StatusContingent ListingStatus = "contingent"
	StatusSold       ListingStatus = "sold"
	StatusOffMarket  ListingStatus = "off_market"
	StatusWithdrawn  ListingStatus = "withdrawn"
	StatusExpired    ListingStatus = "expired"
)

func (s ListingStatus) String() string {
	return string(s)
}

// NormalizeStatus приводит сырой статус к нижнему регистру без пробелов по краям.
// Источник пишет off-market как "off_market" и как "off market" — обе формы валидны.
func NormalizeStatus(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// IsOffMarketLike сообщает, означает ли статус снятие с продажи.
func IsOffMarketLike(status string) bool {
	switch NormalizeStatus(status) {
	case "off_market", "off market", "withdrawn":
		return true
	}
	return false
}

// IsPendingLike сообщает, находится ли статус в стадии ожидаемой сделки.
func IsPendingLike(status string) bool {
	switch NormalizeStatus(status) {
	case "pending", "contingent":
		return true
	}
	return false
}

// StatusChange — одно изменение статуса из истории объявления.
type StatusChange struct {
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// Market — агрегат по рынку, передаётся вызывающей стороной.
type Market struct {
	// AvgDaysOnMarket — средний срок экспозиции по рынку; nil = использовать дефолт
	AvgDaysOnMarket *float64 `json:"avg_days_on_market"`
}
