package sorting

import (
	"fmt"

	"listing_scout/internal/domain"
)

// BestDeals возвращает лучшие предложения по критерию. Для price_discount
// лучшее — самое отрицательное (глубже всего ниже оценки), для остальных
// критериев лучшее — меньшее значение, поэтому сортировка всегда по
// возрастанию.
func BestDeals(batch []domain.Record, criteria string, limit int) ([]domain.Record, error) {
	const op = "sorting.BestDeals"

	if criteria == "" {
		criteria = "price_discount"
	}
	sorted, err := Sort(batch, []string{criteria}, []string{"asc"}, NullsLast)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return head(sorted, limit), nil
}

// NewestListings возвращает самые свежие объявления по дате листинга.
func NewestListings(batch []domain.Record, limit int) ([]domain.Record, error) {
	const op = "sorting.NewestListings"

	sorted, err := Sort(batch, []string{"list_date"}, []string{"desc"}, NullsLast)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return head(sorted, limit), nil
}

// RecentlyUpdated возвращает недавно обновлённые записи.
func RecentlyUpdated(batch []domain.Record, limit int) ([]domain.Record, error) {
	const op = "sorting.RecentlyUpdated"

	sorted, err := Sort(batch, []string{"last_update_date"}, []string{"desc"}, NullsLast)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return head(sorted, limit), nil
}

func head(batch []domain.Record, limit int) []domain.Record {
	if limit <= 0 || limit >= len(batch) {
		return batch
	}
	return batch[:limit]
}
