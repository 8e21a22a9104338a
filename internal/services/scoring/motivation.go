package scoring

import (
	"math"

	"listing_scout/internal/domain"
)

// MotivationScore — оценка мотивации продавца: пять независимо ограниченных
// компонентов и их сумма. Все значения округлены до двух знаков.
type MotivationScore struct {
	Total              float64 `json:"total"`
	DOMComponent       float64 `json:"dom_component"`
	ReductionComponent float64 `json:"reduction_component"`
	OffMarketComponent float64 `json:"off_market_component"`
	StatusComponent    float64 `json:"status_component"`
	MarketComponent    float64 `json:"market_component"`
}

const (
	// defaultMarketAvgDOM — средний срок экспозиции по рынку, если агрегат не передан
	defaultMarketAvgDOM = 60.0
	// defaultOffMarketDays — срок с момента снятия, если дату листинга не разобрать
	defaultOffMarketDays = 30
)

// Motivation вычисляет мотивационный скоринг записи. Функция чистая:
// один и тот же вход даёт побитово одинаковый результат, свежий на каждый
// вызов — ничего не кэшируется.
//
// Компоненты: срок экспозиции (до 25), снижения цены (до 30), свежесть
// снятия с продажи (до 20), штраф за смену статуса (до 15) и срок
// экспозиции относительно рынка (до 10).
func (s *Service) Motivation(rec domain.Record, history []domain.StatusChange, market domain.Market) MotivationScore {
	dom, ok := rec.Float("days_on_market")
	if !ok {
		dom = 0
	}

	domScore := domComponent(dom)
	reductionScore := reductionComponent(rec)
	offMarketScore := s.offMarketComponent(rec)
	statusScore := statusComponent(rec, history)
	marketScore := marketComponent(dom, market)

	total := domScore + reductionScore + offMarketScore + statusScore + marketScore

	return MotivationScore{
		Total:              round2(total),
		DOMComponent:       round2(domScore),
		ReductionComponent: round2(reductionScore),
		OffMarketComponent: round2(offMarketScore),
		StatusComponent:    round2(statusScore),
		MarketComponent:    round2(marketScore),
	}
}

// domComponent — ступенчатая функция срока экспозиции.
func domComponent(dom float64) float64 {
	switch {
	case dom < 30:
		return 5
	case dom < 60:
		return 10
	case dom < 90:
		return 15
	case dom < 120:
		return 20
	default:
		// 120+ дней — максимум
		return 25
	}
}

// reductionComponent — снижения цены: число снижений и суммарный процент,
// каждая часть ограничена 15, вместе не больше 30.
func reductionComponent(rec domain.Record) float64 {
	count, _ := rec.Float("price_reduction_count")
	percent, _ := rec.Float("total_price_reduction_percent")

	countScore := math.Min(count*7, 15)
	percentScore := math.Min(percent*0.75, 15)
	return countScore + percentScore
}

// offMarketComponent — свежесть снятия с продажи. Считается только для
// статусов off_market / withdrawn; чем свежее снятие, тем выше мотивация.
func (s *Service) offMarketComponent(rec domain.Record) float64 {
	status, _ := rec.String("current_status")
	if !domain.IsOffMarketLike(status) {
		return 0
	}

	offMarketDays := defaultOffMarketDays
	if listDate, ok := rec.Time("list_date"); ok {
		offMarketDays = int(s.now().Sub(listDate).Hours() / 24)
	}

	switch {
	case offMarketDays < 7:
		return 20
	case offMarketDays < 30:
		return 15
	case offMarketDays < 90:
		return 10
	default:
		return 5
	}
}

// statusComponent — штраф за смену статуса: сорвавшаяся сделка из истории
// (только первое совпадение) плюс истёкший листинг, с потолком 15.
func statusComponent(rec domain.Record, history []domain.StatusChange) float64 {
	score := 0.0

	for _, h := range history {
		if domain.IsPendingLike(h.OldStatus) && domain.IsOffMarketLike(h.NewStatus) {
			score += 10
			break
		}
	}

	status, _ := rec.String("current_status")
	if domain.NormalizeStatus(status) == "expired" {
		score += 5
	}

	return math.Min(score, 15)
}

// marketComponent — срок экспозиции записи относительно среднего по рынку.
func marketComponent(dom float64, market domain.Market) float64 {
	avg := defaultMarketAvgDOM
	if market.AvgDaysOnMarket != nil {
		avg = *market.AvgDaysOnMarket
	}

	switch {
	case dom > avg*1.5:
		return 10
	case dom > avg*1.2:
		return 7
	case dom > avg:
		return 5
	default:
		return 3
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
