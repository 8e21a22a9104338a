package scoring

import (
	"log/slog"
	"sort"

	"listing_scout/internal/domain"
	"listing_scout/internal/lib/stats"
)

// Веса субскорингов инвестиционной привлекательности.
const (
	weightPricePerSqft = 0.3
	weightDiscount     = 0.4
	weightDOM          = 0.2
	weightLot          = 0.1
)

// neutralScore — нейтральное значение субскоринга, когда поле
// отсутствует во всём батче или нормализация вырождена.
const neutralScore = 50.0

// InvestmentField — имя поля с композитным скорингом в результате.
const InvestmentField = "investment_score"

// Investment ранжирует батч по инвестиционной привлекательности.
//
// Четыре субскоринга нормализуются относительно текущего батча (пропуски
// заполняются медианой батча или нулём, полностью отсутствующее поле даёт
// нейтральные 50): цена за кв. фут (ниже — лучше), скидка к оценке (глубже
// ниже оценки — лучше), срок экспозиции (дольше — лучше, рычаг для торга)
// и размер участка (больше — лучше). Композит добавляется полем
// investment_score, батч возвращается отсортированным по его убыванию.
// Нормализация относительна батчу: та же запись в другом батче получит
// другой скоринг — это намеренно.
func (s *Service) Investment(batch []domain.Record) []domain.Record {
	if len(batch) == 0 {
		return batch
	}

	work := domain.CloneBatch(batch)

	ppsfScores := pricePerSqftScores(work)
	discountScores := discountScores(work)
	domScores := daysOnMarketScores(work)
	lotScores := lotSizeScores(work)

	for i, rec := range work {
		composite := weightPricePerSqft*ppsfScores[i] +
			weightDiscount*discountScores[i] +
			weightDOM*domScores[i] +
			weightLot*lotScores[i]
		rec[InvestmentField] = composite
	}

	sort.SliceStable(work, func(i, j int) bool {
		a, _ := work[i].Float(InvestmentField)
		b, _ := work[j].Float(InvestmentField)
		return a > b
	})

	s.log.Debug("investment ranking computed", slog.Int("records", len(work)))

	return work
}

// columnValues собирает присутствующие значения поля по батчу.
func columnValues(batch []domain.Record, field string) []float64 {
	values := make([]float64, 0, len(batch))
	for _, rec := range batch {
		if v, ok := rec.Float(field); ok {
			values = append(values, v)
		}
	}
	return values
}

// fillWithDefault возвращает значение поля каждой записи, подставляя fill
// на месте пропусков.
func fillWithDefault(batch []domain.Record, field string, fill float64) []float64 {
	values := make([]float64, len(batch))
	for i, rec := range batch {
		if v, ok := rec.Float(field); ok {
			values[i] = v
		} else {
			values[i] = fill
		}
	}
	return values
}

func neutralScores(n int) []float64 {
	scores := make([]float64, n)
	for i := range scores {
		scores[i] = neutralScore
	}
	return scores
}

// pricePerSqftScores — инвертированная min-max нормализация цены за кв. фут:
// чем дешевле фут, тем выше скоринг.
func pricePerSqftScores(batch []domain.Record) []float64 {
	present := columnValues(batch, "price_per_sqft")
	if len(present) == 0 {
		return neutralScores(len(batch))
	}

	median, _ := stats.Median(present)
	values := fillWithDefault(batch, "price_per_sqft", median)

	minV, maxV, _ := stats.MinMax(values)
	if maxV == minV {
		return neutralScores(len(batch))
	}

	scores := make([]float64, len(values))
	for i, v := range values {
		scores[i] = 100 - (v-minV)/(maxV-minV)*100
	}
	return scores
}

// discountScores — скидка к оценочной стоимости: отрицательный дисконт
// (ниже оценки) хорош, значение ограничено [0, 100].
func discountScores(batch []domain.Record) []float64 {
	stored := storedColumns(batch)
	if !stored["list_price"] || !stored["estimated_value"] {
		return neutralScores(len(batch))
	}

	scores := make([]float64, len(batch))
	for i, rec := range batch {
		discount := 0.0
		listPrice, okPrice := rec.Float("list_price")
		estimated, okEst := rec.Float("estimated_value")
		if okPrice && okEst && estimated != 0 {
			discount = (listPrice - estimated) / estimated * 100
		}
		scores[i] = stats.Clamp(-discount, 0, 100)
	}
	return scores
}

// daysOnMarketScores — срок экспозиции как доля от максимума по батчу.
func daysOnMarketScores(batch []domain.Record) []float64 {
	stored := storedColumns(batch)
	if !stored["days_on_mls"] {
		return neutralScores(len(batch))
	}

	values := fillWithDefault(batch, "days_on_mls", 0)
	_, maxV, _ := stats.MinMax(values)
	if maxV <= 0 {
		return neutralScores(len(batch))
	}

	scores := make([]float64, len(values))
	for i, v := range values {
		scores[i] = v / maxV * 100
	}
	return scores
}

// lotSizeScores — min-max нормализация размера участка: больше — лучше.
func lotSizeScores(batch []domain.Record) []float64 {
	present := columnValues(batch, "lot_sqft")
	if len(present) == 0 {
		return neutralScores(len(batch))
	}

	median, _ := stats.Median(present)
	values := fillWithDefault(batch, "lot_sqft", median)

	minV, maxV, _ := stats.MinMax(values)
	if maxV == minV {
		return neutralScores(len(batch))
	}

	scores := make([]float64, len(values))
	for i, v := range values {
		scores[i] = (v - minV) / (maxV - minV) * 100
	}
	return scores
}

func storedColumns(batch []domain.Record) map[string]bool {
	columns := make(map[string]bool)
	for _, rec := range batch {
		for k := range rec {
			columns[k] = true
		}
	}
	return columns
}
