package sorting

import (
	"math"
	"time"

	"listing_scout/internal/domain"
)

// CalcFunc — чистая функция вычисляемого поля: одно значение на запись,
// ok=false при отсутствии исходных полей.
type CalcFunc func(rec domain.Record) (float64, bool)

// calculatedFields — фиксированный реестр вычисляемых полей. Строится один
// раз и только читается.
var calculatedFields = map[string]CalcFunc{
	"property_age":   calcPropertyAge,
	"value_per_sqft": calcValuePerSqft,
	"price_discount": calcPriceDiscount,
	"lot_ratio":      calcLotRatio,
	"price_per_sqft": calcPricePerSqft,
}

// sortableFields — поля, по которым доступна сортировка, с описаниями.
var sortableFields = map[string]string{
	"list_price":       "Listing price",
	"sold_price":       "Sold price",
	"price_per_sqft":   "Price per square foot",
	"sqft":             "Living area square footage",
	"lot_sqft":         "Lot size",
	"beds":             "Number of bedrooms",
	"full_baths":       "Number of full bathrooms",
	"baths":            "Total bathrooms",
	"year_built":       "Year property was built",
	"days_on_mls":      "Days on market",
	"list_date":        "Date listed",
	"sold_date":        "Date sold",
	"pending_date":     "Date went pending",
	"last_sold_date":   "Last sold date",
	"last_update_date": "Last update date",
	"hoa_fee":          "HOA fee amount",
	"stories":          "Number of stories",
	"parking_garage":   "Garage spaces",
	"assessed_value":   "Tax assessed value",
	"estimated_value":  "Estimated value",
	"property_age":     "Property age (calculated)",
	"value_per_sqft":   "Value per sqft (calculated)",
	"price_discount":   "Price discount vs estimate (calculated)",
	"lot_ratio":        "Living area to lot ratio (calculated)",
}

// SortableFields возвращает доступные поля сортировки и их описания.
func SortableFields() map[string]string {
	cp := make(map[string]string, len(sortableFields))
	for k, v := range sortableFields {
		cp[k] = v
	}
	return cp
}

// IsCalculated сообщает, есть ли поле в реестре вычисляемых.
func IsCalculated(field string) bool {
	_, ok := calculatedFields[field]
	return ok
}

// Calculate вычисляет значение поля из реестра для одной записи.
// ok=false, если поле не зарегистрировано или исходных данных не хватает.
func Calculate(field string, rec domain.Record) (float64, bool) {
	fn, ok := calculatedFields[field]
	if !ok {
		return 0, false
	}
	return fn(rec)
}

func calcPropertyAge(rec domain.Record) (float64, bool) {
	yearBuilt, ok := rec.Float("year_built")
	if !ok {
		return 0, false
	}
	return float64(time.Now().Year()) - yearBuilt, true
}

func calcValuePerSqft(rec domain.Record) (float64, bool) {
	value, ok := rec.Float("estimated_value")
	if !ok {
		return 0, false
	}
	sqft, ok := rec.Float("sqft")
	if !ok || sqft <= 0 {
		return 0, false
	}
	return value / sqft, true
}

// calcPriceDiscount — отклонение цены от оценочной стоимости в процентах;
// отрицательное значение = дешевле оценки.
func calcPriceDiscount(rec domain.Record) (float64, bool) {
	listPrice, ok := rec.Float("list_price")
	if !ok {
		return 0, false
	}
	estimated, ok := rec.Float("estimated_value")
	if !ok || estimated == 0 {
		return 0, false
	}
	return (listPrice - estimated) / estimated * 100, true
}

func calcLotRatio(rec domain.Record) (float64, bool) {
	sqft, ok := rec.Float("sqft")
	if !ok {
		return 0, false
	}
	lotSqft, ok := rec.Float("lot_sqft")
	if !ok || lotSqft <= 0 {
		return 0, false
	}
	return sqft / lotSqft, true
}

func calcPricePerSqft(rec domain.Record) (float64, bool) {
	listPrice, ok := rec.Float("list_price")
	if !ok || listPrice <= 0 {
		return 0, false
	}
	sqft, ok := rec.Float("sqft")
	if !ok || sqft <= 0 {
		return 0, false
	}
	return math.Round(listPrice/sqft*100) / 100, true
}
