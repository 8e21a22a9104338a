package pipeline

import (
	"listing_scout/internal/services/filtering"
	"listing_scout/internal/services/presets"
)

// Request — параметры одного прогона конвейера. Явные параметры запроса
// побеждают параметры пресетов ключ за ключом.
type Request struct {
	// Пресеты, применяемые до явных параметров
	Presets []string `json:"presets,omitempty"`

	// Тег-фильтры
	TagFilters   []string `json:"tag_filters,omitempty"`
	TagMatchType string   `json:"tag_match_type,omitempty"`
	TagExclude   []string `json:"tag_exclude,omitempty"`

	// Настройки расширения терминов; nil означает значение по умолчанию
	UseAliases     *bool    `json:"use_aliases,omitempty"`
	UseFuzzy       bool     `json:"use_fuzzy,omitempty"`
	FuzzyThreshold *float64 `json:"fuzzy_threshold,omitempty"`

	// Диапазонные фильтры
	PriceMin        *float64 `json:"price_min,omitempty"`
	PriceMax        *float64 `json:"price_max,omitempty"`
	SqftMin         *float64 `json:"sqft_min,omitempty"`
	SqftMax         *float64 `json:"sqft_max,omitempty"`
	LotSqftMin      *float64 `json:"lot_sqft_min,omitempty"`
	LotSqftMax      *float64 `json:"lot_sqft_max,omitempty"`
	BedsMin         *float64 `json:"beds_min,omitempty"`
	BedsMax         *float64 `json:"beds_max,omitempty"`
	BathsMin        *float64 `json:"baths_min,omitempty"`
	BathsMax        *float64 `json:"baths_max,omitempty"`
	YearBuiltMin    *float64 `json:"year_built_min,omitempty"`
	YearBuiltMax    *float64 `json:"year_built_max,omitempty"`
	HOAFeeMin       *float64 `json:"hoa_fee_min,omitempty"`
	HOAFeeMax       *float64 `json:"hoa_fee_max,omitempty"`
	StoriesMin      *float64 `json:"stories_min,omitempty"`
	StoriesMax      *float64 `json:"stories_max,omitempty"`
	GarageSpacesMin *float64 `json:"garage_spaces_min,omitempty"`
	DaysOnMarketMax *float64 `json:"days_on_market_max,omitempty"`

	// Булевы фильтры
	HasPool    *bool `json:"has_pool,omitempty"`
	HasView    *bool `json:"has_view,omitempty"`
	HasGarage  *bool `json:"has_garage,omitempty"`
	Waterfront *bool `json:"waterfront,omitempty"`

	// Фильтр по типу недвижимости
	PropertyType []string `json:"property_type,omitempty"`

	// Сортировка
	SortBy        []string `json:"sort_by,omitempty"`
	SortDirection []string `json:"sort_direction,omitempty"`
	NullsPosition string   `json:"nulls_position,omitempty"`

	// Ранжирование по инвестиционному скорингу вместо обычной сортировки
	RankByInvestment bool `json:"rank_by_investment,omitempty"`

	// Добавлять производные поля перед фильтрацией; nil — по конфигурации
	AddDerivedFields *bool `json:"add_derived_fields,omitempty"`

	// Ограничение размера результата; 0 — без ограничения
	Limit int `json:"limit,omitempty"`
}

// explicitParams собирает явно заданные параметры запроса в Params —
// в том же пространстве ключей, что и пресеты.
func (r Request) explicitParams() presets.Params {
	p := make(presets.Params)

	if len(r.TagFilters) > 0 {
		p[presets.ParamTagFilters] = append([]string(nil), r.TagFilters...)
	}
	if r.TagMatchType != "" {
		p[presets.ParamTagMatchType] = r.TagMatchType
	}
	if len(r.TagExclude) > 0 {
		p[presets.ParamTagExclude] = append([]string(nil), r.TagExclude...)
	}

	numeric := map[string]*float64{
		"price_min":          r.PriceMin,
		"price_max":          r.PriceMax,
		"sqft_min":           r.SqftMin,
		"sqft_max":           r.SqftMax,
		"lot_sqft_min":       r.LotSqftMin,
		"lot_sqft_max":       r.LotSqftMax,
		"beds_min":           r.BedsMin,
		"beds_max":           r.BedsMax,
		"baths_min":          r.BathsMin,
		"baths_max":          r.BathsMax,
		"year_built_min":     r.YearBuiltMin,
		"year_built_max":     r.YearBuiltMax,
		"hoa_fee_min":        r.HOAFeeMin,
		"hoa_fee_max":        r.HOAFeeMax,
		"stories_min":        r.StoriesMin,
		"stories_max":        r.StoriesMax,
		"garage_spaces_min":  r.GarageSpacesMin,
		"days_on_market_max": r.DaysOnMarketMax,
	}
	for key, value := range numeric {
		if value != nil {
			p[key] = *value
		}
	}

	flags := map[string]*bool{
		"has_pool":   r.HasPool,
		"has_view":   r.HasView,
		"has_garage": r.HasGarage,
		"waterfront": r.Waterfront,
	}
	for key, value := range flags {
		if value != nil {
			p[key] = *value
		}
	}

	if len(r.PropertyType) > 0 {
		p["property_type"] = append([]string(nil), r.PropertyType...)
	}

	return p
}

// rangeParamFields — имя параметра диапазона → поле записи и роль границы.
var rangeParamFields = map[string]struct {
	field string
	isMax bool
}{
	"price_min":          {"list_price", false},
	"price_max":          {"list_price", true},
	"sqft_min":           {"sqft", false},
	"sqft_max":           {"sqft", true},
	"lot_sqft_min":       {"lot_sqft", false},
	"lot_sqft_max":       {"lot_sqft", true},
	"beds_min":           {"beds", false},
	"beds_max":           {"beds", true},
	"baths_min":          {"baths", false},
	"baths_max":          {"baths", true},
	"year_built_min":     {"year_built", false},
	"year_built_max":     {"year_built", true},
	"hoa_fee_min":        {"hoa_fee", false},
	"hoa_fee_max":        {"hoa_fee", true},
	"stories_min":        {"stories", false},
	"stories_max":        {"stories", true},
	"garage_spaces_min":  {"parking_garage", false},
	"days_on_market_max": {"days_on_mls", true},
}

// flagParamFields — булевы параметры; у всех имя параметра совпадает
// с именем поля записи.
var flagParamFields = []string{"has_pool", "has_view", "has_garage", "waterfront"}

// optionsFromParams раскладывает слитые параметры в опции фильтрации.
func optionsFromParams(params presets.Params) filtering.Options {
	opts := filtering.Options{
		Ranges: make(map[string]filtering.RangeBound),
		Flags:  make(map[string]bool),
		Values: make(map[string][]string),
	}

	opts.TagFilters = params.TagFilters()
	if matchType, ok := params[presets.ParamTagMatchType].(string); ok {
		opts.MatchType = matchType
	}
	if exclude, ok := params[presets.ParamTagExclude].([]string); ok {
		opts.TagExclude = exclude
	}

	for key, spec := range rangeParamFields {
		value, ok := asFloat(params[key])
		if !ok {
			continue
		}
		bound := opts.Ranges[spec.field]
		v := value
		if spec.isMax {
			bound.Max = &v
		} else {
			bound.Min = &v
		}
		opts.Ranges[spec.field] = bound
	}

	for _, key := range flagParamFields {
		if want, ok := params[key].(bool); ok {
			opts.Flags[key] = want
		}
	}

	if types, ok := params["property_type"].([]string); ok && len(types) > 0 {
		opts.Values["style"] = types
	}

	return opts
}

// asFloat принимает числовые параметры и из кода, и из декодированного JSON.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}
