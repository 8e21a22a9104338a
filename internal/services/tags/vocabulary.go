package tags

import (
	"sort"

	"github.com/samber/lo"
)

// Vocabulary — статический словарь тегов: категории, таблица алиасов и
// обратный индекс алиасов. Строится один раз на старте процесса и дальше
// только читается; конкурентные читатели не требуют синхронизации.
type Vocabulary struct {
	categoryOrder []string
	categories    map[string][]string
	aliases       map[string]string
	reverse       map[string][]string
	// allTerms — объединение канонических тегов, ключей и значений алиасов;
	// пространство кандидатов для нечёткого поиска
	allTerms []string
}

// категории тегов в порядке объявления: тег относится не более чем к одной
// категории, при пересечениях побеждает первая
var defaultCategoryOrder = []string{
	"outdoor", "interior", "structure", "garage_parking", "lot",
	"view", "community", "special", "features", "property_type",
}

var defaultCategories = map[string][]string{
	"outdoor": {
		"swimming_pool", "spa_or_hot_tub", "private_backyard", "fenced_yard",
		"big_yard", "outdoor_kitchen", "rv_or_boat_parking", "rv_parking",
		"park", "playground", "greenbelt", "trails",
	},
	"interior": {
		"fireplace", "hardwood_floors", "vaulted_ceiling", "high_ceiling",
		"open_floor_plan", "modern_kitchen", "gourmet_kitchen", "granite_kitchen",
		"updated_kitchen", "large_kitchen", "open_kitchen", "dining_room",
		"laundry_room", "master_bedroom", "master_suite", "ensuite",
		"washer_dryer", "dishwasher", "central_air", "forced_air",
	},
	"structure": {
		"single_story", "two_or_more_stories", "basement", "detached_guest_house",
		"guest_house", "hidden_room", "new_roof", "floor_plan", "new_construction",
	},
	"garage_parking": {
		"garage_1_or_more", "garage_2_or_more", "garage_3_or_more",
		"carport", "rv_or_boat_parking", "rv_parking",
	},
	"lot": {
		"big_lot", "corner_lot", "cul_de_sac", "golf_course_lot_or_frontage",
		"big_yard", "fenced_yard", "private_backyard",
	},
	"view": {
		"view", "views", "city_view", "golf_course_view", "hill_or_mountain_view",
		"mountain_view", "water_view", "waterfront", "lake",
	},
	"community": {
		"community_swimming_pool", "community_tennis_court", "community_park",
		"community_outdoor_space", "community_security_features", "community_golf",
		"community_horse_facilities", "community_center", "gated_community",
		"clubhouse", "recreation_facilities", "hoa", "low_hoa", "no_hoa",
	},
	"special": {
		"golf_course", "golf_course_lot_or_frontage", "horse_facilities",
		"community_horse_facilities", "tennis", "tennis_court", "farm",
		"ranch", "greenhouse",
	},
	"features": {
		"energy_efficient", "efficient", "solar_panels", "solar_system",
		"security", "maintenance", "groundscare", "medicalcare",
	},
	"property_type": {
		"investment_opportunity", "rental_property", "fixer_upper",
		"senior_community", "new_construction",
	},
}

// алиасы поисковых терминов → канонические теги
var defaultAliases = map[string]string{
	// Бассейн
	"pool":          "swimming_pool",
	"pools":         "swimming_pool",
	"inground_pool": "swimming_pool",
	"private_pool":  "swimming_pool",

	// Спа и джакузи
	"hot_tub": "spa_or_hot_tub",
	"hottub":  "spa_or_hot_tub",
	"spa":     "spa_or_hot_tub",
	"jacuzzi": "spa_or_hot_tub",

	// Гараж
	"garage":          "garage_1_or_more",
	"2_car_garage":    "garage_2_or_more",
	"3_car_garage":    "garage_3_or_more",
	"attached_garage": "garage_1_or_more",

	// Кухня
	"updated_kitchen": "modern_kitchen",
	"new_kitchen":     "modern_kitchen",
	"chef_kitchen":    "gourmet_kitchen",

	// Виды
	"mountain":  "mountain_view",
	"mountains": "mountain_view",
	"water":     "water_view",
	"lake_view": "water_view",
	"ocean":     "waterfront",
	"beach":     "waterfront",

	// Двор
	"backyard": "private_backyard",
	"yard":     "big_yard",
	"fenced":   "fenced_yard",
	"fence":    "fenced_yard",

	// Этажность
	"one_story":   "single_story",
	"1_story":     "single_story",
	"multi_story": "two_or_more_stories",
	"2_story":     "two_or_more_stories",

	// Комьюнити
	"gated":        "gated_community",
	"hoa_included": "hoa",
	"no_hoa_fee":   "no_hoa",

	// Энергоэффективность
	"solar":        "solar_panels",
	"green":        "energy_efficient",
	"eco_friendly": "energy_efficient",

	// Особые объекты
	"golf":       "golf_course",
	"horses":     "horse_facilities",
	"equestrian": "horse_facilities",
}

// Default возвращает словарь со встроенными таблицами.
func Default() *Vocabulary {
	return New(defaultCategoryOrder, defaultCategories, defaultAliases)
}

// New строит словарь из таблиц категорий и алиасов. Обратный индекс
// вычисляется здесь один раз как точная инверсия таблицы алиасов.
func New(categoryOrder []string, categories map[string][]string, aliases map[string]string) *Vocabulary {
	reverse := make(map[string][]string, len(aliases))
	for alias, canonical := range aliases {
		reverse[canonical] = append(reverse[canonical], alias)
	}
	// Фиксируем порядок алиасов для детерминированных выдач
	for canonical := range reverse {
		sort.Strings(reverse[canonical])
	}

	termSet := make(map[string]struct{})
	for _, categoryTags := range categories {
		for _, tag := range categoryTags {
			termSet[tag] = struct{}{}
		}
	}
	for alias, canonical := range aliases {
		termSet[alias] = struct{}{}
		termSet[canonical] = struct{}{}
	}
	allTerms := lo.Keys(termSet)
	sort.Strings(allTerms)

	return &Vocabulary{
		categoryOrder: categoryOrder,
		categories:    categories,
		aliases:       aliases,
		reverse:       reverse,
		allTerms:      allTerms,
	}
}

// Categories возвращает имена категорий в порядке объявления.
func (v *Vocabulary) Categories() []string {
	return append([]string(nil), v.categoryOrder...)
}

// TagsByCategory возвращает теги категории. Неизвестная категория — пустой срез.
func (v *Vocabulary) TagsByCategory(category string) []string {
	return append([]string(nil), v.categories[normalizeTerm(category)]...)
}

// CategoryOf возвращает категорию тега. Тег относится не более чем к одной
// категории: при пересечении определений побеждает первая по порядку объявления.
func (v *Vocabulary) CategoryOf(tag string) (string, bool) {
	normalized := normalizeTerm(tag)
	for _, category := range v.categoryOrder {
		for _, categoryTag := range v.categories[category] {
			if categoryTag == normalized {
				return category, true
			}
		}
	}
	return "", false
}

// Aliases возвращает все алиасы канонического тега.
func (v *Vocabulary) Aliases(canonical string) []string {
	return append([]string(nil), v.reverse[canonical]...)
}
