package presets

// Встроенные пресеты для типовых сценариев поиска.
var defaultPresets = []Preset{
	{
		Name:        "investor_friendly",
		Description: "Properties ideal for investors - low HOA, good lot size, rental potential",
		Filters: Params{
			"hoa_fee_max":     float64(100),
			"lot_sqft_min":    float64(5000),
			ParamTagFilters:   []string{"rental_property", "investment_opportunity"},
			ParamTagMatchType: "any",
		},
	},
	{
		Name:        "luxury",
		Description: "High-end luxury properties with premium features",
		Filters: Params{
			"price_min":       float64(500000),
			"sqft_min":        float64(2500),
			"baths_min":       2.5,
			ParamTagFilters:   []string{"swimming_pool", "gourmet_kitchen", "high_ceiling", "view"},
			ParamTagMatchType: "any",
		},
	},
	{
		Name:        "fixer_upper",
		Description: "Properties needing work - good for flippers",
		Filters: Params{
			ParamTagFilters:   []string{"fixer_upper", "investment_opportunity"},
			ParamTagMatchType: "any",
		},
	},
	{
		Name:        "family_friendly",
		Description: "Single-family homes in safe neighborhoods with good amenities",
		Filters: Params{
			"beds_min":        float64(3),
			"baths_min":       float64(2),
			"property_type":   []string{"single_family"},
			ParamTagFilters:   []string{"private_backyard", "community_park", "playground"},
			ParamTagMatchType: "any",
		},
	},
	{
		Name:        "retirement",
		Description: "Properties suitable for retirees - single story, low maintenance",
		Filters: Params{
			"stories_max":     float64(1),
			ParamTagFilters:   []string{"senior_community", "low_hoa", "community_security_features"},
			ParamTagMatchType: "any",
		},
	},
	{
		Name:        "eco_friendly",
		Description: "Energy-efficient and sustainable properties",
		Filters: Params{
			ParamTagFilters:   []string{"solar_panels", "energy_efficient", "efficient"},
			ParamTagMatchType: "any",
		},
	},
	{
		Name:        "waterfront",
		Description: "Waterfront and water view properties",
		Filters: Params{
			ParamTagFilters:   []string{"waterfront", "water_view", "lake"},
			ParamTagMatchType: "any",
			"waterfront":      true,
		},
	},
	{
		Name:        "golf_course",
		Description: "Properties on or near golf courses",
		Filters: Params{
			ParamTagFilters:   []string{"golf_course", "golf_course_view", "golf_course_lot_or_frontage"},
			ParamTagMatchType: "any",
		},
	},
	{
		Name:        "new_construction",
		Description: "Newly built properties",
		Filters: Params{
			ParamTagFilters:   []string{"new_construction"},
			ParamTagMatchType: "all",
		},
	},
	{
		Name:        "horse_property",
		Description: "Properties with horse facilities",
		Filters: Params{
			"lot_sqft_min":    float64(20000),
			ParamTagFilters:   []string{"horse_facilities", "community_horse_facilities", "farm", "ranch"},
			ParamTagMatchType: "any",
		},
	},
	{
		Name:        "starter_home",
		Description: "Affordable starter homes for first-time buyers",
		Filters: Params{
			"price_max": float64(300000),
			"beds_min":  float64(2),
			"baths_min": float64(1),
			"sqft_min":  float64(1000),
		},
	},
	{
		Name:        "no_hoa",
		Description: "Properties without HOA fees",
		Filters: Params{
			ParamTagFilters:   []string{"no_hoa"},
			ParamTagMatchType: "all",
		},
	},
	{
		Name:        "pool_home",
		Description: "Properties with swimming pools",
		Filters: Params{
			"has_pool":        true,
			ParamTagFilters:   []string{"swimming_pool"},
			ParamTagMatchType: "any",
		},
	},
	{
		Name:        "gated_community",
		Description: "Properties in gated communities with security",
		Filters: Params{
			ParamTagFilters:   []string{"gated_community", "community_security_features"},
			ParamTagMatchType: "any",
		},
	},
	{
		Name:        "mountain_view",
		Description: "Properties with mountain or hill views",
		Filters: Params{
			"has_view":        true,
			ParamTagFilters:   []string{"mountain_view", "hill_or_mountain_view"},
			ParamTagMatchType: "any",
		},
	},
	{
		Name:        "rv_parking",
		Description: "Properties with RV or boat parking",
		Filters: Params{
			ParamTagFilters:   []string{"rv_or_boat_parking", "rv_parking"},
			ParamTagMatchType: "any",
		},
	},
	{
		Name:        "guest_house",
		Description: "Properties with guest houses or ADUs",
		Filters: Params{
			ParamTagFilters:   []string{"guest_house", "detached_guest_house"},
			ParamTagMatchType: "any",
		},
	},
	{
		Name:        "corner_lot",
		Description: "Properties on corner lots",
		Filters: Params{
			ParamTagFilters:   []string{"corner_lot"},
			ParamTagMatchType: "all",
		},
	},
	{
		Name:        "cul_de_sac",
		Description: "Properties on quiet cul-de-sac streets",
		Filters: Params{
			ParamTagFilters:   []string{"cul_de_sac"},
			ParamTagMatchType: "all",
		},
	},
	{
		Name:        "open_floor_plan",
		Description: "Modern properties with open floor plans",
		Filters: Params{
			ParamTagFilters:   []string{"open_floor_plan", "open_kitchen", "modern_kitchen"},
			ParamTagMatchType: "any",
		},
	},
	{
		Name:        "big_garage",
		Description: "Properties with large garages (2+ cars)",
		Filters: Params{
			"garage_spaces_min": float64(2),
			ParamTagFilters:     []string{"garage_2_or_more", "garage_3_or_more"},
			ParamTagMatchType:   "any",
		},
	},
	{
		Name:        "acreage",
		Description: "Properties with large lots (1+ acre)",
		Filters: Params{
			// 1 акр = 43 560 кв. футов
			"lot_sqft_min":    float64(43560),
			ParamTagFilters:   []string{"big_lot", "farm", "ranch"},
			ParamTagMatchType: "any",
		},
	},
	{
		Name:        "urban",
		Description: "Urban properties with city amenities",
		Filters: Params{
			ParamTagFilters:   []string{"city_view", "shopping", "maintenance", "groundscare"},
			ParamTagMatchType: "any",
		},
	},
	{
		Name:        "quiet_neighborhood",
		Description: "Peaceful properties away from busy areas",
		Filters: Params{
			ParamTagFilters:   []string{"cul_de_sac", "greenbelt", "private_backyard", "fenced_yard"},
			ParamTagMatchType: "any",
		},
	},
}
