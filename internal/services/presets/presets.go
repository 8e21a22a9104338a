package presets

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Params — частичный набор параметров фильтрации: любое подмножество
// пространства параметров (диапазоны, списки типов, булевы флаги,
// тег-фильтры, match type).
type Params map[string]any

// Известные ключи параметров.
const (
	ParamTagFilters   = "tag_filters"
	ParamTagMatchType = "tag_match_type"
	ParamTagExclude   = "tag_exclude"
)

// Clone делает поверхностную копию параметров (списки тегов копируются).
func (p Params) Clone() Params {
	cp := make(Params, len(p))
	for k, v := range p {
		if tags, ok := v.([]string); ok {
			cp[k] = append([]string(nil), tags...)
			continue
		}
		cp[k] = v
	}
	return cp
}

// TagFilters возвращает список тег-фильтров из параметров.
func (p Params) TagFilters() []string {
	tags, _ := p[ParamTagFilters].([]string)
	return tags
}

// Preset — именованный пресет фильтров. Пресеты иммутабельны, определяются
// один раз и ищутся по имени без учёта регистра.
type Preset struct {
	Name        string
	Description string
	Filters     Params
}

var ErrUnknownPreset = errors.New("unknown preset")

// Registry — реестр пресетов, строится один раз на старте процесса
// и дальше только читается.
type Registry struct {
	presets map[string]Preset
}

// Default возвращает реестр со встроенными пресетами.
func Default() *Registry {
	return NewRegistry(defaultPresets)
}

// NewRegistry строит реестр из списка пресетов.
func NewRegistry(presets []Preset) *Registry {
	byName := make(map[string]Preset, len(presets))
	for _, p := range presets {
		byName[strings.ToLower(p.Name)] = p
	}
	return &Registry{presets: byName}
}

// Available возвращает имена всех пресетов по алфавиту.
func (r *Registry) Available() []string {
	names := lo.Keys(r.presets)
	sort.Strings(names)
	return names
}

// Describe возвращает описания всех пресетов: имя → описание.
func (r *Registry) Describe() map[string]string {
	descriptions := make(map[string]string, len(r.presets))
	for name, p := range r.presets {
		descriptions[name] = p.Description
	}
	return descriptions
}

// Resolve находит пресет по имени без учёта регистра. Ошибка для
// диагностируемости перечисляет все валидные имена.
func (r *Registry) Resolve(name string) (Preset, error) {
	const op = "presets.Registry.Resolve"

	p, ok := r.presets[strings.ToLower(name)]
	if !ok {
		return Preset{}, fmt.Errorf("%s: %q (available presets: %s): %w",
			op, name, strings.Join(r.Available(), ", "), ErrUnknownPreset)
	}
	return p, nil
}

// Apply возвращает параметры пресета с наложенными переопределениями:
// переопределения побеждают ключ за ключом.
func (r *Registry) Apply(name string, overrides Params) (Params, error) {
	const op = "presets.Registry.Apply"

	p, err := r.Resolve(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	params := p.Filters.Clone()
	for k, v := range overrides {
		params[k] = v
	}
	return params, nil
}

// Combine объединяет несколько пресетов: скалярные значения перезаписываются
// последующими пресетами (последний побеждает), кроме tag_filters — при
// комбинации больше одного пресета берётся объединение без дубликатов
// исходных tag_filters каждого пресета, перечитанных из реестра, а не из
// уже слитой карты. Переопределения применяются последними.
func (r *Registry) Combine(names []string, overrides Params) (Params, error) {
	const op = "presets.Registry.Combine"

	combined := make(Params)
	for _, name := range names {
		params, err := r.Apply(name, nil)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		for k, v := range params {
			combined[k] = v
		}
	}

	if len(names) > 1 {
		var allTagFilters []string
		for _, name := range names {
			p, err := r.Resolve(name)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			allTagFilters = append(allTagFilters, p.Filters.TagFilters()...)
		}
		if len(allTagFilters) > 0 {
			combined[ParamTagFilters] = lo.Uniq(allTagFilters)
		}
	}

	for k, v := range overrides {
		combined[k] = v
	}

	return combined, nil
}

// ByCategory группирует имена пресетов по смысловым категориям.
// rental_property числится в каталоге, но пресет с таким именем не определён.
func (r *Registry) ByCategory() map[string][]string {
	return map[string][]string{
		"Investment":    {"investor_friendly", "fixer_upper", "rental_property"},
		"Lifestyle":     {"luxury", "retirement", "family_friendly", "starter_home"},
		"Location":      {"waterfront", "golf_course", "mountain_view", "urban", "gated_community"},
		"Features":      {"pool_home", "no_hoa", "eco_friendly", "new_construction", "open_floor_plan"},
		"Property Type": {"horse_property", "acreage", "guest_house"},
		"Lot Features":  {"corner_lot", "cul_de_sac", "quiet_neighborhood"},
		"Parking":       {"rv_parking", "big_garage"},
	}
}
