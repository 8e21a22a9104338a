package domain

import "strings"

// TagsKind — форма, в которой поле tags пришло от скрейпера.
type TagsKind int

const (
	TagsAbsent TagsKind = iota // поля нет или оно пустое
	TagsSingle                 // одиночная строка (возможно через запятую)
	TagsMany                   // список строк
)

// TagsValue — явный тегированный вариант для поля tags.
// Разрешается в канонический набор строк один раз на границе ингеста;
// дальше по ядру ходит только []string.
type TagsValue struct {
	kind   TagsKind
	single string
	many   []string
}

// ParseTags разбирает сырое значение поля tags в тегированный вариант.
func ParseTags(v any) TagsValue {
	switch t := v.(type) {
	case nil:
		return TagsValue{kind: TagsAbsent}
	case string:
		if strings.TrimSpace(t) == "" {
			return TagsValue{kind: TagsAbsent}
		}
		return TagsValue{kind: TagsSingle, single: t}
	case []string:
		return TagsValue{kind: TagsMany, many: t}
	case []any:
		many := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				many = append(many, s)
			}
		}
		return TagsValue{kind: TagsMany, many: many}
	}
	return TagsValue{kind: TagsAbsent}
}

// Kind возвращает форму исходного значения.
func (t TagsValue) Kind() TagsKind {
	return t.kind
}

// Set разрешает вариант в канонический набор тегов: нижний регистр,
// без пустых значений и без дубликатов, порядок первых вхождений.
func (t TagsValue) Set() []string {
	var raw []string
	switch t.kind {
	case TagsAbsent:
		return []string{}
	case TagsSingle:
		// Одиночная строка может быть списком через запятую
		raw = strings.Split(t.single, ",")
	case TagsMany:
		raw = t.many
	}

	seen := make(map[string]struct{}, len(raw))
	set := make([]string, 0, len(raw))
	for _, tag := range raw {
		cleaned := strings.ToLower(strings.TrimSpace(tag))
		if cleaned == "" {
			continue
		}
		if _, dup := seen[cleaned]; dup {
			continue
		}
		seen[cleaned] = struct{}{}
		set = append(set, cleaned)
	}
	return set
}
