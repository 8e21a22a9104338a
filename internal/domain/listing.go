package domain

import (
	"errors"
	"strings"
	"time"
)

// Record — открытая запись объявления недвижимости: имя поля → значение.
// Записи приходят от внешнего скрейпера и дальше по конвейеру не мутируются:
// каждая трансформация возвращает новую коллекцию.
type Record map[string]any

// Ключи идентичности записи. Запись без хотя бы одного из них
// считается неинтерпретируемой и исключается из батча.
var identityKeys = []string{"property_id", "property_url", "mls_id"}

var (
	ErrNoIdentity = errors.New("record has no usable identity")
)

// Float возвращает числовое значение поля.
// Отсутствующее поле или значение другого типа — не ошибка: ok=false.
func (r Record) Float(key string) (float64, bool) {
	v, exists := r[key]
	if !exists || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// String возвращает строковое значение поля.
func (r Record) String(key string) (string, bool) {
	v, exists := r[key]
	if !exists || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Bool возвращает булево значение поля.
func (r Record) Bool(key string) (bool, bool) {
	v, exists := r[key]
	if !exists || v == nil {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Time возвращает значение поля как время. Поддерживаются time.Time
// и строки в ISO 8601 (включая суффикс Z и форму без времени).
func (r Record) Time(key string) (time.Time, bool) {
	v, exists := r[key]
	if !exists || v == nil {
		return time.Time{}, false
	}
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		return parseISOTime(t)
	}
	return time.Time{}, false
}

func parseISOTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Tags возвращает набор тегов записи. Отсутствие поля — пустой набор.
func (r Record) Tags() []string {
	v, exists := r["tags"]
	if !exists {
		return nil
	}
	tags, ok := v.([]string)
	if !ok {
		return nil
	}
	return tags
}

// Clone делает поверхностную копию записи (на один уровень вглубь для тегов).
func (r Record) Clone() Record {
	cp := make(Record, len(r))
	for k, v := range r {
		if tags, ok := v.([]string); ok {
			cp[k] = append([]string(nil), tags...)
			continue
		}
		cp[k] = v
	}
	return cp
}

// NewRecord создаёт запись из сырых данных скрейпера. Поле tags приводится
// к каноническому виду через ParseTags ровно один раз на границе ингеста.
// Запись без идентичности отбрасывается с ErrNoIdentity.
func NewRecord(raw map[string]any) (Record, error) {
	const op = "domain.NewRecord"

	if !hasIdentity(raw) {
		return nil, ErrNoIdentity
	}

	rec := make(Record, len(raw))
	for k, v := range raw {
		rec[k] = v
	}
	rec["tags"] = ParseTags(raw["tags"]).Set()

	return rec, nil
}

// NewBatch создаёт батч записей, исключая неинтерпретируемые записи
// вместо прерывания всего батча. Возвращает число пропущенных.
func NewBatch(raws []map[string]any) ([]Record, int) {
	batch := make([]Record, 0, len(raws))
	skipped := 0
	for _, raw := range raws {
		rec, err := NewRecord(raw)
		if err != nil {
			skipped++
			continue
		}
		batch = append(batch, rec)
	}
	return batch, skipped
}

// CloneBatch копирует батч вместе с записями.
func CloneBatch(batch []Record) []Record {
	cp := make([]Record, len(batch))
	for i, rec := range batch {
		cp[i] = rec.Clone()
	}
	return cp
}

func hasIdentity(raw map[string]any) bool {
	for _, key := range identityKeys {
		if v, ok := raw[key]; ok {
			if s, isStr := v.(string); isStr && strings.TrimSpace(s) != "" {
				return true
			}
			if _, isNum := v.(float64); isNum {
				return true
			}
			if _, isInt := v.(int); isInt {
				return true
			}
		}
	}
	return false
}
