package models

import "sort"

// DefaultCategory присваивается записи, если категория не указана
const DefaultCategory = "Uncategorized"

// Record представляет одну цитату в реплике (локальной или удаленной).
// Record - значение: при классификации и разрешении конфликтов
// создаются новые копии, а не частичные изменения на месте.
type Record struct {
	ID        string `json:"id"`         // ID уникальный идентификатор, никогда не переназначается
	Text      string `json:"text"`       // Text текст цитаты
	Category  string `json:"category"`   // Category категория цитаты
	UpdatedAt int64  `json:"updated_at"` // UpdatedAt время последнего изменения (unix ms)
}

// ContentEquals reports whether two versions of a record carry the same
// user-visible content. Timestamps are not part of the comparison.
func (r Record) ContentEquals(other Record) bool {
	return r.Text == other.Text
}

// IsNewerThan сравнивает две версии записи по UpdatedAt.
// Возвращает true только если r строго новее other.
func (r Record) IsNewerThan(other Record) bool {
	return r.UpdatedAt > other.UpdatedAt
}

// Collection is a replica's records keyed by ID.
type Collection map[string]Record

// NewCollection builds a collection from a list of records.
// A later record with a duplicate ID replaces the earlier one.
func NewCollection(records ...Record) Collection {
	c := make(Collection, len(records))
	for _, r := range records {
		c[r.ID] = r
	}
	return c
}

// Clone создает копию коллекции
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	for id, r := range c {
		out[id] = r
	}
	return out
}

// Sorted returns the records ordered by ID.
func (c Collection) Sorted() []Record {
	out := make([]Record, 0, len(c))
	for _, r := range c {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Categories returns the distinct categories present, sorted.
func (c Collection) Categories() []string {
	seen := make(map[string]struct{})
	for _, r := range c {
		seen[r.Category] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for cat := range seen {
		out = append(out, cat)
	}
	sort.Strings(out)
	return out
}

// Conflict пара расходящихся версий одной записи.
// Local и Remote всегда имеют одинаковый ID.
type Conflict struct {
	Local  Record `json:"local"`
	Remote Record `json:"remote"`
}

// ID возвращает идентификатор записи, к которой относится конфликт
func (c Conflict) ID() string {
	return c.Local.ID
}
