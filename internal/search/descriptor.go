package search

// Strategy decides how match vectors order the results.
type Strategy int

const (
	// RankByVector sorts descending on every match component in field order.
	RankByVector Strategy = iota
	// RankByFirstMatch ranks a record by the first field that matched only.
	RankByFirstMatch
)

// Field is one searchable attribute. Values returns every text the field
// stands for; relation fields return one value per related record and match
// when any of them does.
type Field[T any] struct {
	Name   string
	Values func(T) []string
}

// Descriptor lists the searchable fields of an entity, most identifying first.
type Descriptor[T any] struct {
	Entity   string
	Fields   []Field[T]
	Key      func(T) uint64
	Strategy Strategy
}

// Text is a helper for single-valued fields.
func Text[T any](name string, get func(T) string) Field[T] {
	return Field[T]{
		Name:   name,
		Values: func(item T) []string { return []string{get(item)} },
	}
}

// Many is a helper for relation fields.
func Many[T any](name string, get func(T) []string) Field[T] {
	return Field[T]{Name: name, Values: get}
}
