// Package table implements the generic record-table core: an in-memory
// snapshot cache, pure filter/sort/paginate engines, and the draft-edit
// state machine. One instantiation serves each record type.
package table

// Schema tells the engines how to read a record of type T by column
// name. Field returns the raw value. Display returns the user-facing
// string for columns whose raw value is a foreign key (wallet id to
// wallet name); ok=false means no substitution applies and the raw
// value is used.
type Schema[T any] struct {
	Field        func(rec T, name string) any
	Display      func(rec T, name string) (string, bool)
	GlobalFields []string
	DateFields   map[string]bool
}

// displayString resolves the filter/sort string for a column, applying
// the Display substitution when one exists.
func (s Schema[T]) displayString(rec T, name string) string {
	if s.Display != nil {
		if v, ok := s.Display(rec, name); ok {
			return v
		}
	}
	return Stringify(s.Field(rec, name))
}
