package sqlite

import (
	"database/sql/driver"
	"fmt"
	"reflect"
	"strings"
)

// optional is implemented by patch fields that can be explicitly set to NULL
// (model.OptionalID). Plain pointer fields are "present" when non-nil.
type optional interface {
	Present() bool
}

// updateBuilder assembles a partial UPDATE statement.
//
// Patches are model structs whose fields are pointers (or optional values)
// tagged with their column name:
//
//	type PhotoPatch struct {
//	    Title *string `db:"title"`
//	    Tags  *Tags   `db:"tags"`
//	}
//
// apply walks those tags, so adding a column to a patch struct is the only
// change needed to make it updatable. Column names come from struct tags,
// never from request data; values always go through placeholders.
type updateBuilder struct {
	table string
	sets  []string
	args  []any
}

func newUpdate(table string) *updateBuilder {
	return &updateBuilder{table: table}
}

// set adds "column = ?" with the given value. driver.Valuer values are
// resolved here so the SQLite driver only ever sees primitive types.
func (b *updateBuilder) set(column string, value any) error {
	if v, ok := value.(driver.Valuer); ok {
		resolved, err := v.Value()
		if err != nil {
			return fmt.Errorf("encoding %s: %w", column, err)
		}
		value = resolved
	}
	b.sets = append(b.sets, column+" = ?")
	b.args = append(b.args, value)
	return nil
}

// apply adds every present field of patch (a struct or pointer to struct).
func (b *updateBuilder) apply(patch any) error {
	v := reflect.ValueOf(patch)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("patch must be a struct, got %s", v.Kind())
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		column := field.Tag.Get("db")
		if column == "" || column == "-" || !field.IsExported() {
			continue
		}

		fv := v.Field(i)
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				continue
			}
			if err := b.set(column, fv.Elem().Interface()); err != nil {
				return err
			}
			continue
		}

		opt, ok := fv.Interface().(optional)
		if !ok {
			return fmt.Errorf("patch field %s must be a pointer or optional value", field.Name)
		}
		if opt.Present() {
			if err := b.set(column, fv.Interface()); err != nil {
				return err
			}
		}
	}
	return nil
}

// empty reports whether no column has been assigned.
func (b *updateBuilder) empty() bool {
	return len(b.sets) == 0
}

// where renders the final statement scoped by the given condition.
func (b *updateBuilder) where(cond string, condArgs ...any) (string, []any) {
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s", b.table, strings.Join(b.sets, ", "), cond)
	args := make([]any, 0, len(b.args)+len(condArgs))
	args = append(args, b.args...)
	args = append(args, condArgs...)
	return query, args
}
