// Package sqlscript renders Go values as PostgreSQL literals and writes batched
// INSERT and UPDATE scripts.
package sqlscript

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05-0700"
)

// Date marks a time.Time that must be written as a DATE literal.
type Date time.Time

// DateOf wraps t as a Date.
func DateOf(t time.Time) Date { return Date(t) }

// Literal renders v as SQL text.
//
//	nil, nil pointers    NULL
//	string-like          'quoted' with inner quotes doubled
//	bool                 TRUE / FALSE
//	time.Time            'YYYY-MM-DD HH:MM:SS+ZZZZ'
//	Date                 'YYYY-MM-DD'
//	uuid.UUID            'quoted'
//	fmt.Stringer         'quoted' String()
//	numbers, decimals    plain text
func Literal(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case string:
		return Quote(x)
	case *string:
		if x == nil {
			return "NULL"
		}
		return Quote(*x)
	case bool:
		if x {
			return "TRUE"
		}
		return "FALSE"
	case uuid.UUID:
		return Quote(x.String())
	case *uuid.UUID:
		if x == nil {
			return "NULL"
		}
		return Quote(x.String())
	case Date:
		return Quote(time.Time(x).Format(dateLayout))
	case *Date:
		if x == nil {
			return "NULL"
		}
		return Quote(time.Time(*x).Format(dateLayout))
	case time.Time:
		return Quote(x.Format(timestampLayout))
	case *time.Time:
		if x == nil {
			return "NULL"
		}
		return Quote(x.Format(timestampLayout))
	case decimal.Decimal:
		return x.String()
	case *decimal.Decimal:
		if x == nil {
			return "NULL"
		}
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case fmt.Stringer:
		return Quote(x.String())
	}

	// Named string types such as enum values.
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return Quote(rv.String())
	case reflect.Pointer:
		if rv.IsNil() {
			return "NULL"
		}
		return Literal(rv.Elem().Interface())
	}
	return fmt.Sprint(v)
}

// Quote wraps s in single quotes, doubling any it contains.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Row renders one parenthesised VALUES tuple.
func Row(values ...any) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, v := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(Literal(v))
	}
	b.WriteByte(')')
	return b.String()
}
