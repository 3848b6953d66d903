package udm

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownField      = errors.New("udm: unknown field")
	ErrInvalidFieldValue = errors.New("udm: invalid field value")
	ErrMissingRequired   = errors.New("udm: required field missing")
)

// Field reads and writes one named field of T.
// Get returns nil for null values; Set coerces loosely typed input into the field type.
type Field[T any] struct {
	Get func(obj *T) any
	Set func(obj *T, value any) error
}

// FieldTable is the accessor table for one entity type, built once at package init
type FieldTable[T any] struct {
	objectType string
	fields     map[string]Field[T]
	names      []string
	required   []string
	newFn      func() *T
	cloneFn    func(*T) *T
}

// NewFieldTable builds an accessor table
func NewFieldTable[T any](objectType string, newFn func() *T, cloneFn func(*T) *T, required []string, fields map[string]Field[T]) *FieldTable[T] {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return &FieldTable[T]{
		objectType: objectType,
		fields:     fields,
		names:      names,
		required:   required,
		newFn:      newFn,
		cloneFn:    cloneFn,
	}
}

// ObjectType returns the object type name the table describes
func (t *FieldTable[T]) ObjectType() string {
	return t.objectType
}

// Names returns the sorted field names
func (t *FieldTable[T]) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Required returns the fields that must be set on a freshly constructed object
func (t *FieldTable[T]) Required() []string {
	out := make([]string, len(t.required))
	copy(out, t.required)
	return out
}

// Has reports whether the table knows the field
func (t *FieldTable[T]) Has(name string) bool {
	_, ok := t.fields[name]
	return ok
}

// Lookup resolves name case-insensitively to the table's own spelling
func (t *FieldTable[T]) Lookup(name string) (string, bool) {
	if t.Has(name) {
		return name, true
	}
	for _, n := range t.names {
		if strings.EqualFold(n, name) {
			return n, true
		}
	}
	return "", false
}

// Get returns the field value and whether the field exists. A known field holding
// null yields (nil, true).
func (t *FieldTable[T]) Get(obj *T, name string) (any, bool) {
	f, ok := t.fields[name]
	if !ok || obj == nil {
		return nil, ok
	}
	return f.Get(obj), true
}

// Set writes the field
func (t *FieldTable[T]) Set(obj *T, name string, value any) error {
	f, ok := t.fields[name]
	if !ok {
		return fmt.Errorf("%w: %s.%s", ErrUnknownField, t.objectType, name)
	}
	if err := f.Set(obj, value); err != nil {
		return fmt.Errorf("%s.%s: %w", t.objectType, name, err)
	}
	return nil
}

// New returns a zero-valued object with entity defaults applied
func (t *FieldTable[T]) New() *T {
	return t.newFn()
}

// Clone returns a copy of obj that shares no pointers with it
func (t *FieldTable[T]) Clone(obj *T) *T {
	return t.cloneFn(obj)
}

// ---------------------------------------------------------------------------
// Field constructors
// ---------------------------------------------------------------------------

func stringField[T any](ref func(*T) **string) Field[T] {
	return Field[T]{
		Get: func(obj *T) any {
			if v := *ref(obj); v != nil {
				return *v
			}
			return nil
		},
		Set: func(obj *T, value any) error {
			s, err := toString(value)
			if err != nil {
				return err
			}
			*ref(obj) = s
			return nil
		},
	}
}

func requiredStringField[T any](ref func(*T) *string) Field[T] {
	return Field[T]{
		Get: func(obj *T) any {
			if v := *ref(obj); v != "" {
				return v
			}
			return nil
		},
		Set: func(obj *T, value any) error {
			s, err := toString(value)
			if err != nil {
				return err
			}
			if s == nil || strings.TrimSpace(*s) == "" {
				return fmt.Errorf("%w: value must not be empty", ErrInvalidFieldValue)
			}
			*ref(obj) = *s
			return nil
		},
	}
}

func intField[T any](ref func(*T) **int) Field[T] {
	return Field[T]{
		Get: func(obj *T) any {
			if v := *ref(obj); v != nil {
				return *v
			}
			return nil
		},
		Set: func(obj *T, value any) error {
			n, err := toInt(value)
			if err != nil {
				return err
			}
			*ref(obj) = n
			return nil
		},
	}
}

func decimalField[T any](ref func(*T) **decimal.Decimal) Field[T] {
	return Field[T]{
		Get: func(obj *T) any {
			if v := *ref(obj); v != nil {
				return *v
			}
			return nil
		},
		Set: func(obj *T, value any) error {
			d, err := toDecimal(value)
			if err != nil {
				return err
			}
			*ref(obj) = d
			return nil
		},
	}
}

func timeField[T any](ref func(*T) **time.Time) Field[T] {
	return Field[T]{
		Get: func(obj *T) any {
			if v := *ref(obj); v != nil {
				return *v
			}
			return nil
		},
		Set: func(obj *T, value any) error {
			ts, err := toTime(value)
			if err != nil {
				return err
			}
			*ref(obj) = ts
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// Coercion
// ---------------------------------------------------------------------------

func toString(value any) (*string, error) {
	var s string
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		s = v
	case *string:
		if v == nil {
			return nil, nil
		}
		s = *v
	case json.Number:
		s = v.String()
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		s = strconv.Itoa(v)
	case int64:
		s = strconv.FormatInt(v, 10)
	case bool:
		s = strconv.FormatBool(v)
	case decimal.Decimal:
		s = v.String()
	case time.Time:
		s = v.UTC().Format(time.RFC3339)
	case fmt.Stringer:
		s = v.String()
	default:
		return nil, fmt.Errorf("%w: cannot use %T as string", ErrInvalidFieldValue, value)
	}
	return &s, nil
}

func toInt(value any) (*int, error) {
	var n int
	switch v := value.(type) {
	case nil:
		return nil, nil
	case int:
		n = v
	case int32:
		n = int(v)
	case int64:
		n = int(v)
	case float64:
		if v != math.Trunc(v) {
			return nil, fmt.Errorf("%w: %v is not an integer", ErrInvalidFieldValue, v)
		}
		n = int(v)
	case decimal.Decimal:
		if !v.IsInteger() {
			return nil, fmt.Errorf("%w: %s is not an integer", ErrInvalidFieldValue, v)
		}
		n = int(v.IntPart())
	case json.Number:
		return toInt(string(v))
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, nil
		}
		if i, err := strconv.Atoi(s); err == nil {
			n = i
			break
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidFieldValue, v)
		}
		return toInt(f)
	default:
		return nil, fmt.Errorf("%w: cannot use %T as integer", ErrInvalidFieldValue, value)
	}
	return &n, nil
}

func toDecimal(value any) (*decimal.Decimal, error) {
	var d decimal.Decimal
	switch v := value.(type) {
	case nil:
		return nil, nil
	case decimal.Decimal:
		d = v
	case float64:
		d = decimal.NewFromFloat(v)
	case int:
		d = decimal.NewFromInt(int64(v))
	case int64:
		d = decimal.NewFromInt(v)
	case json.Number:
		return toDecimal(string(v))
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, nil
		}
		parsed, err := decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a decimal", ErrInvalidFieldValue, v)
		}
		d = parsed
	default:
		return nil, fmt.Errorf("%w: cannot use %T as decimal", ErrInvalidFieldValue, value)
	}
	return &d, nil
}

var timeLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func toTime(value any) (*time.Time, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return &v, nil
	case *time.Time:
		return v, nil
	case float64:
		ts := time.UnixMilli(int64(v)).UTC()
		return &ts, nil
	case int64:
		ts := time.UnixMilli(v).UTC()
		return &ts, nil
	case int:
		ts := time.UnixMilli(int64(v)).UTC()
		return &ts, nil
	case json.Number:
		return toTime(string(v))
	case string:
		return ParseTimestamp(v)
	default:
		return nil, fmt.Errorf("%w: cannot use %T as timestamp", ErrInvalidFieldValue, value)
	}
}

// ParseTimestamp parses epoch milliseconds or an ISO-8601 date/time string.
// An empty string yields nil.
func ParseTimestamp(raw string) (*time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, nil
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		ts := time.UnixMilli(ms).UTC()
		return &ts, nil
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return &ts, nil
		}
	}
	return nil, fmt.Errorf("%w: %q is not a timestamp", ErrInvalidFieldValue, raw)
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneDecimal(p *decimal.Decimal) *decimal.Decimal {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneTime(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}

// IntPtr returns a pointer to n
func IntPtr(n int) *int {
	return &n
}
