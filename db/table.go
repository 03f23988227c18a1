package db

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/TheReasonWePlay/FTVN-sub001/apperrors"
)

// Match is how a filter parameter is compared with its column.
type Match int

const (
	MatchEqual Match = iota
	// MatchContains is a case-insensitive substring match.
	MatchContains
	// MatchBoolean parses the parameter as a bool.
	MatchBoolean
)

// FilterField binds one query parameter to a column.
type FilterField struct {
	Column   string
	Match    Match
	Validate func(string) error
}

// FilterSpec lists the query parameters an entity can be filtered on.
// Parameters not listed are ignored.
type FilterSpec map[string]FilterField

// Table is the CRUD and filter helper shared by every entity keyed by a single column.
type Table[T any] struct {
	db      *gorm.DB
	entity  string
	key     string
	order   string
	filters FilterSpec
}

func NewTable[T any](db *gorm.DB, entity, key, order string, filters FilterSpec) *Table[T] {
	return &Table[T]{db: db, entity: entity, key: key, order: order, filters: filters}
}

// with returns a copy bound to tx.
func (t *Table[T]) with(tx *gorm.DB) *Table[T] {
	c := *t
	c.db = tx
	return &c
}

func (t *Table[T]) List(ctx context.Context) ([]T, error) {
	rows := []T{}
	if err := t.db.WithContext(ctx).Order(t.order).Find(&rows).Error; err != nil {
		return nil, classify(err, t.entity, opRead)
	}
	return rows, nil
}

func (t *Table[T]) Get(ctx context.Context, id string) (*T, error) {
	var v T
	if err := t.db.WithContext(ctx).Where(t.key+" = ?", id).Take(&v).Error; err != nil {
		return nil, classify(err, t.entity, opRead)
	}
	return &v, nil
}

// Where lists rows matching a raw condition in the default order.
func (t *Table[T]) Where(ctx context.Context, query string, args ...any) ([]T, error) {
	rows := []T{}
	if err := t.db.WithContext(ctx).Where(query, args...).Order(t.order).Find(&rows).Error; err != nil {
		return nil, classify(err, t.entity, opRead)
	}
	return rows, nil
}

func (t *Table[T]) Create(ctx context.Context, v *T) error {
	return classify(t.db.WithContext(ctx).Create(v).Error, t.entity, opWrite)
}

// Update applies a column → value patch and returns the stored row.
// A nil value clears the column.
func (t *Table[T]) Update(ctx context.Context, id string, patch map[string]any) (*T, error) {
	if len(patch) == 0 {
		return nil, apperrors.Validation("no fields to update")
	}
	res := t.db.WithContext(ctx).Model(new(T)).Where(t.key+" = ?", id).Updates(patch)
	if res.Error != nil {
		return nil, classify(res.Error, t.entity, opWrite)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.NotFound("%s not found", t.entity)
	}
	return t.Get(ctx, id)
}

func (t *Table[T]) Delete(ctx context.Context, id string) error {
	res := t.db.WithContext(ctx).Where(t.key+" = ?", id).Delete(new(T))
	if res.Error != nil {
		return classify(res.Error, t.entity, opDelete)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("%s not found", t.entity)
	}
	return nil
}

// Filter AND-combines the predicates named by params. No usable predicate matches everything.
func (t *Table[T]) Filter(ctx context.Context, params map[string]string) ([]T, error) {
	q := t.db.WithContext(ctx)

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		f, ok := t.filters[name]
		value := strings.TrimSpace(params[name])
		if !ok || value == "" {
			continue
		}
		if f.Validate != nil {
			if err := f.Validate(value); err != nil {
				return nil, err
			}
		}
		switch f.Match {
		case MatchContains:
			q = q.Where("LOWER("+f.Column+") LIKE ? ESCAPE '\\'", "%"+escapeLike(strings.ToLower(value))+"%")
		case MatchBoolean:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return nil, apperrors.Validation("%s must be true or false", name)
			}
			q = q.Where(f.Column+" = ?", b)
		default:
			q = q.Where(f.Column+" = ?", value)
		}
	}

	rows := []T{}
	if err := q.Order(t.order).Find(&rows).Error; err != nil {
		return nil, classify(err, t.entity, opRead)
	}
	return rows, nil
}

func (t *Table[T]) Count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	q := t.db.WithContext(ctx).Model(new(T))
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		return 0, classify(err, t.entity, opRead)
	}
	return n, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
