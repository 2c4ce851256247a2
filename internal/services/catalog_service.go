package services

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"normadeck/internal/domain"
	"normadeck/internal/domain/models"
)

// Query bundles the three listing inputs. The zero value means "everything,
// default order".
type Query struct {
	Search  string
	Filters domain.Filters
	Sort    domain.Sort
}

// Derive runs search, filters and sort in that fixed order and returns a new
// ordered slice. The input is never mutated and identical inputs always give
// an element-wise identical result.
func Derive(records []models.Norma, q Query) []models.Norma {
	if q.Sort == (domain.Sort{}) {
		q.Sort = domain.DefaultSort
	}

	out := make([]models.Norma, 0, len(records))
	search := strings.ToLower(strings.TrimSpace(q.Search))
	for _, n := range records {
		if search != "" && !matchesSearch(n, search) {
			continue
		}
		if !matchesFilters(n, q.Filters) {
			continue
		}
		out = append(out, n)
	}

	sortNormas(out, q.Sort)
	return out
}

// matchesSearch is a substring match over nome, pais and (when present)
// categoria, all lower-cased.
func matchesSearch(n models.Norma, query string) bool {
	if strings.Contains(strings.ToLower(n.Nome), query) {
		return true
	}
	if strings.Contains(strings.ToLower(n.Pais), query) {
		return true
	}
	return n.Categoria != "" && strings.Contains(strings.ToLower(n.Categoria), query)
}

// matchesFilters requires a case-insensitive exact match per active filter.
// A record missing the attribute is dropped while that filter is active.
func matchesFilters(n models.Norma, filters domain.Filters) bool {
	for field, want := range filters {
		have := n.FilterValue(field)
		if have == "" || !strings.EqualFold(have, want) {
			return false
		}
	}
	return true
}

func sortNormas(list []models.Norma, s domain.Sort) {
	if len(list) < 2 {
		return
	}
	coll := collate.New(language.Portuguese)
	sort.SliceStable(list, func(i, j int) bool {
		return normaBefore(coll, list[i], list[j], s)
	})
}

// normaBefore reports whether a sorts before b. Records missing the sort
// field go last no matter the direction; the direction only flips the
// comparison between two present values.
func normaBefore(coll *collate.Collator, a, b models.Norma, s domain.Sort) bool {
	if s.Field == domain.SortCreatedAt {
		at, bt := a.CreatedAt, b.CreatedAt
		if at.IsZero() || bt.IsZero() {
			return !at.IsZero() && bt.IsZero()
		}
		if s.Direction == domain.Desc {
			return bt.Before(at)
		}
		return at.Before(bt)
	}

	av, bv := a.Field(s.Field), b.Field(s.Field)
	if av == "" || bv == "" {
		return av != "" && bv == ""
	}
	cmp := coll.CompareString(av, bv)
	if s.Direction == domain.Desc {
		return cmp > 0
	}
	return cmp < 0
}
