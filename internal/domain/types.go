package domain

import "fmt"

// Direction of a sort, always one of the two values below.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortField is the closed set of Norma attributes a listing may be ordered by.
type SortField string

const (
	SortNome      SortField = "nome"
	SortPais      SortField = "pais"
	SortCategoria SortField = "categoria"
	SortAno       SortField = "ano"
	SortAutor     SortField = "autor"
	SortCreatedAt SortField = "created_at"
)

// Sort pairs a Norma attribute with a direction. Construct through ParseSort
// so unknown field names are rejected up front instead of at lookup time.
type Sort struct {
	Field     SortField `json:"field"`
	Direction Direction `json:"direction"`
}

// DefaultSort mirrors the listing's initial selection (alphabetical by name).
var DefaultSort = Sort{Field: SortNome, Direction: Asc}

func ParseSort(field, direction string) (Sort, error) {
	var f SortField
	switch SortField(field) {
	case SortNome, SortPais, SortCategoria, SortAno, SortAutor, SortCreatedAt:
		f = SortField(field)
	case "":
		return DefaultSort, nil
	default:
		return Sort{}, ValidationError{Field: "sort", Msg: fmt.Sprintf("campo desconhecido %q", field)}
	}

	switch Direction(direction) {
	case Asc, Desc:
		return Sort{Field: f, Direction: Direction(direction)}, nil
	case "":
		return Sort{Field: f, Direction: Asc}, nil
	default:
		return Sort{}, ValidationError{Field: "direction", Msg: fmt.Sprintf("direção desconhecida %q", direction)}
	}
}

// FilterField is the closed set of attributes the catalog can be filtered on.
type FilterField string

const (
	FilterPais      FilterField = "pais"
	FilterCategoria FilterField = "categoria"
	FilterAno       FilterField = "ano"
)

// Filters maps a filterable attribute to the selected value. An empty value
// means "no constraint" and is treated as if the entry were absent.
type Filters map[FilterField]string

// NewFilters validates attribute names at construction. Empty values are
// kept out of the map entirely so len(Filters) reflects active constraints.
func NewFilters(raw map[string]string) (Filters, error) {
	out := Filters{}
	for k, v := range raw {
		switch FilterField(k) {
		case FilterPais, FilterCategoria, FilterAno:
			if v != "" {
				out[FilterField(k)] = v
			}
		default:
			return nil, ValidationError{Field: "filter", Msg: fmt.Sprintf("campo desconhecido %q", k)}
		}
	}
	return out, nil
}
