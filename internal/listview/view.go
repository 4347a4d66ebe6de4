package listview

// EmptyReason tells an empty view apart from a filtered-out one.
type EmptyReason int

const (
	NotEmpty EmptyReason = iota
	NoData
	NoMatches
	PastLastPage
)

// Params drive the derivation of a view from a fetched collection.
type Params struct {
	Search SearchConfig
	Sort   SortConfig

	// Page and PageSize apply when ClientPaging is set.
	Page         int
	PageSize     int
	ClientPaging bool

	// ServerFiltered marks collections already filtered by the server.
	ServerFiltered bool
}

// View is the derived projection rendered by a table.
type View[E Entity] struct {
	Rows       []E
	Pagination Pagination
	Total      int // rows in the fetched collection
	Matched    int // rows left after filtering
	Empty      EmptyReason
}

// Derive computes collection → filter → sort → paginate. The collection is
// never modified.
func Derive[E Entity](s *Schema[E], collection []E, p Params) View[E] {
	rows := collection
	if !p.ServerFiltered {
		rows = Filter(s, rows, p.Search)
	}
	rows = Sort(s, rows, p.Sort)

	v := View[E]{Total: len(collection), Matched: len(rows)}
	if p.ClientPaging {
		v.Rows, v.Pagination = Paginate(rows, p.Page, p.PageSize)
	} else {
		v.Rows = rows
	}

	switch {
	case len(v.Rows) > 0:
		v.Empty = NotEmpty
	case len(collection) == 0:
		v.Empty = NoData
	case v.Matched == 0:
		v.Empty = NoMatches
	default:
		v.Empty = PastLastPage
	}
	if p.ServerFiltered && v.Empty == NoData && p.Search.Active() {
		v.Empty = NoMatches
	}
	return v
}

// EmptyMessage is the placeholder text for an empty view.
func EmptyMessage(reason EmptyReason, entity string) string {
	switch reason {
	case NoData:
		return "No " + entity + " yet"
	case NoMatches:
		return "No " + entity + " match the current search"
	case PastLastPage:
		return "No " + entity + " on this page"
	default:
		return ""
	}
}
