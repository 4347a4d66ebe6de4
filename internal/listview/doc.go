// Package listview implements the in-memory half of a list page: typed field
// accessors, search filtering, stable column sorting, row selection and
// client-side pagination.
//
// # Overview
//
// Every entity page in Tally shows a fetched collection through the same
// pipeline:
//
//	collection ─> Filter ─> Sort ─> Paginate ─> render
//
// Derive runs the whole pipeline and returns a View. Each stage is also
// exported so pages and tests can use them on their own. No stage mutates its
// input; the fetched collection stays the source of truth until the next
// fetch replaces it.
//
// # Schemas
//
// A Schema is the accessor table for one entity type. Each Field carries a
// Get function returning a Value, plus flags saying whether the field can be
// searched, sorted or edited. Filter, Sort, the table renderer and the edit
// form all read fields through the schema, so a missing nested record (an
// order without a customer, say) is turned into Null in exactly one place.
//
// # Values
//
// Value is a small tagged scalar: Null, Text, Number, Decimal, Date or Bool.
// Compare orders two values:
//
//   - two nulls are equal, and a null sorts before any present value
//   - dates compare by timestamp
//   - numbers and decimals compare numerically
//   - text compares by byte order
//   - mixed kinds compare by their string form
//
// # Searching
//
// A SearchConfig holds a term and the active filter fields. A row matches
// when any active field contains the term after both are trimmed and
// lower-cased. Numbers, decimals and dates are matched on their rendered
// form. An empty term disables filtering.
//
// # Sorting
//
// SortConfig.Cycle implements header clicks: the same column goes
// none → ascending → descending → ascending, a different column starts at
// ascending. Sort is stable, so rows with equal keys keep their fetched
// order.
//
// # Selection
//
// Selection is a set of row keys. ToggleAll works on the visible rows only,
// and Prune drops keys that disappeared from a newly fetched collection.
package listview
