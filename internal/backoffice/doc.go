// Package backoffice provides an HTTP client for the business back-office API.
//
// # Overview
//
// The backend exposes one REST collection per entity (customers, sales
// orders, appointments, staff, inventory). This package knows the URL, owner
// parameter and envelope field of each collection (resources.go), the wire
// shape of each entity (types.go) and how responses map onto errors
// (errors.go).
//
// # Client Usage
//
//	client, err := backoffice.NewClient(backoffice.Options{
//		BaseURL: "http://127.0.0.1:3000/api",
//		Token:   sess.Token,
//	})
//	if err != nil {
//		return err
//	}
//
//	res, err := backoffice.List[backoffice.SalesOrder](ctx, client, backoffice.SalesOrders, backoffice.ListQuery{
//		Owner:      sess.OrganizationID,
//		PageNumber: 1,
//		PageSize:   20,
//	})
//
// # API Endpoints
//
//   - GET    /<collection>?<owner>=…[&pageNumber&pageSize][&searchConfig]
//   - POST   /<collection>?<owner>=…
//   - PUT    /<collection>/<id>?<owner>=…
//   - DELETE /<collection>/<id>?<owner>=…   body: {"managerPassword": …} when privileged
//
// Collection reads return {"<listField>": [...], "pagination": {...}}. The
// pagination block is only read for paginated resources.
//
// # Request Handling
//
// Requests go through a resty client that sets the bearer token, a JSON
// Accept header and a User-Agent of tally/<version>. The default timeout is
// 10 seconds. There are no retries: a failed read is shown as an empty view
// and the user refreshes, and mutations must not be replayed implicitly.
//
// # Error Handling
//
// Any status >= 400 becomes an *APIError carrying the server message when the
// body has one. errors.Is maps it onto the sentinels:
//
//   - ErrUnauthorized: 401
//   - ErrForbidden: 403
//   - ErrNotFound: 404
//   - ErrInvalidCredential: 401 or 403 on a request that carried a manager password
//
// UserMessage turns any error into a line suitable for a toast.
package backoffice
