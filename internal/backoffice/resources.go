package backoffice

// Scope is the owner a collection is keyed by.
type Scope int

const (
	ScopeUser Scope = iota
	ScopeOrganization
)

// Resource describes one REST collection.
type Resource struct {
	Name       string // plural display name
	Path       string
	ListField  string // envelope field holding the rows
	OwnerParam string
	Scope      Scope

	// Paginated collections accept pageNumber/pageSize and return pagination.
	Paginated bool
	// ServerSearch collections accept searchConfig and filter on the server.
	ServerSearch bool
	// Privileged deletes need a manager password in the request body.
	Privileged bool
	// DeleteRoles lists roles allowed to delete; empty allows everyone.
	DeleteRoles []string
}

var (
	Customers = Resource{
		Name:       "customers",
		Path:       "/customers",
		ListField:  "customers",
		OwnerParam: "userId",
		Scope:      ScopeUser,
	}
	SalesOrders = Resource{
		Name:         "sales orders",
		Path:         "/sales-orders",
		ListField:    "salesOrders",
		OwnerParam:   "organizationId",
		Scope:        ScopeOrganization,
		Paginated:    true,
		ServerSearch: true,
		Privileged:   true,
	}
	Appointments = Resource{
		Name:       "appointments",
		Path:       "/appointments",
		ListField:  "appointments",
		OwnerParam: "organizationId",
		Scope:      ScopeOrganization,
	}
	Staff = Resource{
		Name:        "staff",
		Path:        "/staff",
		ListField:   "staff",
		OwnerParam:  "organizationId",
		Scope:       ScopeOrganization,
		Privileged:  true,
		DeleteRoles: []string{"owner", "manager"},
	}
	Inventory = Resource{
		Name:       "inventory items",
		Path:       "/inventory",
		ListField:  "inventory",
		OwnerParam: "organizationId",
		Scope:      ScopeOrganization,
	}
)
