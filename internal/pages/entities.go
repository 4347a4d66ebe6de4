package pages

import (
	bo "github.com/five82/tally/internal/backoffice"
	"github.com/five82/tally/internal/fetch"
	lv "github.com/five82/tally/internal/listview"
)

// CustomerSchema is the accessor table for customers.
var CustomerSchema = lv.MustSchema(
	lv.Field[bo.Customer]{
		Key: "customer_name", Label: "Name", Kind: lv.KindText, Width: 24,
		Get:        func(c bo.Customer) lv.Value { return lv.Text(c.Name) },
		Searchable: true, Sortable: true, Editable: true, Rules: "required,max=120",
	},
	lv.Field[bo.Customer]{
		Key: "email", Label: "Email", Kind: lv.KindText, Width: 28,
		Get:        func(c bo.Customer) lv.Value { return lv.Text(c.Email) },
		Searchable: true, Sortable: true, Editable: true, Rules: "omitempty,email",
	},
	lv.Field[bo.Customer]{
		Key: "phone_number", Label: "Phone", Kind: lv.KindText, Width: 16,
		Get:        func(c bo.Customer) lv.Value { return lv.Text(c.Phone) },
		Searchable: true, Editable: true, Rules: "omitempty,max=32",
	},
	lv.Field[bo.Customer]{
		Key: "address", Label: "Address", Kind: lv.KindText, Width: 32,
		Get:        func(c bo.Customer) lv.Value { return lv.Text(c.Address) },
		Searchable: true, Editable: true, Rules: "omitempty,max=200",
	},
	lv.Field[bo.Customer]{
		Key: "created_at", Label: "Since", Kind: lv.KindDate, Width: 10,
		Get:      func(c bo.Customer) lv.Value { return lv.Date(c.CreatedAt.Time) },
		Sortable: true,
	},
)

// SalesOrderSchema is the accessor table for sales orders. The customer
// column reads through the embedded customer, which may be absent.
var SalesOrderSchema = lv.MustSchema(
	lv.Field[bo.SalesOrder]{
		Key: "order_number", Label: "Order", Kind: lv.KindText, Width: 12,
		Get:        func(o bo.SalesOrder) lv.Value { return lv.Text(o.OrderNumber) },
		Searchable: true, Sortable: true,
	},
	lv.Field[bo.SalesOrder]{
		Key: "customer_name", Label: "Customer", Kind: lv.KindText, Width: 22,
		Get: func(o bo.SalesOrder) lv.Value {
			if o.Customer == nil {
				return lv.Null()
			}
			return lv.Text(o.Customer.Name)
		},
		Searchable: true, Sortable: true,
	},
	lv.Field[bo.SalesOrder]{
		Key: "order_date_time", Label: "Date", Kind: lv.KindDate, Width: 10,
		Get:      func(o bo.SalesOrder) lv.Value { return lv.Date(o.OrderDate.Time) },
		Sortable: true, Editable: true, Rules: "required",
	},
	lv.Field[bo.SalesOrder]{
		Key: "status", Label: "Status", Kind: lv.KindText, Width: 12,
		Get:        func(o bo.SalesOrder) lv.Value { return lv.Text(o.Status) },
		Searchable: true, Sortable: true, Editable: true,
		Rules: "required,oneof=pending processing shipped delivered cancelled",
	},
	lv.Field[bo.SalesOrder]{
		Key: "payment_status", Label: "Payment", Kind: lv.KindText, Width: 10,
		Get:        func(o bo.SalesOrder) lv.Value { return lv.Text(o.PaymentStatus) },
		Searchable: true, Sortable: true, Editable: true,
		Rules: "required,oneof=unpaid partial paid refunded",
	},
	lv.Field[bo.SalesOrder]{
		Key: "total_amount", Label: "Total", Kind: lv.KindDecimal, Width: 12,
		Get:      func(o bo.SalesOrder) lv.Value { return lv.Decimal(o.TotalAmount) },
		Sortable: true, Editable: true, Rules: "required,gte=0",
	},
)

// AppointmentSchema is the accessor table for appointments.
var AppointmentSchema = lv.MustSchema(
	lv.Field[bo.Appointment]{
		Key: "title", Label: "Title", Kind: lv.KindText, Width: 22,
		Get:        func(a bo.Appointment) lv.Value { return lv.Text(a.Title) },
		Searchable: true, Sortable: true, Editable: true, Rules: "required,max=120",
	},
	lv.Field[bo.Appointment]{
		Key: "customer_name", Label: "Customer", Kind: lv.KindText, Width: 20,
		Get: func(a bo.Appointment) lv.Value {
			if a.Customer == nil {
				return lv.Null()
			}
			return lv.Text(a.Customer.Name)
		},
		Searchable: true, Sortable: true,
	},
	lv.Field[bo.Appointment]{
		Key: "service_type", Label: "Service", Kind: lv.KindText, Width: 16,
		Get:        func(a bo.Appointment) lv.Value { return lv.Text(a.ServiceType) },
		Searchable: true, Sortable: true, Editable: true, Rules: "required,max=60",
	},
	lv.Field[bo.Appointment]{
		Key: "appointment_date", Label: "When", Kind: lv.KindDate, Width: 10,
		Get:      func(a bo.Appointment) lv.Value { return lv.Date(a.ScheduledAt.Time) },
		Sortable: true, Editable: true, Rules: "required",
	},
	lv.Field[bo.Appointment]{
		Key: "staff_name", Label: "Staff", Kind: lv.KindText, Width: 16,
		Get:        func(a bo.Appointment) lv.Value { return lv.OptionalText(a.StaffName) },
		Searchable: true, Sortable: true,
	},
	lv.Field[bo.Appointment]{
		Key: "status", Label: "Status", Kind: lv.KindText, Width: 11,
		Get:        func(a bo.Appointment) lv.Value { return lv.Text(a.Status) },
		Searchable: true, Sortable: true, Editable: true,
		Rules: "required,oneof=scheduled confirmed completed cancelled",
	},
	lv.Field[bo.Appointment]{
		Key: "notes", Label: "Notes", Kind: lv.KindText, Width: 24,
		Get:        func(a bo.Appointment) lv.Value { return lv.OptionalText(a.Notes) },
		Searchable: true, Editable: true, Rules: "omitempty,max=500",
	},
)

// StaffSchema is the accessor table for staff members.
var StaffSchema = lv.MustSchema(
	lv.Field[bo.StaffMember]{
		Key: "staff_name", Label: "Name", Kind: lv.KindText, Width: 22,
		Get:        func(s bo.StaffMember) lv.Value { return lv.Text(s.Name) },
		Searchable: true, Sortable: true, Editable: true, Rules: "required,max=120",
	},
	lv.Field[bo.StaffMember]{
		Key: "email", Label: "Email", Kind: lv.KindText, Width: 28,
		Get:        func(s bo.StaffMember) lv.Value { return lv.Text(s.Email) },
		Searchable: true, Sortable: true, Editable: true, Rules: "required,email",
	},
	lv.Field[bo.StaffMember]{
		Key: "phone_number", Label: "Phone", Kind: lv.KindText, Width: 16,
		Get:        func(s bo.StaffMember) lv.Value { return lv.Text(s.Phone) },
		Searchable: true, Editable: true, Rules: "omitempty,max=32",
	},
	lv.Field[bo.StaffMember]{
		Key: "role", Label: "Role", Kind: lv.KindText, Width: 9,
		Get:        func(s bo.StaffMember) lv.Value { return lv.Text(s.Role) },
		Searchable: true, Sortable: true, Editable: true, Rules: "required,oneof=owner manager staff",
	},
	lv.Field[bo.StaffMember]{
		Key: "hire_date", Label: "Hired", Kind: lv.KindDate, Width: 10,
		Get:      func(s bo.StaffMember) lv.Value { return lv.Date(s.HiredAt.Time) },
		Sortable: true, Editable: true,
	},
	lv.Field[bo.StaffMember]{
		Key: "is_active", Label: "Active", Kind: lv.KindBool, Width: 6,
		Get:      func(s bo.StaffMember) lv.Value { return lv.Bool(s.IsActive) },
		Sortable: true, Editable: true,
	},
)

// InventorySchema is the accessor table for inventory items.
var InventorySchema = lv.MustSchema(
	lv.Field[bo.InventoryItem]{
		Key: "product_name", Label: "Product", Kind: lv.KindText, Width: 24,
		Get:        func(i bo.InventoryItem) lv.Value { return lv.Text(i.Name) },
		Searchable: true, Sortable: true, Editable: true, Rules: "required,max=120",
	},
	lv.Field[bo.InventoryItem]{
		Key: "sku", Label: "SKU", Kind: lv.KindText, Width: 12,
		Get:        func(i bo.InventoryItem) lv.Value { return lv.Text(i.SKU) },
		Searchable: true, Sortable: true, Editable: true, Rules: "required,max=64",
	},
	lv.Field[bo.InventoryItem]{
		Key: "category", Label: "Category", Kind: lv.KindText, Width: 14,
		Get:        func(i bo.InventoryItem) lv.Value { return lv.Text(i.Category) },
		Searchable: true, Sortable: true, Editable: true, Rules: "omitempty,max=60",
	},
	lv.Field[bo.InventoryItem]{
		Key: "stock_quantity", Label: "Stock", Kind: lv.KindDecimal, Width: 8,
		Get:      func(i bo.InventoryItem) lv.Value { return lv.Decimal(i.Stock) },
		Sortable: true, Editable: true, Rules: "required,gte=0",
	},
	lv.Field[bo.InventoryItem]{
		Key: "reorder_level", Label: "Reorder at", Kind: lv.KindDecimal, Width: 10,
		Get:      func(i bo.InventoryItem) lv.Value { return lv.Decimal(i.ReorderLevel) },
		Sortable: true, Editable: true, Rules: "omitempty,gte=0",
	},
	lv.Field[bo.InventoryItem]{
		Key: "price", Label: "Price", Kind: lv.KindDecimal, Width: 10,
		Get:      func(i bo.InventoryItem) lv.Value { return lv.Decimal(i.Price) },
		Sortable: true, Editable: true, Rules: "required,gte=0",
	},
	lv.Field[bo.InventoryItem]{
		Key: "low_stock", Label: "Low", Kind: lv.KindBool, Width: 4,
		Get:      func(i bo.InventoryItem) lv.Value { return lv.Bool(i.NeedsReorder()) },
		Sortable: true,
	},
	lv.Field[bo.InventoryItem]{
		Key: "updated_at", Label: "Updated", Kind: lv.KindDate, Width: 10,
		Get:      func(i bo.InventoryItem) lv.Value { return lv.Date(i.UpdatedAt.Time) },
		Sortable: true,
	},
)

// Definitions for every entity page, in tab order.
var (
	Customers    = Definition[bo.Customer]{Resource: bo.Customers, Title: "Customers", Schema: CustomerSchema}
	SalesOrders  = Definition[bo.SalesOrder]{Resource: bo.SalesOrders, Title: "Sales Orders", Schema: SalesOrderSchema}
	Appointments = Definition[bo.Appointment]{Resource: bo.Appointments, Title: "Appointments", Schema: AppointmentSchema}
	Staff        = Definition[bo.StaffMember]{Resource: bo.Staff, Title: "Staff", Schema: StaffSchema}
	Inventory    = Definition[bo.InventoryItem]{Resource: bo.Inventory, Title: "Inventory", Schema: InventorySchema}
)

// All builds one page per entity reading from client. deps.Mutator defaults
// to client.
func All(client *bo.Client, deps Deps) []Lister {
	if deps.Mutator == nil {
		deps.Mutator = client
	}
	return []Lister{
		New(Customers, fetch.FromClient[bo.Customer](client, bo.Customers), deps),
		New(SalesOrders, fetch.FromClient[bo.SalesOrder](client, bo.SalesOrders), deps),
		New(Appointments, fetch.FromClient[bo.Appointment](client, bo.Appointments), deps),
		New(Staff, fetch.FromClient[bo.StaffMember](client, bo.Staff), deps),
		New(Inventory, fetch.FromClient[bo.InventoryItem](client, bo.Inventory), deps),
	}
}
