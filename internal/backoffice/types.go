package backoffice

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const sqlTimestampLayout = "2006-01-02 15:04:05"

// Timestamp accepts the timestamp formats the backend emits: RFC3339 with or
// without fractional seconds, SQL datetime, and bare dates. Unparseable or
// null values decode to the zero time.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	raw, err := strconv.Unquote(string(data))
	if err != nil {
		t.Time = time.Time{}
		return nil
	}
	t.Time = parseTime(raw)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	for _, layout := range []string{sqlTimestampLayout, "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Customer mirrors the customers collection.
type Customer struct {
	ID        int64     `json:"customer_id"`
	Name      string    `json:"customer_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone_number"`
	Address   string    `json:"address"`
	CreatedAt Timestamp `json:"created_at"`
}

// Key implements listview.Entity.
func (c Customer) Key() string { return strconv.FormatInt(c.ID, 10) }

// SalesOrder mirrors the sales-orders collection. The owning customer is
// embedded by the backend when the order has one.
type SalesOrder struct {
	ID            int64           `json:"sales_order_id"`
	UUID          uuid.UUID       `json:"sales_order_uuid"`
	OrderNumber   string          `json:"order_number"`
	OrderDate     Timestamp       `json:"order_date_time"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Customer      *Customer       `json:"Customer"`
}

// Key implements listview.Entity.
func (o SalesOrder) Key() string { return o.UUID.String() }

// CustomerName returns the embedded customer's name, or "" when absent.
func (o SalesOrder) CustomerName() string {
	if o.Customer == nil {
		return ""
	}
	return o.Customer.Name
}

// Appointment mirrors the appointments collection.
type Appointment struct {
	UUID        uuid.UUID `json:"appointment_uuid"`
	Title       string    `json:"title"`
	ServiceType string    `json:"service_type"`
	ScheduledAt Timestamp `json:"appointment_date"`
	Status      string    `json:"status"`
	Notes       *string   `json:"notes"`
	Customer    *Customer `json:"Customer"`
	StaffName   *string   `json:"staff_name"`
}

// Key implements listview.Entity.
func (a Appointment) Key() string { return a.UUID.String() }

// CustomerName returns the embedded customer's name, or "" when absent.
func (a Appointment) CustomerName() string {
	if a.Customer == nil {
		return ""
	}
	return a.Customer.Name
}

// StaffMember mirrors the staff collection.
type StaffMember struct {
	ID       int64     `json:"staff_id"`
	Name     string    `json:"staff_name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone_number"`
	Role     string    `json:"role"`
	HiredAt  Timestamp `json:"hire_date"`
	IsActive bool      `json:"is_active"`
}

// Key implements listview.Entity.
func (s StaffMember) Key() string { return strconv.FormatInt(s.ID, 10) }

// InventoryItem mirrors the inventory collection.
type InventoryItem struct {
	ID           int64           `json:"product_id"`
	Name         string          `json:"product_name"`
	SKU          string          `json:"sku"`
	Category     string          `json:"category"`
	Stock        decimal.Decimal `json:"stock_quantity"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
	Price        decimal.Decimal `json:"price"`
	UpdatedAt    Timestamp       `json:"updated_at"`
}

// Key implements listview.Entity.
func (i InventoryItem) Key() string { return strconv.FormatInt(i.ID, 10) }

// NeedsReorder reports whether stock has fallen to the reorder level.
func (i InventoryItem) NeedsReorder() bool {
	return !i.ReorderLevel.IsZero() && i.Stock.LessThanOrEqual(i.ReorderLevel)
}
