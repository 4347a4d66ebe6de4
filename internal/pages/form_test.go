package pages

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/five82/tally/internal/listview"
)

func TestParseInput(t *testing.T) {
	tests := []struct {
		name  string
		kind  listview.Kind
		rules string
		input string
		want  any
		msg   string
	}{
		{"text trimmed", listview.KindText, "required", "  Ada ", "Ada", ""},
		{"required blank", listview.KindText, "required", "   ", nil, "is required"},
		{"optional blank text", listview.KindText, "omitempty,email", "", "", ""},
		{"optional blank number", listview.KindDecimal, "omitempty,gte=0", "", nil, ""},
		{"too long", listview.KindText, "max=3", "abcd", nil, "must be at most 3 characters"},
		{"oneof", listview.KindText, "oneof=owner manager staff", "boss", nil, "must be one of: owner, manager, staff"},
		{"decimal", listview.KindDecimal, "gte=0", "12.50", json.Number("12.5"), ""},
		{"negative", listview.KindDecimal, "gte=0", "-2", nil, "must be at least 0"},
		{"not a number", listview.KindNumber, "", "twelve", nil, "must be a number"},
		{"bool", listview.KindBool, "", "Yes", true, ""},
		{"bad bool", listview.KindBool, "", "maybe", nil, "must be yes or no"},
		{"bad date", listview.KindDate, "required", "31/01/2025", nil, "must be a date like 2025-01-31 or 2025-01-31 14:30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, msg := parseInput(tt.kind, tt.rules, tt.input)
			assert.Equal(t, tt.msg, msg)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseInputDate(t *testing.T) {
	got, msg := parseInput(listview.KindDate, "required", "2025-01-31 14:30")
	assert.Empty(t, msg)
	want := time.Date(2025, 1, 31, 14, 30, 0, 0, time.Local).Format(time.RFC3339)
	assert.Equal(t, want, got)
}

func TestSingular(t *testing.T) {
	assert.Equal(t, "Customer", singular("Customers"))
	assert.Equal(t, "Sales Order", singular("Sales Orders"))
	assert.Equal(t, "Inventory", singular("Inventory"))
	assert.Equal(t, "Staff", singular("Staff"))
	assert.Equal(t, "Category", singular("Categories"))
}

func TestFormSetClearsError(t *testing.T) {
	f := &Form{Fields: []FormField{{Key: "email", Value: "x", Error: "must be an email address"}}}
	assert.False(t, f.Valid())
	f.Set("email", "a@b.co")
	assert.True(t, f.Valid())
	assert.Equal(t, "a@b.co", f.Get("email"))
	assert.Equal(t, "", f.Get("missing"))
	assert.Equal(t, "edit", EditMode.String())
}
