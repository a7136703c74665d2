package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortColumn(t *testing.T) {
	tests := []struct {
		field string
		want  string
	}{
		{"payment_time", "order_statuses.payment_time"},
		{"transaction_amount", "order_statuses.transaction_amount"},
		{"order_amount", "order_statuses.order_amount"},
		{"collect_id", "order_statuses.collect_id"},
		{"custom_order_id", "orders.custom_order_id"},
		{"status", "order_statuses.status"},
		{"school_id", "orders.school_id"},
		{"created_at", "orders.created_at"},
		{"createdAt", "orders.created_at"},
		{"", "orders.created_at"},
		{"__proto__", "orders.created_at"},
		{"payment_time; DROP TABLE orders", "orders.created_at"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SortColumn(tt.field), "field %q", tt.field)
	}
}

func TestSortDirection(t *testing.T) {
	assert.Equal(t, "ASC", SortDirection("asc"))
	assert.Equal(t, "ASC", SortDirection("ASC"))
	assert.Equal(t, "DESC", SortDirection("desc"))
	assert.Equal(t, "DESC", SortDirection(""))
	assert.Equal(t, "DESC", SortDirection("sideways"))
}

func TestParseStatusFilter(t *testing.T) {
	assert.Nil(t, ParseStatusFilter(""))
	assert.Equal(t, []string{"SUCCESS"}, ParseStatusFilter("success"))
	assert.Equal(t, []string{"SUCCESS", "FAILED"}, ParseStatusFilter("SUCCESS,FAILED"))
	assert.Equal(t, []string{"SUCCESS", "PENDING"}, ParseStatusFilter(" success , pending "))
	assert.Equal(t, []string{"FAILED"}, ParseStatusFilter(",failed,,"))
}

func TestClampPageAndLimit(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0))
	assert.Equal(t, 1, ClampPage(-3))
	assert.Equal(t, 7, ClampPage(7))
	assert.Equal(t, 1, ClampLimit(0))
	assert.Equal(t, 50, ClampLimit(50))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, int64(0), TotalPages(0, 10))
	assert.Equal(t, int64(1), TotalPages(1, 10))
	assert.Equal(t, int64(1), TotalPages(10, 10))
	assert.Equal(t, int64(3), TotalPages(25, 10))
	assert.Equal(t, int64(25), TotalPages(25, 0))
}
