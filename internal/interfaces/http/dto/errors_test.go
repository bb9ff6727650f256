package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"NOT_FOUND", http.StatusNotFound},
		{"FORBIDDEN", http.StatusForbidden},
		{"NOT_YOUR_TURN", http.StatusForbidden},
		{"BAD_CREDENTIALS", http.StatusUnauthorized},
		{"ALREADY_DECIDED", http.StatusConflict},
		{"ALREADY_GRANTED", http.StatusConflict},
		{"WORKFLOW_EXISTS", http.StatusConflict},
		{"CONCURRENCY_CONFLICT", http.StatusConflict},
		{"INVALID_WEEK", http.StatusBadRequest},
		{"INTERNAL_ERROR", http.StatusInternalServerError},
		// Business rule violations without an explicit mapping.
		{"NO_RATE", http.StatusUnprocessableEntity},
		{"RATE_OUT_OF_BAND", http.StatusUnprocessableEntity},
		{"REQUIRED_SLOT", http.StatusUnprocessableEntity},
		{"TERMINAL", http.StatusUnprocessableEntity},
		{"NOT_APPROVED", http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestListRequestToFilter(t *testing.T) {
	filter := ListRequest{}.ToFilter()
	assert.Equal(t, 1, filter.Page)
	assert.Equal(t, 20, filter.PageSize)
	assert.Equal(t, "created_at", filter.OrderBy)

	filter = ListRequest{Page: 3, PageSize: 50, OrderBy: "number", OrderDir: "asc", Search: "Q2025"}.ToFilter()
	assert.Equal(t, 3, filter.Page)
	assert.Equal(t, 50, filter.PageSize)
	assert.Equal(t, "number", filter.OrderBy)
	assert.Equal(t, "asc", filter.OrderDir)
	assert.Equal(t, "Q2025", filter.Search)
}
