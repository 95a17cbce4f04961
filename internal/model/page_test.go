package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageRequest(t *testing.T) {
	tests := []struct {
		name     string
		page     string
		limit    string
		maxLimit int
		want     PageRequest
	}{
		{"missing values use defaults", "", "", 0, PageRequest{Page: 1, Limit: 10}},
		{"numeric values are kept", "3", "25", 0, PageRequest{Page: 3, Limit: 25}},
		{"non-numeric falls back", "abc", "ten", 0, PageRequest{Page: 1, Limit: 10}},
		{"zero falls back", "0", "0", 0, PageRequest{Page: 1, Limit: 10}},
		{"negative falls back", "-2", "-5", 0, PageRequest{Page: 1, Limit: 10}},
		{"no cap when maxLimit is zero", "1", "5000", 0, PageRequest{Page: 1, Limit: 5000}},
		{"cap applies when configured", "2", "500", 100, PageRequest{Page: 2, Limit: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePageRequest(tt.page, tt.limit, tt.maxLimit))
		})
	}
}

func TestPageRequest_Offset(t *testing.T) {
	assert.Equal(t, 0, PageRequest{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 40, PageRequest{Page: 3, Limit: 20}.Offset())
}

func TestPageRequest_OffsetSaturatesPastTheEnd(t *testing.T) {
	req := ParsePageRequest("1000000000000000000", "10", 100)
	require.Equal(t, 1000000000000000000, req.Page)

	assert.Equal(t, math.MaxInt, req.Offset())
	assert.Equal(t, math.MaxInt, PageRequest{Page: math.MaxInt, Limit: 100}.Offset())
	assert.Equal(t, (math.MaxInt/100)*100, PageRequest{Page: math.MaxInt/100 + 1, Limit: 100}.Offset())
}

func TestNewPage_PageCount(t *testing.T) {
	tests := []struct {
		total, limit, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{2, 1, 2},
	}

	for _, tt := range tests {
		p := NewPage([]int{}, PageRequest{Page: 1, Limit: tt.limit}, tt.total)
		assert.Equal(t, tt.want, p.Pagination.Pages, "total=%d limit=%d", tt.total, tt.limit)
	}
}
