package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/travel-crm/backend/internal/domain"
)

func intPtr(i int) *int { return &i }

func TestNewPaginationParams_Defaults(t *testing.T) {
	p := domain.NewPaginationParams(nil, nil)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 5, p.Limit)
	assert.Equal(t, 0, p.Offset())
}

func TestNewPaginationParams_CapsLimit(t *testing.T) {
	p := domain.NewPaginationParams(intPtr(3), intPtr(500))

	assert.Equal(t, 3, p.Page)
	assert.Equal(t, domain.MaxLimit, p.Limit)
	assert.Equal(t, 200, p.Offset())
}

func TestNewPaginationParams_IgnoresNonPositive(t *testing.T) {
	p := domain.NewPaginationParams(intPtr(0), intPtr(-1))

	assert.Equal(t, domain.PaginationParams{Page: 1, Limit: 5}, p)
}

func TestPaginationParams_TotalPages(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		want  int
	}{
		{total: 0, limit: 5, want: 0},
		{total: 1, limit: 5, want: 1},
		{total: 5, limit: 5, want: 1},
		{total: 6, limit: 5, want: 2},
		{total: 11, limit: 1, want: 11},
	}
	for _, tc := range cases {
		p := domain.PaginationParams{Page: 1, Limit: tc.limit}
		assert.Equal(t, tc.want, p.TotalPages(tc.total), "total=%d limit=%d", tc.total, tc.limit)
	}
}

func TestNewPage_NilItemsBecomeEmpty(t *testing.T) {
	page := domain.NewPage[domain.Customer](nil, 0, domain.PaginationParams{Page: 4, Limit: 5})

	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
	assert.Equal(t, 0, page.TotalPages)
	assert.Equal(t, 4, page.Page)
}
