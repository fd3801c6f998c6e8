package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeedbackQueryNormalize(t *testing.T) {
	tests := []struct {
		name     string
		query    FeedbackQuery
		expected FeedbackQuery
	}{
		{
			name:  "zero value gets the feed defaults",
			query: FeedbackQuery{},
			expected: FeedbackQuery{
				Filter: FilterAll, Sort: SortDate, Order: OrderDesc,
				Page: 1, PageSize: DefaultPageSize,
			},
		},
		{
			name: "set fields are preserved",
			query: FeedbackQuery{
				Filter: FilterPending, Sort: SortRating, Order: OrderAsc,
				Page: 3, PageSize: 12,
			},
			expected: FeedbackQuery{
				Filter: FilterPending, Sort: SortRating, Order: OrderAsc,
				Page: 3, PageSize: 12,
			},
		},
		{
			name:  "non-positive page and size are clamped",
			query: FeedbackQuery{Filter: FilterApproved, Page: -2, PageSize: 0},
			expected: FeedbackQuery{
				Filter: FilterApproved, Sort: SortDate, Order: OrderDesc,
				Page: 1, PageSize: DefaultPageSize,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.query.Normalize())
		})
	}
}
