// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/folio/pkg/pagination"
)

func TestFromRequest(t *testing.T) {
	cases := []struct {
		query string
		want  pagination.Params
	}{
		{"", pagination.Params{Page: 1, Limit: 20}},
		{"?page=3&limit=10", pagination.Params{Page: 3, Limit: 10}},
		{"?page=-1&limit=abc", pagination.Params{Page: 1, Limit: 20}},
		{"?limit=1000", pagination.Params{Page: 1, Limit: 100}},
	}

	for _, tc := range cases {
		request := httptest.NewRequest("GET", "/api/v1/books"+tc.query, nil)
		assert.Equal(t, tc.want, pagination.FromRequest(request), tc.query)
	}
}

func TestNewMeta(t *testing.T) {
	params := pagination.Params{Page: 2, Limit: 10}

	meta := pagination.NewMeta(params, 25)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.Equal(t, 10, params.Offset())

	assert.False(t, pagination.NewMeta(pagination.Params{Page: 3, Limit: 10}, 25).HasNext)
}
