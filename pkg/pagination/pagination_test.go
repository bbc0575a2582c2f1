// Copyright (c) 2026 Eventos. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/eventos/pkg/pagination"
)

/*
TestFromRequest verifies parsing and clamping of page/limit.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		query string
		want  pagination.Params
	}{
		{"", pagination.Params{Page: 1, Limit: 20}},
		{"?page=3&limit=10", pagination.Params{Page: 3, Limit: 10}},
		{"?page=-1&limit=1000", pagination.Params{Page: 1, Limit: 20}},
		{"?page=abc&limit=xyz", pagination.Params{Page: 1, Limit: 20}},
	}

	for _, tt := range tests {
		request := httptest.NewRequest("GET", "/events"+tt.query, nil)
		assert.Equal(t, tt.want, pagination.FromRequest(request), tt.query)
	}
}

/*
TestMeta verifies offset and total page arithmetic.
*/
func TestMeta(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, pagination.Params{Page: 3, Limit: 20}.Offset())

	meta := pagination.NewMeta(2, 20, 41)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 0, pagination.NewMeta(1, 20, 0).TotalPages)
}

/*
TestPage verifies that an empty page still encodes as a list.
*/
func TestPage(t *testing.T) {
	page := pagination.NewPage[string](nil, 0, pagination.Params{Page: 1, Limit: 20})
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)

	page = pagination.NewPage([]string{"a", "b"}, 45, pagination.Params{Page: 2, Limit: 20})
	assert.Equal(t, pagination.Meta{Page: 2, Limit: 20, Total: 45, TotalPages: 3}, page.Meta())
}
