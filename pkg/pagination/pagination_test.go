package pagination_test

import (
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/palmer/pkg/pagination"
	"github.com/JaimeStill/palmer/pkg/query"
)

func config(t *testing.T) pagination.Config {
	t.Helper()
	cfg := pagination.Config{}
	require.NoError(t, cfg.Finalize(nil))
	return cfg
}

func TestPageRequestFromQuery(t *testing.T) {
	cfg := config(t)

	tests := []struct {
		name  string
		query string
		want  pagination.PageRequest
	}{
		{"defaults", "", pagination.PageRequest{Page: 1, PageSize: 25}},
		{"explicit", "page=3&page_size=10&sort=-created_at", pagination.PageRequest{
			Page:     3,
			PageSize: 10,
			Sort:     []query.SortField{{Field: "created_at", Descending: true}},
		}},
		{"clamped", "page=-4&page_size=5000", pagination.PageRequest{Page: 1, PageSize: 200}},
		{"garbage", "page=abc&page_size=xyz", pagination.PageRequest{Page: 1, PageSize: 25}},
		{"page at int limit", "page=9223372036854775807", pagination.PageRequest{Page: math.MaxInt / 25, PageSize: 25}},
		{"page past int limit", "page=99999999999999999999&page_size=200", pagination.PageRequest{Page: math.MaxInt / 200, PageSize: 200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, pagination.PageRequestFromQuery(values, cfg))
		})
	}
}

func TestHugePageKeepsOffsetNonNegative(t *testing.T) {
	values := url.Values{"page": {"9223372036854775807"}, "page_size": {"200"}}
	req := pagination.PageRequestFromQuery(values, config(t))

	projection := query.NewProjectionMap("public", "predictions", "p").Project("id", "id")
	sql, _ := query.NewBuilder(projection).BuildPage(req.Page, req.PageSize)

	assert.NotContains(t, sql, "OFFSET -")
}

func TestNewPageResult(t *testing.T) {
	req := pagination.PageRequest{Page: 2, PageSize: 10}

	result := pagination.NewPageResult([]string{"a"}, 21, req)
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, 2, result.Page)

	empty := pagination.NewPageResult[string](nil, 0, req)
	assert.Equal(t, 1, empty.TotalPages)
	assert.NotNil(t, empty.Data)
}

func TestConfigValidation(t *testing.T) {
	cfg := pagination.Config{DefaultPageSize: 50, MaxPageSize: 10}
	assert.Error(t, cfg.Finalize(nil))
}
