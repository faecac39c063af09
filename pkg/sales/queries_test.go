package sales

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendabot/vendabot-engine/pkg/catalog"
)

func TestVerifyCatalog_FullRegistry(t *testing.T) {
	require.NoError(t, VerifyCatalog(catalog.Operations()))
}

func TestVerifyCatalog_MissingBuilder(t *testing.T) {
	ops := append(catalog.Operations(), catalog.Operation("get_weather"))
	err := VerifyCatalog(ops)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get_weather")
}

func TestVerifyCatalog_UndeclaredBuilder(t *testing.T) {
	// Every operation except one: the orphaned builder must be reported.
	ops := catalog.Operations()[:len(catalog.Operations())-1]
	err := VerifyCatalog(ops)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not declared")
}

func TestBuildQuery_UnknownOperation(t *testing.T) {
	_, _, err := BuildQuery(catalog.Operation("get_weather"), nil)
	require.Error(t, err)
}

func TestBuildTopProducts_YearOnly(t *testing.T) {
	query, params, err := BuildQuery(catalog.OpTopProducts, map[string]any{"year": 2024})
	require.NoError(t, err)

	assert.Contains(t, query, "WHERE ano = $1")
	assert.Contains(t, query, "ORDER BY unidades_vendidas DESC")
	assert.Contains(t, query, "LIMIT $2")
	assert.Equal(t, []any{2024, 1}, params)
}

func TestBuildTopProducts_MonthAndYear(t *testing.T) {
	query, params, err := BuildQuery(catalog.OpTopProducts, map[string]any{
		"year":  2024,
		"month": 6,
		"limit": 5,
	})
	require.NoError(t, err)

	assert.Contains(t, query, "WHERE mes = $1 AND ano = $2")
	assert.Contains(t, query, "LIMIT $3")
	assert.Equal(t, []any{6, 2024, 5}, params)
}

func TestBuildTopProducts_MissingYear(t *testing.T) {
	_, _, err := BuildQuery(catalog.OpTopProducts, map[string]any{})
	require.Error(t, err)
}

func TestBuildMonthlyRevenue(t *testing.T) {
	query, params, err := BuildQuery(catalog.OpMonthlyRevenue, map[string]any{"month": 3, "year": 2024})
	require.NoError(t, err)

	assert.Contains(t, query, "SUM(receita)::float8 AS receita_total")
	assert.Contains(t, query, "SUM(unidades_vendidas)::bigint AS total_unidades")
	assert.Contains(t, query, "WHERE mes = $1 AND ano = $2")
	assert.Equal(t, []any{3, 2024}, params)
}

func TestBuildSalesByMonth(t *testing.T) {
	query, params, err := BuildQuery(catalog.OpSalesByMonth, map[string]any{"month": 6, "year": 2024})
	require.NoError(t, err)

	assert.Contains(t, query, "ORDER BY unidades_vendidas DESC")
	assert.Equal(t, []any{6, 2024}, params)
}

func TestBuildProductSales_SubstringMatch(t *testing.T) {
	query, params, err := BuildQuery(catalog.OpProductSales, map[string]any{
		"produto": "Galaxy S24",
		"month":   6,
		"year":    2024,
	})
	require.NoError(t, err)

	assert.Contains(t, query, "lower(modelo) LIKE $1")
	assert.Equal(t, []any{"%galaxy s24%", 6, 2024}, params)
}

func TestBuildManufacturerComparison_YearOnly(t *testing.T) {
	query, params, err := BuildQuery(catalog.OpManufacturerComparison, map[string]any{"year": 2024})
	require.NoError(t, err)

	assert.Contains(t, query, "GROUP BY fabricante")
	assert.Contains(t, query, "WHERE ano = $1")
	assert.NotContains(t, query, "mes = $2")
	assert.Equal(t, []any{2024}, params)
}

func TestBuildManufacturerComparison_WithMonth(t *testing.T) {
	query, params, err := BuildQuery(catalog.OpManufacturerComparison, map[string]any{"year": 2024, "month": 11})
	require.NoError(t, err)

	assert.Contains(t, query, "WHERE ano = $1 AND mes = $2")
	assert.Equal(t, []any{2024, 11}, params)
}

func TestBuildAverageMonthlySales(t *testing.T) {
	query, params, err := BuildQuery(catalog.OpAverageMonthlySales, map[string]any{"year": 2024})
	require.NoError(t, err)

	assert.Contains(t, query, "WITH vendas_mensais AS")
	assert.Contains(t, query, "AVG(receita_mensal)::float8 AS media_receita")
	assert.Equal(t, []any{2024}, params)
}

func TestBuildBestSellingMonth(t *testing.T) {
	query, params, err := BuildQuery(catalog.OpBestSellingMonth, map[string]any{"year": 2024})
	require.NoError(t, err)

	assert.Contains(t, query, "WHEN 6 THEN 'Junho'")
	assert.Contains(t, query, "ORDER BY receita_total DESC")
	assert.Contains(t, query, "LIMIT 1")
	assert.Equal(t, []any{2024}, params)
}

func TestBuildLeastSoldProducts_DefaultLimit(t *testing.T) {
	query, params, err := BuildQuery(catalog.OpLeastSoldProducts, map[string]any{"year": 2024})
	require.NoError(t, err)

	assert.Contains(t, query, "ORDER BY receita_total ASC")
	assert.Contains(t, query, "LIMIT $2")
	assert.Equal(t, []any{2024, 1}, params)
}

func TestBuildMultipleProductSales(t *testing.T) {
	query, params, err := BuildQuery(catalog.OpMultipleProductSales, map[string]any{
		"products": []string{"iPhone 15", "Galaxy S24 Ultra", "Moto G84"},
		"year":     2024,
	})
	require.NoError(t, err)

	assert.Contains(t, query, "lower(modelo) IN ($1, $2, $3)")
	assert.Contains(t, query, "ano = $4")
	assert.Equal(t, []any{"iphone 15", "galaxy s24 ultra", "moto g84", 2024}, params)
}

func TestBuildMultipleProductSales_EmptyList(t *testing.T) {
	_, _, err := BuildQuery(catalog.OpMultipleProductSales, map[string]any{
		"products": []string{},
		"year":     2024,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errEmptyProductList))
}

func TestBuilders_NeverInlineArguments(t *testing.T) {
	// Caller-supplied values must always be bound, never spliced into the
	// query text. A hostile product name stays out of the SQL.
	hostile := "'; DROP TABLE vendas_smartphones; --"

	query, params, err := BuildQuery(catalog.OpProductSales, map[string]any{
		"produto": hostile,
		"month":   6,
		"year":    2024,
	})
	require.NoError(t, err)
	assert.False(t, strings.Contains(query, "DROP TABLE"))
	assert.Contains(t, params[0], "drop table")
}
