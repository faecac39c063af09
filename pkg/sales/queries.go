package sales

import (
	"fmt"
	"strings"

	"github.com/vendabot/vendabot-engine/pkg/catalog"
)

// builderFunc produces the parameterized SQL for one operation from a
// normalized argument map. Builders are pure: all caller-supplied values
// end up in the parameter list, never in the query text. The only
// generated fragment is the IN (...) placeholder list, whose length comes
// from a list argument but whose values are still bound.
type builderFunc func(args map[string]any) (string, []any, error)

// builders binds every operation tag to its query builder. This map and
// the catalog registry must cover exactly the same set; VerifyCatalog
// enforces that at startup.
var builders = map[catalog.Operation]builderFunc{
	catalog.OpTopProducts:            buildTopProducts,
	catalog.OpMonthlyRevenue:         buildMonthlyRevenue,
	catalog.OpSalesByMonth:           buildSalesByMonth,
	catalog.OpProductSales:           buildProductSales,
	catalog.OpManufacturerComparison: buildManufacturerComparison,
	catalog.OpAverageMonthlySales:    buildAverageMonthlySales,
	catalog.OpBestSellingMonth:       buildBestSellingMonth,
	catalog.OpLeastSoldProducts:      buildLeastSoldProducts,
	catalog.OpMultipleProductSales:   buildMultipleProductSales,
}

// BuildQuery returns the SQL and bound parameters for an operation.
func BuildQuery(op catalog.Operation, args map[string]any) (string, []any, error) {
	build, ok := builders[op]
	if !ok {
		return "", nil, fmt.Errorf("no query builder for operation %q", op)
	}
	return build(args)
}

// VerifyCatalog checks that the catalog registry and the builder set
// cover exactly the same operations. Drift between the two is a
// programming error and must fail at startup, not at request time.
func VerifyCatalog(ops []catalog.Operation) error {
	declared := make(map[catalog.Operation]bool, len(ops))
	for _, op := range ops {
		declared[op] = true
		if _, ok := builders[op]; !ok {
			return fmt.Errorf("catalog operation %q has no query builder", op)
		}
	}
	for op := range builders {
		if !declared[op] {
			return fmt.Errorf("query builder %q is not declared in the catalog", op)
		}
	}
	return nil
}

func argInt(args map[string]any, name string) (int, bool) {
	v, ok := args[name]
	if !ok {
		return 0, false
	}
	n, ok := v.(int)
	return n, ok
}

func argString(args map[string]any, name string) (string, bool) {
	v, ok := args[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func argStrings(args map[string]any, name string) ([]string, bool) {
	v, ok := args[name]
	if !ok {
		return nil, false
	}
	list, ok := v.([]string)
	return list, ok
}

// limitOrDefault returns the limit argument, defaulting to 1.
func limitOrDefault(args map[string]any) int {
	if limit, ok := argInt(args, "limit"); ok && limit > 0 {
		return limit
	}
	return 1
}

func buildTopProducts(args map[string]any) (string, []any, error) {
	year, ok := argInt(args, "year")
	if !ok {
		return "", nil, fmt.Errorf("get_top_products: year is required")
	}

	var (
		where  string
		params []any
	)
	if month, ok := argInt(args, "month"); ok {
		where = "WHERE mes = $1 AND ano = $2"
		params = []any{month, year}
	} else {
		where = "WHERE ano = $1"
		params = []any{year}
	}

	params = append(params, limitOrDefault(args))
	query := fmt.Sprintf(`
		SELECT
			modelo,
			fabricante,
			SUM(unidades_vendidas)::bigint AS unidades_vendidas,
			SUM(receita)::float8 AS receita_total
		FROM vendas_smartphones
		%s
		GROUP BY modelo, fabricante
		ORDER BY unidades_vendidas DESC
		LIMIT $%d`, where, len(params))

	return query, params, nil
}

func buildMonthlyRevenue(args map[string]any) (string, []any, error) {
	month, ok := argInt(args, "month")
	if !ok {
		return "", nil, fmt.Errorf("get_monthly_revenue: month is required")
	}
	year, ok := argInt(args, "year")
	if !ok {
		return "", nil, fmt.Errorf("get_monthly_revenue: year is required")
	}

	query := `
		SELECT
			SUM(receita)::float8 AS receita_total,
			SUM(unidades_vendidas)::bigint AS total_unidades
		FROM vendas_smartphones
		WHERE mes = $1 AND ano = $2`

	return query, []any{month, year}, nil
}

func buildSalesByMonth(args map[string]any) (string, []any, error) {
	month, ok := argInt(args, "month")
	if !ok {
		return "", nil, fmt.Errorf("get_product_sales_by_month: month is required")
	}
	year, ok := argInt(args, "year")
	if !ok {
		return "", nil, fmt.Errorf("get_product_sales_by_month: year is required")
	}

	query := `
		SELECT
			modelo,
			fabricante,
			unidades_vendidas,
			receita::float8 AS receita
		FROM vendas_smartphones
		WHERE mes = $1 AND ano = $2
		ORDER BY unidades_vendidas DESC`

	return query, []any{month, year}, nil
}

// buildProductSales matches the product name case-insensitively as a
// substring: "galaxy" finds "Samsung Galaxy S24 Ultra".
func buildProductSales(args map[string]any) (string, []any, error) {
	produto, ok := argString(args, "produto")
	if !ok {
		return "", nil, fmt.Errorf("get_product_sales: produto is required")
	}
	month, ok := argInt(args, "month")
	if !ok {
		return "", nil, fmt.Errorf("get_product_sales: month is required")
	}
	year, ok := argInt(args, "year")
	if !ok {
		return "", nil, fmt.Errorf("get_product_sales: year is required")
	}

	query := `
		SELECT
			modelo,
			fabricante,
			unidades_vendidas,
			receita::float8 AS receita
		FROM vendas_smartphones
		WHERE lower(modelo) LIKE $1 AND mes = $2 AND ano = $3`

	return query, []any{"%" + strings.ToLower(produto) + "%", month, year}, nil
}

func buildManufacturerComparison(args map[string]any) (string, []any, error) {
	year, ok := argInt(args, "year")
	if !ok {
		return "", nil, fmt.Errorf("get_comparison_by_manufacturer: year is required")
	}

	where := "WHERE ano = $1"
	params := []any{year}
	if month, ok := argInt(args, "month"); ok {
		where += " AND mes = $2"
		params = append(params, month)
	}

	query := fmt.Sprintf(`
		SELECT
			fabricante,
			SUM(unidades_vendidas)::bigint AS total_unidades,
			SUM(receita)::float8 AS receita_total
		FROM vendas_smartphones
		%s
		GROUP BY fabricante
		ORDER BY total_unidades DESC`, where)

	return query, params, nil
}

func buildAverageMonthlySales(args map[string]any) (string, []any, error) {
	year, ok := argInt(args, "year")
	if !ok {
		return "", nil, fmt.Errorf("get_average_monthly_sales: year is required")
	}

	query := `
		WITH vendas_mensais AS (
			SELECT
				mes,
				SUM(receita) AS receita_mensal,
				SUM(unidades_vendidas) AS unidades_mensais
			FROM vendas_smartphones
			WHERE ano = $1
			GROUP BY mes
		)
		SELECT
			AVG(receita_mensal)::float8 AS media_receita,
			AVG(unidades_mensais)::float8 AS media_unidades
		FROM vendas_mensais`

	return query, []any{year}, nil
}

func buildBestSellingMonth(args map[string]any) (string, []any, error) {
	year, ok := argInt(args, "year")
	if !ok {
		return "", nil, fmt.Errorf("get_best_selling_month: year is required")
	}

	query := `
		SELECT
			CASE mes
				WHEN 1 THEN 'Janeiro'
				WHEN 2 THEN 'Fevereiro'
				WHEN 3 THEN 'Março'
				WHEN 4 THEN 'Abril'
				WHEN 5 THEN 'Maio'
				WHEN 6 THEN 'Junho'
				WHEN 7 THEN 'Julho'
				WHEN 8 THEN 'Agosto'
				WHEN 9 THEN 'Setembro'
				WHEN 10 THEN 'Outubro'
				WHEN 11 THEN 'Novembro'
				WHEN 12 THEN 'Dezembro'
			END AS mes_nome,
			SUM(receita)::float8 AS receita_total,
			SUM(unidades_vendidas)::bigint AS total_unidades
		FROM vendas_smartphones
		WHERE ano = $1
		GROUP BY mes
		ORDER BY receita_total DESC
		LIMIT 1`

	return query, []any{year}, nil
}

func buildLeastSoldProducts(args map[string]any) (string, []any, error) {
	year, ok := argInt(args, "year")
	if !ok {
		return "", nil, fmt.Errorf("get_least_sold_products: year is required")
	}

	query := `
		SELECT
			modelo,
			fabricante,
			SUM(unidades_vendidas)::bigint AS unidades_vendidas,
			SUM(receita)::float8 AS receita_total
		FROM vendas_smartphones
		WHERE ano = $1
		GROUP BY modelo, fabricante
		ORDER BY receita_total ASC
		LIMIT $2`

	return query, []any{year, limitOrDefault(args)}, nil
}

// buildMultipleProductSales matches names exactly (case-insensitive), not
// by substring: the IN list compares lowered model names for equality.
func buildMultipleProductSales(args map[string]any) (string, []any, error) {
	products, ok := argStrings(args, "products")
	if !ok {
		return "", nil, fmt.Errorf("get_multiple_product_sales: products is required")
	}
	year, ok := argInt(args, "year")
	if !ok {
		return "", nil, fmt.Errorf("get_multiple_product_sales: year is required")
	}
	if len(products) == 0 {
		return "", nil, errEmptyProductList
	}

	placeholders := make([]string, len(products))
	params := make([]any, 0, len(products)+1)
	for i, p := range products {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		params = append(params, strings.ToLower(p))
	}
	params = append(params, year)

	query := fmt.Sprintf(`
		SELECT
			modelo,
			fabricante,
			SUM(unidades_vendidas)::bigint AS unidades_vendidas,
			SUM(receita)::float8 AS receita_total
		FROM vendas_smartphones
		WHERE lower(modelo) IN (%s) AND ano = $%d
		GROUP BY modelo, fabricante
		ORDER BY receita_total DESC`, strings.Join(placeholders, ", "), len(params))

	return query, params, nil
}
