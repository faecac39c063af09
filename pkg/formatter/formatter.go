// Package formatter renders query results as end-user prose. Formatting
// rules live in a lookup keyed by operation tag: each entry is a pure
// function from rows to text, independently testable, so adding an
// operation never grows a conditional chain.
package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vendabot/vendabot-engine/pkg/catalog"
	"github.com/vendabot/vendabot-engine/pkg/sales"
)

// maxDisplayRows caps how many entries a ranking renders. Longer results
// get a total-count annotation instead of the full list.
const maxDisplayRows = 10

// noDataMessage is the fixed reply for empty and error-marked results.
const noDataMessage = "❌ Não encontrei dados para essa consulta."

type formatFunc func(rows []sales.Row) (string, error)

var formatters = map[catalog.Operation]formatFunc{
	catalog.OpTopProducts:            formatTopProducts,
	catalog.OpMonthlyRevenue:         formatMonthlyRevenue,
	catalog.OpSalesByMonth:           formatSalesByMonth,
	catalog.OpProductSales:           formatProductSales,
	catalog.OpManufacturerComparison: formatManufacturerComparison,
	catalog.OpAverageMonthlySales:    formatAverageMonthlySales,
	catalog.OpBestSellingMonth:       formatBestSellingMonth,
	catalog.OpLeastSoldProducts:      formatLeastSoldProducts,
	catalog.OpMultipleProductSales:   formatMultipleProductSales,
}

// Format maps a query result to user-facing text. Empty results and
// error rows yield the fixed no-data message (with detail when present);
// a formatting fault inside a branch is caught and reported, never
// propagated.
func Format(op catalog.Operation, rows []sales.Row) string {
	if detail, isErr := sales.IsError(rows); isErr {
		if detail != "" {
			return noDataMessage + " Detalhe: " + detail
		}
		return noDataMessage
	}
	if len(rows) == 0 {
		return noDataMessage
	}

	format, ok := formatters[op]
	if !ok {
		return formatGeneric(rows)
	}

	text, err := format(rows)
	if err != nil {
		return fmt.Sprintf("😕 Desculpe, não consegui formatar a resposta. Detalhe do erro: %v", err)
	}
	return text
}

func formatTopProducts(rows []sales.Row) (string, error) {
	if len(rows) == 1 {
		p, err := productEntry(rows[0], "unidades_vendidas", "receita_total")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("📱 O produto mais vendido foi:\n\n🏆 %s (%s)\n   %s unidades vendidas\n   💰 R$ %s",
			p.model, p.manufacturer, p.units, p.revenue), nil
	}
	return renderRanking(rows, "📊 Ranking dos produtos mais vendidos", "unidades_vendidas", "receita_total", true)
}

func formatMonthlyRevenue(rows []sales.Row) (string, error) {
	revenue, err := moneyField(rows[0], "receita_total")
	if err != nil {
		return "", err
	}
	units, err := unitsField(rows[0], "total_unidades")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("💰 **Receita Total:** R$ %s\n📦 **Total de Unidades:** %s", revenue, units), nil
}

func formatSalesByMonth(rows []sales.Row) (string, error) {
	header := "📊 **Vendas do mês**"
	if len(rows) > maxDisplayRows {
		header = fmt.Sprintf("📊 **Vendas do mês** (mostrando top %d de %d produtos)", maxDisplayRows, len(rows))
		rows = rows[:maxDisplayRows]
	}

	lines := []string{header + ":\n"}
	for _, row := range rows {
		p, err := productEntry(row, "unidades_vendidas", "receita")
		if err != nil {
			return "", err
		}
		lines = append(lines,
			fmt.Sprintf("📱 %s (%s)", p.model, p.manufacturer),
			fmt.Sprintf("   📦 %s unidades", p.units),
			fmt.Sprintf("   💰 R$ %s\n", p.revenue))
	}
	return strings.Join(lines, "\n"), nil
}

func formatProductSales(rows []sales.Row) (string, error) {
	p, err := productEntry(rows[0], "unidades_vendidas", "receita")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("📱 Vendas de %s (%s):\n\n   📦 %s unidades vendidas\n   💰 R$ %s",
		p.model, p.manufacturer, p.units, p.revenue), nil
}

func formatManufacturerComparison(rows []sales.Row) (string, error) {
	lines := []string{"📊 **Comparativo por Fabricante**:\n"}
	for _, row := range rows {
		name, err := stringField(row, "fabricante")
		if err != nil {
			return "", err
		}
		units, err := unitsField(row, "total_unidades")
		if err != nil {
			return "", err
		}
		revenue, err := moneyField(row, "receita_total")
		if err != nil {
			return "", err
		}
		lines = append(lines,
			fmt.Sprintf("🏢 **%s**", name),
			fmt.Sprintf("   📦 Total de Unidades: %s", units),
			fmt.Sprintf("   💰 Receita Total: R$ %s\n", revenue))
	}
	return strings.Join(lines, "\n"), nil
}

func formatAverageMonthlySales(rows []sales.Row) (string, error) {
	revenue, err := moneyField(rows[0], "media_receita")
	if err != nil {
		return "", err
	}
	units, err := moneyField(rows[0], "media_unidades")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("📊 **Média Mensal de Vendas**:\n\n   💰 Faturamento Médio: R$ %s\n   📦 Unidades Médias: %s",
		revenue, units), nil
}

func formatBestSellingMonth(rows []sales.Row) (string, error) {
	month, err := stringField(rows[0], "mes_nome")
	if err != nil {
		return "", err
	}
	revenue, err := moneyField(rows[0], "receita_total")
	if err != nil {
		return "", err
	}
	units, err := unitsField(rows[0], "total_unidades")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("🏆 **Melhor Mês de Vendas**:\n\n   🗓️ Mês: %s\n   💰 Faturamento: R$ %s\n   📦 Unidades Vendidas: %s",
		month, revenue, units), nil
}

func formatLeastSoldProducts(rows []sales.Row) (string, error) {
	if len(rows) == 1 {
		p, err := productEntry(rows[0], "unidades_vendidas", "receita_total")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("📉 O produto menos vendido foi:\n\n   %s (%s)\n   %s unidades vendidas\n   💰 R$ %s",
			p.model, p.manufacturer, p.units, p.revenue), nil
	}
	return renderRanking(rows, "📉 Ranking dos produtos menos vendidos", "unidades_vendidas", "receita_total", false)
}

func formatMultipleProductSales(rows []sales.Row) (string, error) {
	header := "📊 **Comparativo de Vendas**"
	if len(rows) > maxDisplayRows {
		header = fmt.Sprintf("📊 **Comparativo de Vendas** (mostrando top %d de %d)", maxDisplayRows, len(rows))
		rows = rows[:maxDisplayRows]
	}

	lines := []string{header + ":\n"}
	for _, row := range rows {
		p, err := productEntry(row, "unidades_vendidas", "receita_total")
		if err != nil {
			return "", err
		}
		lines = append(lines,
			fmt.Sprintf("📱 %s (%s)", p.model, p.manufacturer),
			fmt.Sprintf("   📦 %s unidades vendidas", p.units),
			fmt.Sprintf("   💰 R$ %s\n", p.revenue))
	}
	return strings.Join(lines, "\n"), nil
}

// renderRanking renders a multi-row ranking capped at maxDisplayRows.
// Medal decoration applies to the first three positions only; remaining
// positions get their ordinal.
func renderRanking(rows []sales.Row, header, unitsKey, revenueKey string, medals bool) (string, error) {
	total := len(rows)
	if total > maxDisplayRows {
		header = fmt.Sprintf("%s (mostrando top %d de %d)", header, maxDisplayRows, total)
		rows = rows[:maxDisplayRows]
	}

	lines := []string{header + ":\n"}
	for i, row := range rows {
		p, err := productEntry(row, unitsKey, revenueKey)
		if err != nil {
			return "", err
		}
		lines = append(lines,
			fmt.Sprintf("%s %s (%s)", rankMark(i+1, medals), p.model, p.manufacturer),
			fmt.Sprintf("   📦 %s unidades", p.units),
			fmt.Sprintf("   💰 R$ %s\n", p.revenue))
	}
	return strings.Join(lines, "\n"), nil
}

func rankMark(position int, medals bool) string {
	if medals {
		switch position {
		case 1:
			return "🥇"
		case 2:
			return "🥈"
		case 3:
			return "🥉"
		}
	}
	return fmt.Sprintf("%dº", position)
}

// formatGeneric is the fallback for an operation with no registered
// formatter: it lists every row's fields verbatim.
func formatGeneric(rows []sales.Row) string {
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		keys := make([]string, 0, len(row))
		for k := range row {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, fmt.Sprintf("%s: %v", k, row[k]))
		}
		lines = append(lines, strings.Join(pairs, ", "))
	}
	return strings.Join(lines, "\n")
}
