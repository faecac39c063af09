// Package catalog is the single source of truth for the analytical
// operations the engine can run. The registry is declared statically and
// never changes during the process lifetime; the same descriptors are
// rendered to the decision service and used to validate its argument
// payloads before execution.
package catalog

import (
	"github.com/vendabot/vendabot-engine/pkg/llm"
)

// Operation identifies one analytical query. The string value doubles as
// the tool name presented to the decision service.
type Operation string

const (
	OpTopProducts            Operation = "get_top_products"
	OpMonthlyRevenue         Operation = "get_monthly_revenue"
	OpSalesByMonth           Operation = "get_product_sales_by_month"
	OpProductSales           Operation = "get_product_sales"
	OpManufacturerComparison Operation = "get_comparison_by_manufacturer"
	OpAverageMonthlySales    Operation = "get_average_monthly_sales"
	OpBestSellingMonth       Operation = "get_best_selling_month"
	OpLeastSoldProducts      Operation = "get_least_sold_products"
	OpMultipleProductSales   Operation = "get_multiple_product_sales"
)

// ParamType enumerates the parameter types a descriptor may declare.
type ParamType string

const (
	TypeString     ParamType = "string"
	TypeInteger    ParamType = "integer"
	TypeNumber     ParamType = "number"
	TypeBoolean    ParamType = "boolean"
	TypeStringList ParamType = "array"
)

// Parameter declares one operation parameter. Parameters not marked
// required have defaults known to the query executor.
type Parameter struct {
	Name        string
	Type        ParamType
	Required    bool
	Description string
}

// Descriptor declares one operation: its tool name, the description shown
// to the decision service, and its ordered parameter schema.
type Descriptor struct {
	Operation   Operation
	Description string
	Parameters  []Parameter
}

// descriptors is the full registry. Order is stable: it is the order the
// operations are enumerated to the decision service.
var descriptors = []Descriptor{
	{
		Operation:   OpTopProducts,
		Description: "Retorna os N produtos mais vendidos. Pode ser filtrado por ano ou por mês e ano.",
		Parameters: []Parameter{
			{Name: "year", Type: TypeInteger, Required: true, Description: "Ano das vendas, ex: 2024"},
			{Name: "month", Type: TypeInteger, Required: false, Description: "Mês das vendas (1-12), opcional"},
			{Name: "limit", Type: TypeInteger, Required: false, Description: "Quantos produtos retornar (padrão 1)"},
		},
	},
	{
		Operation:   OpMonthlyRevenue,
		Description: "Retorna a receita total e o total de unidades vendidas de um mês e ano específicos.",
		Parameters: []Parameter{
			{Name: "month", Type: TypeInteger, Required: true, Description: "Mês das vendas (1-12)"},
			{Name: "year", Type: TypeInteger, Required: true, Description: "Ano das vendas"},
		},
	},
	{
		Operation:   OpSalesByMonth,
		Description: "Retorna todos os produtos vendidos em um mês e ano específicos, ordenados por unidades vendidas.",
		Parameters: []Parameter{
			{Name: "month", Type: TypeInteger, Required: true, Description: "Mês das vendas (1-12)"},
			{Name: "year", Type: TypeInteger, Required: true, Description: "Ano das vendas"},
		},
	},
	{
		Operation:   OpProductSales,
		Description: "Retorna as vendas de um produto específico em um mês e ano específicos. O nome do produto pode ser parcial.",
		Parameters: []Parameter{
			{Name: "produto", Type: TypeString, Required: true, Description: "Nome (ou parte do nome) do produto"},
			{Name: "month", Type: TypeInteger, Required: true, Description: "Mês das vendas (1-12)"},
			{Name: "year", Type: TypeInteger, Required: true, Description: "Ano das vendas"},
		},
	},
	{
		Operation:   OpManufacturerComparison,
		Description: "Retorna o total de vendas por fabricante. Pode ser filtrado por ano ou por mês e ano.",
		Parameters: []Parameter{
			{Name: "year", Type: TypeInteger, Required: true, Description: "Ano das vendas"},
			{Name: "month", Type: TypeInteger, Required: false, Description: "Mês das vendas (1-12), opcional"},
		},
	},
	{
		Operation:   OpAverageMonthlySales,
		Description: "Calcula a média de receita e unidades vendidas por mês em um ano.",
		Parameters: []Parameter{
			{Name: "year", Type: TypeInteger, Required: true, Description: "Ano das vendas"},
		},
	},
	{
		Operation:   OpBestSellingMonth,
		Description: "Retorna o mês com a maior receita de vendas em um ano.",
		Parameters: []Parameter{
			{Name: "year", Type: TypeInteger, Required: true, Description: "Ano das vendas"},
		},
	},
	{
		Operation:   OpLeastSoldProducts,
		Description: "Retorna os N produtos menos vendidos de um ano, com base na receita total.",
		Parameters: []Parameter{
			{Name: "year", Type: TypeInteger, Required: true, Description: "Ano das vendas"},
			{Name: "limit", Type: TypeInteger, Required: false, Description: "Quantos produtos retornar (padrão 1)"},
		},
	},
	{
		Operation:   OpMultipleProductSales,
		Description: "Retorna as vendas de múltiplos produtos em um ano específico. Os nomes devem ser exatos.",
		Parameters: []Parameter{
			{Name: "products", Type: TypeStringList, Required: true, Description: "Lista com os nomes exatos dos produtos"},
			{Name: "year", Type: TypeInteger, Required: true, Description: "Ano das vendas"},
		},
	},
}

// index maps tool names to descriptors for lookup.
var index = func() map[Operation]Descriptor {
	m := make(map[Operation]Descriptor, len(descriptors))
	for _, d := range descriptors {
		m[d.Operation] = d
	}
	return m
}()

// Descriptors returns every operation descriptor in registry order.
func Descriptors() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	copy(out, descriptors)
	return out
}

// Operations returns every operation tag in registry order.
func Operations() []Operation {
	out := make([]Operation, 0, len(descriptors))
	for _, d := range descriptors {
		out = append(out, d.Operation)
	}
	return out
}

// Get looks up the descriptor for a tool name.
func Get(name string) (Descriptor, bool) {
	d, ok := index[Operation(name)]
	return d, ok
}

// ToolDefinitions renders the registry as JSON-schema tool definitions
// for the decision service.
func ToolDefinitions() []llm.ToolDefinition {
	out := make([]llm.ToolDefinition, 0, len(descriptors))
	for _, d := range descriptors {
		props := make(map[string]llm.ParameterProperty, len(d.Parameters))
		required := make([]string, 0, len(d.Parameters))
		for _, p := range d.Parameters {
			prop := llm.ParameterProperty{
				Type:        string(p.Type),
				Description: p.Description,
			}
			if p.Type == TypeStringList {
				prop.Items = string(TypeString)
			}
			props[p.Name] = prop
			if p.Required {
				required = append(required, p.Name)
			}
		}
		out = append(out, llm.NewToolDefinition(string(d.Operation), d.Description, props, required))
	}
	return out
}
