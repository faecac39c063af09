package llm

import (
	"testing"
)

func TestExtractJSONObject_PlainObject(t *testing.T) {
	input := `{"tool": "get_top_products", "params": {"year": 2024}}`
	result, attempted, err := ExtractJSONObject(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !attempted {
		t.Fatal("expected attempted=true")
	}
	if result != input {
		t.Errorf("expected %q, got %q", input, result)
	}
}

func TestExtractJSONObject_SurroundedByProse(t *testing.T) {
	input := `Claro! Aqui está: {"tool": "get_monthly_revenue", "params": {"month": 6, "year": 2024}} Espero que ajude.`
	expected := `{"tool": "get_monthly_revenue", "params": {"month": 6, "year": 2024}}`

	result, attempted, err := ExtractJSONObject(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !attempted {
		t.Fatal("expected attempted=true")
	}
	if result != expected {
		t.Errorf("expected %q, got %q", expected, result)
	}
}

func TestExtractJSONObject_NestedBraces(t *testing.T) {
	input := `{"tool": "x", "params": {"inner": {"deep": "value"}}}`
	result, _, err := ExtractJSONObject(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != input {
		t.Errorf("expected %q, got %q", input, result)
	}
}

func TestExtractJSONObject_BracesInsideStrings(t *testing.T) {
	input := `{"tool": "x", "params": {"note": "chaves {assim} não contam"}}`
	result, _, err := ExtractJSONObject(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != input {
		t.Errorf("expected %q, got %q", input, result)
	}
}

func TestExtractJSONObject_WithThinkTags(t *testing.T) {
	input := `<think>
preciso escolher a ferramenta certa
</think>
{"tool": "get_best_selling_month", "params": {"year": 2024}}`
	expected := `{"tool": "get_best_selling_month", "params": {"year": 2024}}`

	result, _, err := ExtractJSONObject(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != expected {
		t.Errorf("expected %q, got %q", expected, result)
	}
}

func TestExtractJSONObject_NoBracesMeansProse(t *testing.T) {
	_, attempted, err := ExtractJSONObject("Desculpe, não posso ajudar com isso.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempted {
		t.Fatal("expected attempted=false for a response without braces")
	}
}

func TestExtractJSONObject_UnbalancedIsError(t *testing.T) {
	_, attempted, err := ExtractJSONObject(`{"tool": "get_top_products", "params": {`)
	if !attempted {
		t.Fatal("expected attempted=true")
	}
	if err == nil {
		t.Fatal("expected error for unbalanced JSON")
	}
}
