// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"reflect"
	"testing"

	"github.com/pdiddy/mcp-explorer/pkg/types"
)

func weatherEntry() types.Entry {
	return types.Entry{
		ID: "weather-001",
		Result: types.Result{
			Name: "weather.forecast",
			Schema: map[string]any{
				"name": "weather.forecast",
				"tools": []any{
					map[string]any{
						"name":        "get_current_weather",
						"description": "Get current weather for a location",
						"parameters":  map[string]any{"location": "string", "units": "string"},
					},
					map[string]any{
						"name":        "get_forecast",
						"description": "Get the weather forecast",
						"parameters":  map[string]any{"location": "string", "days": "number"},
					},
				},
			},
		},
	}
}

func TestSimulateMatchingTools(t *testing.T) {
	tr, err := Simulate(weatherEntry(), "what is the weather forecast")
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if tr.MCP != "weather.forecast" {
		t.Errorf("MCP = %q", tr.MCP)
	}
	// Both tools mention "weather" or "forecast".
	if len(tr.Steps) != 2 {
		t.Fatalf("got %d steps, want 2: %+v", len(tr.Steps), tr.Steps)
	}
	for _, step := range tr.Steps {
		if step.Output == "" {
			t.Errorf("step %s produced no output", step.Tool)
		}
	}
	if tr.Steps[0].Input["location"] != "Berlin" {
		t.Errorf("location input = %v", tr.Steps[0].Input["location"])
	}
	if tr.Steps[1].Input["days"] != 3 {
		t.Errorf("number parameter = %v, want mock value 3", tr.Steps[1].Input["days"])
	}
}

func TestSimulateFallsBackToFirstTool(t *testing.T) {
	tr, err := Simulate(weatherEntry(), "zzz qqq")
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if len(tr.Steps) != 1 || tr.Steps[0].Tool != "get_current_weather" {
		t.Errorf("fallback steps = %+v", tr.Steps)
	}
}

func TestSimulateDeterministic(t *testing.T) {
	a, err := Simulate(weatherEntry(), "weather in town")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Simulate(weatherEntry(), "weather in town")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("two identical simulations diverged")
	}
}

func TestSimulateNoSchema(t *testing.T) {
	if _, err := Simulate(types.Entry{ID: "x"}, "hi"); err == nil {
		t.Error("Simulate accepted an entry without a schema")
	}
	bad := types.Entry{ID: "x", Result: types.Result{Schema: map[string]any{"tools": []any{}}}}
	if _, err := Simulate(bad, "hi"); err == nil {
		t.Error("Simulate accepted an entry without tools")
	}
}

func TestExecuteCalculator(t *testing.T) {
	entry := types.Entry{
		ID: "calc",
		Result: types.Result{
			Name: "math.calculator",
			Schema: map[string]any{
				"tools": []any{
					map[string]any{
						"name":        "calculate",
						"description": "Evaluate a mathematical expression",
						"parameters":  map[string]any{"expression": "string"},
					},
				},
			},
		},
	}
	tr, err := Simulate(entry, "(2 + 3) * 4")
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if len(tr.Steps) != 1 {
		t.Fatalf("steps = %+v", tr.Steps)
	}
	if tr.Steps[0].Output != "(2 + 3) * 4 = 20" {
		t.Errorf("Output = %q", tr.Steps[0].Output)
	}
}

func TestEvalArithmetic(t *testing.T) {
	tests := []struct {
		expr string
		want float64
		ok   bool
	}{
		{"1 + 2", 3, true},
		{"2 * 3 + 4", 10, true},
		{"2 + 3 * 4", 14, true},
		{"(2 + 3) * 4", 20, true},
		{"10 / 4", 2.5, true},
		{"-5 + 3", -2, true},
		{"1 / 0", 0, false},
		{"2 +", 0, false},
		{"hello", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, err := evalArithmetic(tt.expr)
		if tt.ok && (err != nil || got != tt.want) {
			t.Errorf("evalArithmetic(%q) = %v, %v; want %v", tt.expr, got, err, tt.want)
		}
		if !tt.ok && err == nil {
			t.Errorf("evalArithmetic(%q) succeeded, want error", tt.expr)
		}
	}
}
