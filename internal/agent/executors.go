// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"fmt"
	"strconv"
	"strings"
)

// execute dispatches a tool call to the mock executor for its family.
// Output is a human-readable line, deterministic for a given input.
func execute(tool schemaTool, input map[string]any, prompt string) string {
	name := strings.ToLower(tool.Name)
	switch {
	case strings.Contains(name, "weather") || strings.Contains(name, "forecast") || strings.Contains(name, "alert"):
		return executeWeather(tool, input)
	case strings.Contains(name, "calc") || strings.Contains(name, "math") || strings.Contains(name, "solve"):
		return executeCalculator(input, prompt)
	case strings.Contains(name, "search") || strings.Contains(name, "find") || strings.Contains(name, "lookup"):
		return executeSearch(input, prompt)
	default:
		return fmt.Sprintf("%s completed with %d argument(s)", tool.Name, len(input))
	}
}

func executeWeather(tool schemaTool, input map[string]any) string {
	location, _ := input["location"].(string)
	if location == "" {
		location = "Berlin"
	}
	if strings.Contains(strings.ToLower(tool.Name), "alert") {
		return fmt.Sprintf("No active severe weather alerts for %s", location)
	}
	return fmt.Sprintf("Weather in %s: 18°C, partly cloudy, wind 12 km/h", location)
}

func executeSearch(input map[string]any, prompt string) string {
	query, _ := input["query"].(string)
	if query == "" {
		query = prompt
	}
	return fmt.Sprintf("Found 3 results for %q: example.org/a, example.org/b, example.org/c", query)
}

// executeCalculator evaluates the arithmetic expression in the input (or
// embedded in the prompt) for real, so simulations of calculator MCPs
// produce correct answers.
func executeCalculator(input map[string]any, prompt string) string {
	expr, _ := input["expression"].(string)
	if expr == "" {
		expr = prompt
	}
	value, err := evalArithmetic(expr)
	if err != nil {
		return fmt.Sprintf("Could not evaluate %q: %v", expr, err)
	}
	return fmt.Sprintf("%s = %s", strings.TrimSpace(expr), formatNumber(value))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// evalArithmetic evaluates +, -, *, /, and parentheses with the usual
// precedence. Anything else is an error.
func evalArithmetic(expr string) (float64, error) {
	p := &exprParser{input: expr}
	v, err := p.parseSum()
	if err != nil {
		return 0, err
	}
	p.skipSpaces()
	if p.pos != len(p.input) {
		return 0, fmt.Errorf("unexpected %q at position %d", p.input[p.pos], p.pos)
	}
	return v, nil
}

type exprParser struct {
	input string
	pos   int
}

func (p *exprParser) skipSpaces() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

func (p *exprParser) peek() byte {
	p.skipSpaces()
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *exprParser) parseSum() (float64, error) {
	v, err := p.parseProduct()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '+':
			p.pos++
			rhs, err := p.parseProduct()
			if err != nil {
				return 0, err
			}
			v += rhs
		case '-':
			p.pos++
			rhs, err := p.parseProduct()
			if err != nil {
				return 0, err
			}
			v -= rhs
		default:
			return v, nil
		}
	}
}

func (p *exprParser) parseProduct() (float64, error) {
	v, err := p.parseAtom()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '*':
			p.pos++
			rhs, err := p.parseAtom()
			if err != nil {
				return 0, err
			}
			v *= rhs
		case '/':
			p.pos++
			rhs, err := p.parseAtom()
			if err != nil {
				return 0, err
			}
			if rhs == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			v /= rhs
		default:
			return v, nil
		}
	}
}

func (p *exprParser) parseAtom() (float64, error) {
	switch c := p.peek(); {
	case c == '(':
		p.pos++
		v, err := p.parseSum()
		if err != nil {
			return 0, err
		}
		if p.peek() != ')' {
			return 0, fmt.Errorf("missing closing parenthesis")
		}
		p.pos++
		return v, nil
	case c == '-':
		p.pos++
		v, err := p.parseAtom()
		return -v, err
	case c >= '0' && c <= '9' || c == '.':
		start := p.pos
		for p.pos < len(p.input) {
			c := p.input[p.pos]
			if (c < '0' || c > '9') && c != '.' {
				break
			}
			p.pos++
		}
		return strconv.ParseFloat(p.input[start:p.pos], 64)
	case c == 0:
		return 0, fmt.Errorf("unexpected end of expression")
	default:
		return 0, fmt.Errorf("unexpected %q at position %d", c, p.pos)
	}
}
