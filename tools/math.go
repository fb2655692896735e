package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// binaryArgs is the argument shape shared by the two-operand math tools.
type binaryArgs struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

func binarySchema(aDesc, bDesc string) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"a": map[string]any{"type": "number", "description": aDesc},
			"b": map[string]any{"type": "number", "description": bDesc},
		},
		"required":             []string{"a", "b"},
		"additionalProperties": false,
	}
}

// formatNumber renders results the way a calculator would: integers
// without a trailing ".000000", everything else in shortest form.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func binaryTool(name, description string, fn func(a, b float64) (float64, error)) Tool {
	return &funcTool{
		name:        name,
		description: description,
		parameters:  binarySchema("The first operand.", "The second operand."),
		fn: func(_ context.Context, raw json.RawMessage) (string, error) {
			var args binaryArgs
			if err := unmarshalArgs(raw, &args); err != nil {
				return "", err
			}
			v, err := fn(args.A, args.B)
			if err != nil {
				return "", err
			}
			return formatNumber(v), nil
		},
	}
}

// NewAdd returns the add tool.
func NewAdd() Tool {
	return binaryTool("add", "Add two numbers and return their sum.",
		func(a, b float64) (float64, error) { return a + b, nil })
}

// NewSubtract returns the subtract tool.
func NewSubtract() Tool {
	return binaryTool("subtract", "Subtract the second number from the first.",
		func(a, b float64) (float64, error) { return a - b, nil })
}

// NewMultiply returns the multiply tool.
func NewMultiply() Tool {
	return binaryTool("multiply", "Multiply two numbers and return their product.",
		func(a, b float64) (float64, error) { return a * b, nil })
}

// NewDivide returns the divide tool. Division by zero is an error, not an Inf.
func NewDivide() Tool {
	return binaryTool("divide", "Divide the first number by the second.",
		func(a, b float64) (float64, error) {
			if b == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			return a / b, nil
		})
}

// NewPower returns the power tool.
func NewPower() Tool {
	return binaryTool("power", "Raise the first number to the power of the second.",
		func(a, b float64) (float64, error) { return math.Pow(a, b), nil })
}

// NewModulus returns the modulus tool. Operands are truncated to integers.
func NewModulus() Tool {
	return binaryTool("modulus", "Return the remainder of dividing the first integer by the second.",
		func(a, b float64) (float64, error) {
			if int64(b) == 0 {
				return 0, fmt.Errorf("modulus by zero")
			}
			return float64(int64(a) % int64(b)), nil
		})
}

// NewSqrt returns the square-root tool.
func NewSqrt() Tool {
	return &funcTool{
		name:        "sqrt",
		description: "Return the square root of a number.",
		parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"a": map[string]any{"type": "number", "description": "The number to take the square root of."},
			},
			"required":             []string{"a"},
			"additionalProperties": false,
		},
		fn: func(_ context.Context, raw json.RawMessage) (string, error) {
			var args struct {
				A float64 `json:"a"`
			}
			if err := unmarshalArgs(raw, &args); err != nil {
				return "", err
			}
			if args.A < 0 {
				return "", fmt.Errorf("square root of negative number %s", formatNumber(args.A))
			}
			return formatNumber(math.Sqrt(args.A)), nil
		},
	}
}

// MathTools returns the arithmetic portion of the tool belt.
func MathTools() []Tool {
	return []Tool{
		NewAdd(), NewSubtract(), NewMultiply(), NewDivide(),
		NewPower(), NewSqrt(), NewModulus(),
	}
}
