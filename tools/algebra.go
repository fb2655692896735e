package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/smallnest/gaia-agent/algebra"
)

// structureArgs is the argument shape shared by every algebraic tool: an
// ordered element set and its square Cayley table.
type structureArgs struct {
	SetElements    []string   `json:"set_elements"`
	OperationTable [][]string `json:"operation_table"`
}

func structureSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"set_elements": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "The ordered elements of the finite set.",
			},
			"operation_table": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
				"description": "Square operation table: entry [i][j] is the result of element i composed with element j.",
			},
		},
		"required":             []string{"set_elements", "operation_table"},
		"additionalProperties": false,
	}
}

func structureTool(name, description string, fn func(args structureArgs) (string, error)) Tool {
	return &funcTool{
		name:        name,
		description: description,
		parameters:  structureSchema(),
		fn: func(_ context.Context, raw json.RawMessage) (string, error) {
			var args structureArgs
			if err := unmarshalArgs(raw, &args); err != nil {
				return "", err
			}
			return fn(args)
		},
	}
}

// NewIsCommutative returns the is_commutative tool.
func NewIsCommutative() Tool {
	return structureTool("is_commutative",
		"Check whether the binary operation given by the operation table is commutative.",
		func(args structureArgs) (string, error) {
			ok, err := algebra.IsCommutative(args.SetElements, args.OperationTable)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%t", ok), nil
		})
}

// NewCounterexamplePairs returns the commutativity_counterexample_pairs tool.
func NewCounterexamplePairs() Tool {
	return structureTool("commutativity_counterexample_pairs",
		"List every ordered pair of elements that violates commutativity, in table scan order.",
		func(args structureArgs) (string, error) {
			pairs, err := algebra.CounterexamplePairs(args.SetElements, args.OperationTable)
			if err != nil {
				return "", err
			}
			if len(pairs) == 0 {
				return "the operation is commutative: no counterexample pairs", nil
			}
			parts := make([]string, 0, len(pairs))
			for _, p := range pairs {
				parts = append(parts, fmt.Sprintf("(%s, %s)", p.Left, p.Right))
			}
			return strings.Join(parts, ", "), nil
		})
}

// NewCounterexampleElements returns the commutativity_counterexample_elements tool.
func NewCounterexampleElements() Tool {
	return structureTool("commutativity_counterexample_elements",
		"List the elements involved in any commutativity violation, sorted and comma-separated.",
		func(args structureArgs) (string, error) {
			return algebra.CounterexampleElements(args.SetElements, args.OperationTable)
		})
}

// NewIsAssociative returns the is_associative tool.
func NewIsAssociative() Tool {
	return structureTool("is_associative",
		"Check whether the binary operation given by the operation table is associative.",
		func(args structureArgs) (string, error) {
			ok, err := algebra.IsAssociative(args.SetElements, args.OperationTable)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%t", ok), nil
		})
}

// NewFindIdentity returns the find_identity_element tool.
func NewFindIdentity() Tool {
	return structureTool("find_identity_element",
		"Find the two-sided identity element of the operation, if one exists.",
		func(args structureArgs) (string, error) {
			id, ok, err := algebra.FindIdentity(args.SetElements, args.OperationTable)
			if err != nil {
				return "", err
			}
			if !ok {
				return "no identity element found", nil
			}
			return id, nil
		})
}

// NewFindInverses returns the find_inverses tool.
func NewFindInverses() Tool {
	return structureTool("find_inverses",
		"Find the two-sided inverse of every element relative to the identity, if the structure has one.",
		func(args structureArgs) (string, error) {
			inverses, err := algebra.FindInverses(args.SetElements, args.OperationTable)
			if err != nil {
				return "", err
			}
			lines := make([]string, 0, len(inverses))
			for _, inv := range inverses {
				if inv.Found {
					lines = append(lines, fmt.Sprintf("%s: %s", inv.Element, inv.Inverse))
				} else {
					lines = append(lines, fmt.Sprintf("%s: no inverse", inv.Element))
				}
			}
			return strings.Join(lines, "\n"), nil
		})
}

// AlgebraTools returns the algebraic-structure portion of the tool belt.
func AlgebraTools() []Tool {
	return []Tool{
		NewIsCommutative(),
		NewCounterexamplePairs(),
		NewCounterexampleElements(),
		NewIsAssociative(),
		NewFindIdentity(),
		NewFindInverses(),
	}
}
