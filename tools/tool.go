package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kaptinlin/jsonrepair"
	"github.com/tmc/langchaingo/llms"
)

// Tool is a callable the assistant can invoke. Unlike a plain input-string
// tool, every Tool carries a JSON-schema object describing its arguments,
// so the model can pass typed, multi-field payloads.
type Tool interface {
	// Name is the function name the model calls.
	Name() string
	// Description tells the model what the tool does and when to use it.
	Description() string
	// Parameters is the JSON schema of the arguments object.
	Parameters() map[string]any
	// Call executes the tool with the raw JSON arguments from the model.
	Call(ctx context.Context, args json.RawMessage) (string, error)
}

// Registry holds the tool belt and dispatches invocations by name.
type Registry struct {
	order []string
	tools map[string]Tool
}

// NewRegistry creates a registry over the given tools. Registration order
// is preserved; a duplicate name replaces the earlier tool.
func NewRegistry(ts ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool, len(ts))}
	for _, t := range ts {
		if _, exists := r.tools[t.Name()]; !exists {
			r.order = append(r.order, t.Name())
		}
		r.tools[t.Name()] = t
	}
	return r
}

// Definitions renders every registered tool as an llms.Tool function
// definition, in registration order, ready to pass to the model.
func (r *Registry) Definitions() []llms.Tool {
	defs := make([]llms.Tool, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		defs = append(defs, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  t.Parameters(),
			},
		})
	}
	return defs
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.order)
}

// Execute runs the named tool with the model-supplied argument payload.
// Arguments that fail to parse as JSON are run through jsonrepair once
// before giving up; models routinely emit trailing commas or unquoted keys.
func (r *Registry) Execute(ctx context.Context, name string, args string) (string, error) {
	t, ok := r.tools[name]
	if !ok {
		return "", fmt.Errorf("unknown tool %q", name)
	}

	raw := json.RawMessage(args)
	if len(args) > 0 && !json.Valid(raw) {
		repaired, err := jsonrepair.JSONRepair(args)
		if err != nil {
			return "", fmt.Errorf("tool %s: invalid arguments: %w", name, err)
		}
		raw = json.RawMessage(repaired)
	}

	out, err := t.Call(ctx, raw)
	if err != nil {
		return "", fmt.Errorf("tool %s: %w", name, err)
	}
	return out, nil
}

// funcTool adapts a plain function into a Tool. Most of the belt is a
// single call into an SDK or a pure function, so a struct per tool would
// be noise.
type funcTool struct {
	name        string
	description string
	parameters  map[string]any
	fn          func(ctx context.Context, args json.RawMessage) (string, error)
}

func (t *funcTool) Name() string               { return t.name }
func (t *funcTool) Description() string        { return t.description }
func (t *funcTool) Parameters() map[string]any { return t.parameters }
func (t *funcTool) Call(ctx context.Context, args json.RawMessage) (string, error) {
	return t.fn(ctx, args)
}

// unmarshalArgs decodes a tool argument payload into dst with unknown
// fields tolerated, treating an empty payload as an empty object.
func unmarshalArgs(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode arguments: %w", err)
	}
	return nil
}
