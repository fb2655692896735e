package agent

import (
	"context"
	"fmt"

	"github.com/kataras/golog"
	"github.com/smallnest/langgraphgo/graph"
	"github.com/tmc/langchaingo/llms"

	"github.com/smallnest/gaia-agent/tools"
)

// State is the graph state: the running conversation plus the number of
// assistant turns taken so far.
type State struct {
	Messages   []llms.MessageContent
	Iterations int
}

// Option configures an Agent.
type Option func(*Agent)

// WithSystemPrompt sets the system message prepended to every model call.
func WithSystemPrompt(prompt string) Option {
	return func(a *Agent) {
		a.systemPrompt = prompt
	}
}

// WithMaxIterations caps how many assistant turns a single run may take
// before the agent gives up. Zero keeps the default of 20.
func WithMaxIterations(n int) Option {
	return func(a *Agent) {
		if n > 0 {
			a.maxIterations = n
		}
	}
}

// WithLogger sets the logger used for per-turn diagnostics.
func WithLogger(logger *golog.Logger) Option {
	return func(a *Agent) {
		a.logger = logger
	}
}

// Agent is a two-node assistant↔tools graph. The assistant node calls the
// model with the tool belt bound; when the reply carries tool calls, the
// tools node executes them and the graph loops back, otherwise the run
// ends with the assistant's final text.
type Agent struct {
	runnable      *graph.StateRunnable[State]
	registry      *tools.Registry
	systemPrompt  string
	maxIterations int
	logger        *golog.Logger
}

// New builds the agent graph over the given model and tool registry.
func New(model llms.Model, registry *tools.Registry, opts ...Option) (*Agent, error) {
	a := &Agent{
		registry:      registry,
		maxIterations: 20,
		logger:        golog.Default,
	}
	for _, opt := range opts {
		opt(a)
	}

	workflow := graph.NewStateGraph[State]()

	schema := graph.NewStructSchema(
		State{},
		func(current, new State) (State, error) {
			current.Messages = append(current.Messages, new.Messages...)
			if new.Iterations > current.Iterations {
				current.Iterations = new.Iterations
			}
			return current, nil
		},
	)
	workflow.SetSchema(schema)

	toolDefs := registry.Definitions()

	workflow.AddNode("assistant", "Assistant decision node", func(ctx context.Context, state State) (State, error) {
		if len(state.Messages) == 0 {
			return state, fmt.Errorf("no messages in state")
		}

		if state.Iterations >= a.maxIterations {
			return State{
				Messages: []llms.MessageContent{
					llms.TextParts(llms.ChatMessageTypeAI,
						"Maximum iterations reached. Please try a simpler query."),
				},
				Iterations: state.Iterations,
			}, nil
		}

		msgs := state.Messages
		if a.systemPrompt != "" {
			sysMsg := llms.TextParts(llms.ChatMessageTypeSystem, a.systemPrompt)
			msgs = append([]llms.MessageContent{sysMsg}, msgs...)
		}

		resp, err := model.GenerateContent(ctx, msgs, llms.WithTools(toolDefs))
		if err != nil {
			return state, fmt.Errorf("model call failed: %w", err)
		}
		if len(resp.Choices) == 0 {
			return state, fmt.Errorf("model returned no choices")
		}
		choice := resp.Choices[0]

		aiMsg := llms.MessageContent{Role: llms.ChatMessageTypeAI}
		if choice.Content != "" {
			aiMsg.Parts = append(aiMsg.Parts, llms.TextPart(choice.Content))
		}
		for _, tc := range choice.ToolCalls {
			aiMsg.Parts = append(aiMsg.Parts, tc)
		}

		return State{
			Messages:   []llms.MessageContent{aiMsg},
			Iterations: state.Iterations + 1,
		}, nil
	})

	workflow.AddNode("tools", "Tool execution node", func(ctx context.Context, state State) (State, error) {
		if len(state.Messages) == 0 {
			return state, fmt.Errorf("no messages in state")
		}
		lastMsg := state.Messages[len(state.Messages)-1]
		if lastMsg.Role != llms.ChatMessageTypeAI {
			return state, fmt.Errorf("last message is not an AI message")
		}

		var toolMessages []llms.MessageContent
		for _, part := range lastMsg.Parts {
			tc, ok := part.(llms.ToolCall)
			if !ok {
				continue
			}

			a.logger.Debugf("executing tool %s", tc.FunctionCall.Name)
			res, err := a.registry.Execute(ctx, tc.FunctionCall.Name, tc.FunctionCall.Arguments)
			if err != nil {
				// The model gets the failure as a result and can recover;
				// a tool error never aborts the run.
				a.logger.Warnf("tool %s failed: %v", tc.FunctionCall.Name, err)
				res = fmt.Sprintf("Error: %v", err)
			}

			toolMessages = append(toolMessages, llms.MessageContent{
				Role: llms.ChatMessageTypeTool,
				Parts: []llms.ContentPart{
					llms.ToolCallResponse{
						ToolCallID: tc.ID,
						Name:       tc.FunctionCall.Name,
						Content:    res,
					},
				},
			})
		}

		return State{Messages: toolMessages, Iterations: state.Iterations}, nil
	})

	workflow.SetEntryPoint("assistant")

	workflow.AddConditionalEdge("assistant", func(ctx context.Context, state State) string {
		if len(state.Messages) == 0 {
			return graph.END
		}
		lastMsg := state.Messages[len(state.Messages)-1]
		for _, part := range lastMsg.Parts {
			if _, ok := part.(llms.ToolCall); ok {
				return "tools"
			}
		}
		return graph.END
	})

	workflow.AddEdge("tools", "assistant")

	runnable, err := workflow.Compile()
	if err != nil {
		return nil, fmt.Errorf("failed to compile agent graph: %w", err)
	}
	a.runnable = runnable
	return a, nil
}

// Run asks the agent a question and returns its final answer text.
func (a *Agent) Run(ctx context.Context, question string) (string, error) {
	initial := State{
		Messages: []llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeHuman, question),
		},
	}

	final, err := a.runnable.Invoke(ctx, initial)
	if err != nil {
		return "", err
	}
	if len(final.Messages) == 0 {
		return "", fmt.Errorf("agent produced no messages")
	}

	lastMsg := final.Messages[len(final.Messages)-1]
	for _, part := range lastMsg.Parts {
		if text, ok := part.(llms.TextContent); ok {
			return text.Text, nil
		}
	}
	return "", fmt.Errorf("final message carries no text")
}

// Runnable exposes the compiled graph, for callers that want to invoke it
// with their own initial state or inspect the full transcript.
func (a *Agent) Runnable() *graph.StateRunnable[State] {
	return a.runnable
}
