// Package agent assembles the assistant↔tools graph.
//
// The graph has exactly two nodes. The assistant node sends the
// conversation to the model with the whole tool belt bound as function
// definitions. A conditional edge inspects the reply: tool calls route to
// the tools node, which executes each call and feeds the results back to
// the assistant; a reply without tool calls ends the run and its text is
// the answer. Graph execution, state merging and routing are delegated to
// langgraphgo.
package agent
