// Package tools is the agent's tool belt: each Tool pairs a JSON-schema
// argument description the model sees with the function that runs when the
// model calls it. Everything returns a plain string, so tool results drop
// straight into the conversation as tool messages.
//
// The belt covers document search (Wikipedia, Tavily, arXiv), web scraping,
// arithmetic, finite algebraic-structure analysis, image and audio
// understanding, tabular CSV inspection and source-file execution. Most
// tools are single calls into an external API or the algebra package; the
// Registry handles name dispatch and repairs malformed JSON arguments
// before decoding.
package tools
