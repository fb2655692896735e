// Command agent answers questions with a tool-calling assistant: web and
// document search, scraping, arithmetic, algebraic-structure analysis,
// image/audio understanding, tabular inspection and source execution.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/kataras/golog"
	oai "github.com/sashabaranov/go-openai"
	lcopenai "github.com/tmc/langchaingo/llms/openai"

	"github.com/smallnest/gaia-agent/agent"
	"github.com/smallnest/gaia-agent/config"
	"github.com/smallnest/gaia-agent/tools"
)

func main() {
	var (
		question   = flag.String("q", "", "one-shot question; without it the agent reads questions from stdin")
		promptPath = flag.String("prompt", "system_prompt.yaml", "path of the system prompt file")
		verbose    = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		golog.SetLevel("debug")
	} else {
		golog.SetLevel("info")
	}

	cfg, err := config.Load(*promptPath)
	if err != nil {
		golog.Fatalf("config: %v", err)
	}

	ag, err := buildAgent(cfg)
	if err != nil {
		golog.Fatalf("build agent: %v", err)
	}

	ctx := context.Background()

	if *question != "" {
		answer, err := ag.Run(ctx, *question)
		if err != nil {
			golog.Fatalf("run: %v", err)
		}
		fmt.Println(answer)
		return
	}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		q := strings.TrimSpace(scanner.Text())
		if q == "" || q == "exit" || q == "quit" {
			break
		}
		answer, err := ag.Run(ctx, q)
		if err != nil {
			golog.Errorf("run: %v", err)
		} else {
			fmt.Println(answer)
		}
		fmt.Print("> ")
	}
}

// buildAgent wires the model clients and the full tool belt into the graph.
func buildAgent(cfg *config.Config) (*agent.Agent, error) {
	opts := []lcopenai.Option{
		lcopenai.WithToken(cfg.ModelKey),
		lcopenai.WithModel(cfg.ModelName),
	}
	if cfg.ModelEndpoint != "" {
		opts = append(opts, lcopenai.WithBaseURL(cfg.ModelEndpoint))
	}
	if cfg.ModelAPIVersion != "" {
		opts = append(opts,
			lcopenai.WithAPIType(lcopenai.APITypeAzure),
			lcopenai.WithAPIVersion(cfg.ModelAPIVersion))
	}
	model, err := lcopenai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	// The media tools share one OpenAI-compatible client.
	mediaCfg := oai.DefaultConfig(cfg.ModelKey)
	if cfg.ModelEndpoint != "" {
		mediaCfg.BaseURL = cfg.ModelEndpoint
	}
	mediaClient := oai.NewClientWithConfig(mediaCfg)

	belt := []tools.Tool{
		tools.NewWikiSearch(),
		tools.NewArxivSearch(),
		tools.NewWebScraper(),
		tools.NewImageAnalyzer(mediaClient, cfg.ModelName),
		tools.NewAudioTranscriber(mediaClient, cfg.WhisperModel),
		tools.NewTabularInspector(),
		tools.NewSourceRunner(cfg.ExecTimeout),
	}
	belt = append(belt, tools.MathTools()...)
	belt = append(belt, tools.AlgebraTools()...)

	if cfg.TavilyAPIKey != "" {
		tavily, err := tools.NewTavilySearch(cfg.TavilyAPIKey)
		if err != nil {
			return nil, err
		}
		belt = append(belt, tavily)
	} else {
		golog.Warnf("TAVILY_API_KEY not set; tavily_search disabled")
	}

	registry := tools.NewRegistry(belt...)
	golog.Infof("agent ready with %d tools", registry.Len())

	return agent.New(model, registry,
		agent.WithSystemPrompt(cfg.SystemPrompt),
		agent.WithLogger(golog.Default),
	)
}
