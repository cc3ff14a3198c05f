package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"farmai/pkg/config"
	"farmai/pkg/memory"
	"farmai/pkg/orchestrator"
	"farmai/pkg/parser"
	"farmai/pkg/prompt"
	"farmai/pkg/provider"
	"farmai/pkg/provider/gemini"
	"farmai/pkg/provider/openai"
	"farmai/pkg/ratelimit"
	"farmai/pkg/tool"
	"farmai/pkg/tool/farm"
	"farmai/pkg/types"
	"farmai/pkg/validator"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (falls back to env vars)")
	categories := flag.String("categories", "", "comma-separated tool categories to expose")
	flag.Parse()

	question := strings.Join(flag.Args(), " ")
	if question == "" {
		question = "What's the weather looking like for the next few days?"
	}

	ctx := context.Background()
	cfg := loadConfig(*configPath)

	registry := tool.NewRegistry()
	if err := farm.RegisterAll(registry); err != nil {
		log.Fatalf("tool catalog: %v", err)
	}

	primary, fallback := initExecutors(ctx, cfg)
	mem := memory.NewInMemory()

	orch, err := orchestrator.New(orchestrator.Config{
		Primary:    primary,
		Fallback:   fallback,
		Dispatcher: demoDispatcher(),
		Registry:   registry,
		Memory:     mem,
		MaxRounds:  cfg.MaxRounds,
	})
	if err != nil {
		log.Fatalf("orchestrator: %v", err)
	}

	limiter := ratelimit.New()
	if allowed, _ := limiter.Allow("cli", cfg.RateLimit.Max, cfg.RateWindow()); !allowed {
		log.Fatal("rate limit exceeded")
	}

	var specs []tool.Spec
	if *categories != "" {
		specs = registry.List(strings.Split(*categories, ",")...)
	} else {
		specs = registry.List()
	}

	fmt.Printf("User: %s\n\n", question)

	mem.Add(types.Message{Role: types.RoleUser, Content: question})
	result, err := orch.Run(ctx, mem.History(), specs,
		provider.WithTimeout(cfg.Timeout()),
	)
	if err != nil {
		log.Fatalf("both providers are unavailable right now: %v", err)
	}

	outputs := make([]parser.ToolOutput, 0, len(result.Outcomes))
	for _, o := range result.Outcomes {
		outputs = append(outputs, parser.ToolOutput{Name: o.Call.Name, Result: o.Result})
	}

	extraction := parser.New().Extract(result.Response.Text, outputs)

	fmt.Printf("Assistant: %s\n", extraction.CleanedText)
	for _, v := range extraction.Visualizations {
		raw, _ := json.MarshalIndent(v, "", "  ")
		fmt.Printf("\n[%s] %s\n%s\n", v.Type, v.Title, raw)
	}

	verdict := validator.New(orch).Validate(ctx, question, extraction.CleanedText, outputs)
	fmt.Printf("\n(review: valid=%v confidence=%.2f %s)\n",
		verdict.IsValid, verdict.Confidence, verdict.Explanation)
}

func loadConfig(path string) *config.Config {
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		return cfg
	}
	// Env-only fallback for quick runs without a config file.
	cfg := config.Default()
	cfg.Providers.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	cfg.Providers.OpenAI.BaseURL = os.Getenv("OPENAI_BASE_URL")
	cfg.Providers.OpenAI.Model = os.Getenv("OPENAI_MODEL")
	cfg.Providers.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	cfg.Providers.Gemini.Model = os.Getenv("GEMINI_MODEL")
	if os.Getenv("FARMAI_PRIMARY") == "gemini" {
		cfg.Providers.Primary = "gemini"
	}
	return cfg
}

// initExecutors builds both vendor executors and orders them per config.
// A vendor without credentials is simply absent; at least one is required.
func initExecutors(ctx context.Context, cfg *config.Config) (provider.Executor, provider.Executor) {
	var openaiExec, geminiExec provider.Executor

	if cfg.Providers.OpenAI.APIKey != "" {
		exec, err := openai.NewExecutor(openai.Config{
			APIKey:       cfg.Providers.OpenAI.APIKey,
			BaseURL:      cfg.Providers.OpenAI.BaseURL,
			Model:        cfg.Providers.OpenAI.Model,
			Temperature:  cfg.Providers.OpenAI.Temperature,
			MaxTokens:    cfg.Providers.OpenAI.MaxTokens,
			SystemPrompt: prompt.System,
		})
		if err != nil {
			log.Printf("openai init failed: %v", err)
		} else {
			openaiExec = exec
		}
	}

	if cfg.Providers.Gemini.APIKey != "" {
		exec, err := gemini.NewExecutor(ctx, gemini.Config{
			APIKey:       cfg.Providers.Gemini.APIKey,
			Model:        cfg.Providers.Gemini.Model,
			Temperature:  cfg.Providers.Gemini.Temperature,
			MaxTokens:    cfg.Providers.Gemini.MaxTokens,
			SystemPrompt: prompt.System,
		})
		if err != nil {
			log.Printf("gemini init failed: %v", err)
		} else {
			geminiExec = exec
		}
	}

	if openaiExec == nil && geminiExec == nil {
		log.Fatal("no provider credentials: set OPENAI_API_KEY and/or GEMINI_API_KEY")
	}

	if cfg.Providers.Primary == "gemini" && geminiExec != nil {
		return geminiExec, openaiExec
	}
	if openaiExec == nil {
		return geminiExec, nil
	}
	return openaiExec, geminiExec
}

// demoDispatcher serves canned farm data so the CLI works end to end
// without the partner REST clients.
func demoDispatcher() tool.Dispatcher {
	return tool.DispatcherFunc(func(ctx context.Context, name string, args map[string]any) tool.Result {
		switch name {
		case farm.ToolCurrentWeather:
			return tool.Result{Success: true, Message: "current conditions", Data: map[string]any{
				"temperature": 72.0, "unit": "°F", "conditions": "Partly cloudy", "humidity": 48.0,
			}}
		case farm.ToolWeatherForecast:
			return tool.Result{Success: true, Message: "5 day forecast", Data: []any{
				map[string]any{"date": "Mon", "high": 75.0, "low": 58.0, "precipitation": 0.1},
				map[string]any{"date": "Tue", "high": 78.0, "low": 60.0, "precipitation": 0.0},
				map[string]any{"date": "Wed", "high": 71.0, "low": 55.0, "precipitation": 0.6},
				map[string]any{"date": "Thu", "high": 69.0, "low": 52.0, "precipitation": 0.3},
				map[string]any{"date": "Fri", "high": 74.0, "low": 56.0, "precipitation": 0.0},
			}}
		case farm.ToolMarketPrices:
			return tool.Result{Success: true, Message: "latest quote", Data: map[string]any{
				"commodity": fmt.Sprint(args["commodity"]), "price": 4.87, "unit": "USD/bushel",
			}}
		case farm.ToolListFields:
			return tool.Result{Success: true, Message: "2 fields", Data: []any{
				map[string]any{"name": "North 40", "crop": "corn", "acres": 40.0},
				map[string]any{"name": "River Bottom", "crop": "soybeans", "acres": 62.5},
			}}
		case farm.ToolListEquipment:
			return tool.Result{Success: true, Message: "2 machines", Data: []any{
				map[string]any{"name": "JD 8R", "status": "operational", "hours": 2140.0},
				map[string]any{"name": "Case IH 250", "status": "maintenance due", "hours": 3880.0},
			}}
		default:
			return tool.Result{Success: false, Message: fmt.Sprintf("tool %s not wired in demo", name)}
		}
	})
}
