// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pkg/browser"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/wikiq/ai"
	"github.com/poiesic/wikiq/ai/groq"
	"github.com/poiesic/wikiq/ai/lexical"
	"github.com/poiesic/wikiq/ai/openai"
	"github.com/poiesic/wikiq/config"
	"github.com/poiesic/wikiq/core"
	"github.com/poiesic/wikiq/pipeline"
	"github.com/poiesic/wikiq/retrieve"
	"github.com/poiesic/wikiq/server"
	"github.com/poiesic/wikiq/vector"
	"github.com/poiesic/wikiq/vector/memory"
	"github.com/poiesic/wikiq/vector/qdrant"
	"github.com/poiesic/wikiq/wiki"
)

func main() {
	app := &cli.App{
		Name:  "wikiq",
		Usage: "Retrieval-augmented question answering over Wikipedia",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the web UI and JSON API",
				Action: serveCommand,
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Usage:   "Port to listen on",
						Value:   7454,
					},
					&cli.StringFlag{
						Name:  "static",
						Usage: "Directory with the built web UI",
						Value: "ui/build",
					},
					&cli.BoolFlag{
						Name:  "open",
						Usage: "Open the UI in the default browser after startup",
					},
				}, pipelineFlags()...),
			},
			{
				Name:      "ask",
				Usage:     "Answer one question from the command line",
				ArgsUsage: "<question>",
				Action:    askCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "topic",
						Aliases: []string{"t"},
						Usage:   "Search these words instead of extracting keywords from the question",
					},
				}, pipelineFlags()...),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// pipelineFlags are shared between serve and ask.
func pipelineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "dir",
			Aliases: []string{"d"},
			Usage:   "Directory holding config.json and .env",
			Value:   ".",
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Dense embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Dense embedding model name",
			Value: "nomic-embed-text",
		},
		&cli.IntFlag{
			Name:  "embedding-dimension",
			Usage: "Dense embedding dimensionality",
			Value: 768,
		},
		&cli.StringFlag{
			Name:  "qdrant",
			Usage: "Qdrant server URL; empty uses the in-process index",
		},
		&cli.StringFlag{
			Name:  "qdrant-api-key",
			Usage: "Qdrant API key",
		},
		&cli.StringFlag{
			Name:  "language",
			Usage: "Wikipedia language edition",
			Value: "en",
		},
	}
}

// app bundles the long-lived pipeline collaborators. The generator is
// created per request so settings edits pick a new model without a restart.
type app struct {
	wiki      *wiki.Client
	retriever *retrieve.Retriever
	closeFn   func()
}

func (a *app) close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

func buildApp(c *cli.Context) (*app, error) {
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model"), c.Int("embedding-dimension")),
	)
	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return nil, fmt.Errorf("creating embedder: %w", err)
	}

	var (
		store   vector.Store
		closeFn func()
	)
	if url := c.String("qdrant"); url != "" {
		qs, err := qdrant.NewStore(qdrant.Config{
			URL:    url,
			APIKey: c.String("qdrant-api-key"),
		})
		if err != nil {
			return nil, fmt.Errorf("connecting to qdrant: %w", err)
		}
		store = qs
		closeFn = qs.Close
	} else {
		store = memory.NewStore()
	}

	retriever, err := retrieve.NewRetriever(store, embedder, lexical.NewSparseEmbedder())
	if err != nil {
		if closeFn != nil {
			closeFn()
		}
		return nil, err
	}

	return &app{
		wiki:      wiki.NewClient(wiki.WithLanguage(c.String("language"))),
		retriever: retriever,
		closeFn:   closeFn,
	}, nil
}

// runQuery builds a fresh pipeline around the request's settings snapshot.
func (a *app) runQuery(ctx context.Context, settings core.Settings, apiKey, query, topic string) (*core.Answer, error) {
	generator, err := groq.NewGenerator(ai.NewConfig(
		ai.WithGenerativeModel(settings.GenerativeModel),
		ai.WithAPIKey(apiKey),
	))
	if err != nil {
		return nil, err
	}

	p, err := pipeline.NewPipeline(settings, a.wiki, a.retriever, generator)
	if err != nil {
		return nil, err
	}
	return p.Answer(ctx, query, topic)
}

func serveCommand(c *cli.Context) error {
	a, err := buildApp(c)
	if err != nil {
		return err
	}
	defer a.close()

	store := config.NewStore(c.String("dir"))
	srv, err := server.New(store, a.runQuery, server.WithStaticDir(c.String("static")))
	if err != nil {
		return err
	}

	addr := fmt.Sprintf(":%d", c.Int("port"))
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if c.Bool("open") {
		go func() {
			time.Sleep(1500 * time.Millisecond)
			url := fmt.Sprintf("http://127.0.0.1:%d", c.Int("port"))
			if err := browser.OpenURL(url); err != nil {
				slog.Warn("opening browser", "err", err)
			}
		}()
	}

	slog.Info("listening", "addr", addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func askCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a question is required")
	}

	a, err := buildApp(c)
	if err != nil {
		return err
	}
	defer a.close()

	store := config.NewStore(c.String("dir"))
	settings, _, err := store.EnsureSettings()
	if err != nil {
		return err
	}
	apiKey, err := store.APIKey()
	if err != nil {
		return fmt.Errorf("reading credential: %w", err)
	}

	result, err := a.runQuery(c.Context, settings, apiKey, query, c.String("topic"))
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
