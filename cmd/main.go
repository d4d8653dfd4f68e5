package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/meghashyamc/lexisearch/api"
	"github.com/meghashyamc/lexisearch/config"
	"github.com/meghashyamc/lexisearch/db/kvdb"
	"github.com/meghashyamc/lexisearch/logger"
	"github.com/meghashyamc/lexisearch/services/lexical"
	"github.com/urfave/cli/v2"
)

var errNoWords = errors.New("at least one word is required")

type annotateOutput struct {
	Analysis []lexical.WordAnalysis `json:"analysis"`
	Failures []lexical.WordFailure  `json:"failures,omitempty"`
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "lexisearch",
		Usage: "Synonym-expanded search over a small document collection",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env",
				Aliases: []string{"e"},
				Usage:   "Config environment, selects config/config.<env>.yaml",
				EnvVars: []string{"ENV"},
			},
		},
		Before: func(c *cli.Context) error {
			// a missing .env file is fine
			_ = godotenv.Load()
			return nil
		},
		Action: serveCommand,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the search HTTP server",
				Action: serveCommand,
			},
			{
				Name:      "annotate",
				Usage:     "Annotate words with their part of speech and synonyms and print JSON",
				ArgsUsage: "<word>...",
				Action:    annotateCommand,
			},
		},
	}
}

func serveCommand(c *cli.Context) error {
	cfg, err := config.Load(c.String("env"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	return api.Run(c.Context, cfg)
}

func annotateCommand(c *cli.Context) error {
	words := c.Args().Slice()
	if len(words) == 0 {
		return errNoWords
	}

	cfg, err := config.Load(c.String("env"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.New(cfg.GetLogLevel())

	var cacheDB kvdb.DB
	annotator, err := api.NewAnnotator(cfg, log, func(db kvdb.DB) { cacheDB = db })
	if err != nil {
		if cacheDB != nil {
			_ = cacheDB.Close()
		}
		return err
	}
	defer func() {
		annotator.Release()
		if cacheDB != nil {
			if err := cacheDB.Close(); err != nil {
				log.Error("error closing lookup cache", "err", err.Error())
			}
		}
	}()

	return printAnnotations(c.Context, c.App.Writer, annotator, words)
}

func printAnnotations(ctx context.Context, w io.Writer, annotator *lexical.Annotator, words []string) error {
	results := annotator.Annotate(ctx, words)

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(annotateOutput{
		Analysis: lexical.Analyses(results),
		Failures: lexical.Failures(results),
	})
}
