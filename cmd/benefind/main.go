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
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/benefind"
	"github.com/poiesic/benefind/ai"
	"github.com/poiesic/benefind/core"
	"github.com/poiesic/benefind/filter"
	"github.com/poiesic/benefind/i18n"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "benefind",
		Usage: "Offline-first multilingual directory of assistance programs",
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
				Name:   "sync",
				Usage:  "Fetch the upstream feed into the local cache",
				Action: syncCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "url",
						Aliases:  []string{"u"},
						Usage:    "Upstream feed base URL",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:  "locale",
						Usage: "Locale codes to cache (repeatable; en is always cached)",
						Value: cli.NewStringSlice("es"),
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search the cached catalog",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "Category filter (single-select, \"all\" matches everything)",
					},
					&cli.StringSliceFlag{
						Name:  "group",
						Usage: "Eligibility group filter (repeatable, OR within the field)",
					},
					&cli.StringSliceFlag{
						Name:  "area",
						Usage: "Area filter (repeatable, OR within the field)",
					},
					&cli.BoolFlag{
						Name:  "auth-only",
						Usage: "Only programs available to signed-in users",
					},
					&cli.StringFlag{
						Name:  "locale",
						Usage: "Display locale",
						Value: "en",
					},
					&cli.BoolFlag{
						Name:  "smart",
						Usage: "Enable AI-assisted ranking",
					},
					&cli.StringFlag{
						Name:  "ranker-host",
						Usage: "Ranking service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "ranker-model",
						Usage: "Ranking model name",
						Value: "qwen2.5:3b",
					},
					&cli.DurationFlag{
						Name:  "smart-timeout",
						Usage: "Bound on one smart ranking call before keyword fallback",
						Value: 4 * time.Second,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum results to print",
						Value: 10,
					},
				},
			},
			{
				Name:   "info",
				Usage:  "Show cached snapshot metadata and facets",
				Action: infoCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func syncCommand(c *cli.Context) error {
	ctx := context.Background()

	directory, err := benefind.Open(c.String("db"),
		benefind.WithFeedURL(c.String("url")),
		benefind.WithLocales(c.StringSlice("locale")...),
	)
	if err != nil {
		return fmt.Errorf("failed to open directory: %w", err)
	}
	defer directory.Close()

	if err := directory.Refresh(ctx); err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	metadata, ok := directory.Metadata()
	if !ok {
		return fmt.Errorf("sync completed but no snapshot was published")
	}

	fmt.Fprintf(os.Stderr, "Synced snapshot %s (%d programs, generated %s)\n",
		metadata.Version, metadata.ProgramCount, metadata.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(os.Stderr, "Locales: %s\n", strings.Join(directory.Locales(), ", "))
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()
	query := strings.Join(c.Args().Slice(), " ")

	opts := []benefind.DirectoryOption{}
	if c.Bool("smart") {
		aiConfig := ai.NewConfig(
			ai.WithRankerHost(c.String("ranker-host")),
			ai.WithRankerModel(c.String("ranker-model")),
			ai.WithTimeout(c.Duration("smart-timeout")),
		)
		if err := aiConfig.Validate(); err != nil {
			return fmt.Errorf("invalid AI configuration: %w", err)
		}
		opts = append(opts, benefind.WithAIConfig(aiConfig))
	}

	directory, err := benefind.Open(c.String("db"), opts...)
	if err != nil {
		return fmt.Errorf("failed to open directory: %w", err)
	}
	defer directory.Close()

	locale := c.String("locale")
	directory.SetLocale(locale)
	directory.SetSmartEnabled(c.Bool("smart"))

	selection := filter.NewSelection().
		WithCategory(c.String("category")).
		WithGroups(c.StringSlice("group")...).
		WithAreas(c.StringSlice("area")...)
	selection.AuthenticatedOnly = c.Bool("auth-only")

	result, err := directory.Search(ctx, query, selection)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if result.Degraded {
		fmt.Fprintf(os.Stderr, "(smart search unavailable: %s; showing keyword results)\n", result.DegradeReason)
	}

	if len(result.Programs) == 0 {
		fmt.Println(directory.Resolve(locale, result.Guidance.MessageKey, nil))
		if len(result.Guidance.Suggestions) > 0 {
			fmt.Println("You might try:")
			for _, slug := range result.Guidance.Suggestions {
				if program, ok := directory.Program(slug); ok {
					fmt.Printf("  %-24s %s\n", program.Slug, program.Name)
				}
			}
		}
		return nil
	}

	count := len(result.Programs)
	fmt.Println(directory.Resolve(locale, "search.resultCount", i18n.Params{"count": count}))

	limit := c.Int("limit")
	if count > limit {
		result.Programs = result.Programs[:limit]
	}
	for _, scored := range result.Programs {
		fmt.Printf("  %-24s %5.2f  %s\n", scored.Program.Slug, scored.Score, scored.Program.Name)
	}
	return nil
}

func infoCommand(c *cli.Context) error {
	directory, err := benefind.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open directory: %w", err)
	}
	defer directory.Close()

	metadata, ok := directory.Metadata()
	if !ok {
		fmt.Println("No snapshot cached yet; run sync first.")
		return nil
	}

	fmt.Printf("Snapshot:  %s\n", metadata.Version)
	fmt.Printf("Generated: %s\n", metadata.GeneratedAt.Format(time.RFC3339))
	fmt.Printf("Programs:  %d\n", metadata.ProgramCount)
	fmt.Printf("Durable:   %t\n", directory.Durable())
	fmt.Printf("Locales:   %s\n", strings.Join(directory.Locales(), ", "))

	categories, groups, areas := directory.Facets()
	printFacetTable("Categories", categories)
	printFacetTable("Groups", groups)
	printFacetTable("Areas", areas)
	return nil
}

func printFacetTable(title string, facets []core.Facet) {
	if len(facets) == 0 {
		return
	}
	fmt.Printf("\n%s:\n", title)
	for _, facet := range facets {
		fmt.Printf("  %-24s %d\n", facet.ID, facet.ProgramCount)
	}
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
