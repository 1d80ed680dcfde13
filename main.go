package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/saberdeck/saberdeck/internal/catalog"
	"github.com/saberdeck/saberdeck/internal/config"
	"github.com/saberdeck/saberdeck/internal/downloader"
	"github.com/saberdeck/saberdeck/internal/leaderboard"
	"github.com/saberdeck/saberdeck/internal/logger"
	"github.com/saberdeck/saberdeck/internal/preview"
	"github.com/saberdeck/saberdeck/internal/ui"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "saberdeck [query]",
		Short: "Browse and preview BeatSaver maps in your terminal",
		Long: `saberdeck searches the BeatSaver map catalog, shows map details with
ScoreSaber leaderboards, and plays map previews.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	rootCmd.Flags().String("config", "", "Path to the config file (default ~/.config/saberdeck/config.yaml)")
	rootCmd.Flags().String("log-file", "", "Write logs to this file")
	rootCmd.Flags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.Flags().String("catalog-url", "", "Base URL of the map catalog API")
	rootCmd.Flags().String("leaderboard-url", "", "Base URL of the leaderboard API")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Config{
		Level:      logger.Level(cfg.LogLevel),
		OutputPath: cfg.LogFile,
		MaxSize:    cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     28,
		Compress:   cfg.LogCompress,
	}); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dl := downloader.New(cfg.MaxPreviewBytes, cfg.RequestsPerSecond, cfg.RequestTimeout)
	svc := ui.Services{
		Catalog:      catalog.New(cfg.CatalogURL, cfg.SearchSortOrder, cfg.RequestsPerSecond, cfg.RequestTimeout),
		Leaderboards: leaderboard.New(cfg.LeaderboardURL, cfg.RequestsPerSecond, cfg.RequestTimeout),
		OpenPreview: func(ctx context.Context, url string) (ui.PreviewPlayer, error) {
			p, err := preview.Open(ctx, dl.Fetch, url)
			if err != nil {
				return nil, err
			}
			return p, nil
		},
	}

	query := strings.Join(args, " ")
	logger.Info("starting", logger.String("catalog", cfg.CatalogURL), logger.String("query", query))

	app := ui.NewApp(ctx, svc, query)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if m, ok := final.(ui.App); ok {
		m.Close()
	}
	if err != nil && ctx.Err() == nil {
		logger.Error("terminal session failed", logger.ErrorField(err))
		return err
	}
	return nil
}

// loadConfig layers command line flags over the config file and env.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	overrides := map[string]*string{
		"log-file":        &cfg.LogFile,
		"log-level":       &cfg.LogLevel,
		"catalog-url":     &cfg.CatalogURL,
		"leaderboard-url": &cfg.LeaderboardURL,
	}
	for name, dst := range overrides {
		if v, _ := cmd.Flags().GetString(name); v != "" {
			*dst = v
		}
	}
	for _, u := range []string{cfg.CatalogURL, cfg.LeaderboardURL} {
		if !downloader.IsURL(u) {
			return nil, fmt.Errorf("invalid service URL %q", u)
		}
	}
	return cfg, nil
}
