package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"doseup/internal/model"
	"doseup/internal/refresh"
	"doseup/internal/storage"
	"doseup/internal/store"
	"doseup/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "doseup failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional .env for local overrides; absence is fine.
	_ = godotenv.Load()

	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := update.LoadRuntimeConfig(*configPath)
	if err != nil {
		return err
	}

	kv, err := storage.OpenSQLite(cfg.StoragePath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer kv.Close()

	ctx := context.Background()
	st := store.New(kv, store.WithRequireDays(cfg.RequireRecurrenceDays))
	st.Load(ctx)

	engine := refresh.NewEngine(cfg.RefreshBuffer)
	engine.Start()
	defer engine.Stop()

	m := update.NewModel(st, engine, cfg)
	m.Theme = st.LoadTheme(ctx, model.Theme(cfg.DefaultTheme))

	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}
