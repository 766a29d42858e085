// records prints the best time and grade of every level in the catalog,
// plus the number of finished runs when a database is configured.
//
// Usage:
//
//	go run ./cmd/records
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/skullrun/game/internal/config"
	"github.com/skullrun/game/internal/data"
	"github.com/skullrun/game/internal/persist"
	"github.com/skullrun/game/internal/scripting"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Display helpers ───────────────────────────────────────────────

func printSection(title string) {
	lineLen := max(3, 46-utf8.RuneCountInString(title)-1)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printRow(label, value, grade, extra string) {
	dotsLen := max(3, 38-utf8.RuneCountInString(label)-len(value))
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m  %s  \033[90m%s\033[0m\n", label, strings.Repeat("·", dotsLen), value, grade, extra)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func run() error {
	cfgPath := "config/game.toml"
	if p := os.Getenv("SKULLRUN_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := zap.NewNop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var (
		records persist.Records
		runs    *persist.RunRepo // nil without a database
	)
	if cfg.Database.DSN != "" {
		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		if err := persist.RunMigrations(ctx, db); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		records = persist.NewRecordRepo(db)
		runs = persist.NewRunRepo(db)
	} else {
		fr, err := persist.OpenFileRecords(cfg.Data.SaveFile, log)
		if err != nil {
			return fmt.Errorf("save file: %w", err)
		}
		records = fr
	}

	cat, err := data.LoadCatalog(cfg.Data.Catalog)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	// Grading falls back to the built-in table when no script overrides it.
	grade := func(ms int64, bounds []int64) string {
		return data.GradeLetter(data.GradeIndex(ms, bounds), len(bounds))
	}
	if lua, err := scripting.NewEngine(cfg.Data.ScriptsDir, log); err == nil {
		defer lua.Close()
		grade = lua.Grade
	}

	fmt.Println()
	done := 0
	for _, w := range cat.Worlds() {
		printSection(w.Name)
		for _, l := range w.Levels {
			key := data.NewRecordKey(w.Name, l.Name)
			ms, ok, err := records.Best(ctx, key)
			if err != nil {
				return fmt.Errorf("best %s: %w", key, err)
			}
			extra := ""
			if runs != nil {
				n, err := runs.Attempts(ctx, key)
				if err != nil {
					return fmt.Errorf("attempts %s: %w", key, err)
				}
				extra = fmt.Sprintf("%d runs", n)
			}
			if !ok {
				printRow(l.Name, data.NoGrade, data.NoGrade, extra)
				continue
			}
			done++
			printRow(l.Name, data.FormatTime(ms), grade(ms, l.Grades), extra)
		}
	}
	fmt.Println()
	printOK(fmt.Sprintf("%d of %d levels completed", done, cat.Count()))
	return nil
}
