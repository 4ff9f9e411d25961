// Command driftgen turns SQL schema descriptors into statically-typed
// data-access code.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/Leylan24/drift/compiler/gen"
	"github.com/Leylan24/drift/compiler/load"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "driftgen",
		Short:         "generate typed data-access code from SQL schemas",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.AddCommand(newGenerateCmd(), newInspectCmd())
	return cmd
}

type generateFlags struct {
	schemas []string
	options string
	target  string
	pkg     string
	header  string
	watch   bool
	cache   string
}

func newGenerateCmd() *cobra.Command {
	var flags generateFlags
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "resolve schema descriptors and write generated code",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(flags.schemas) == 0 {
				return fmt.Errorf("at least one --schema file is required")
			}
			if flags.watch {
				return watchAndGenerate(cmd.Context(), flags)
			}
			return runGenerate(cmd.Context(), flags)
		},
	}
	cmd.Flags().StringSliceVar(&flags.schemas, "schema", nil, "schema descriptor files (JSON)")
	cmd.Flags().StringVar(&flags.options, "options", "", "build options file (YAML)")
	cmd.Flags().StringVar(&flags.target, "target", ".", "output directory")
	cmd.Flags().StringVar(&flags.pkg, "package", "db", "output package import path")
	cmd.Flags().StringVar(&flags.header, "header", "", "header comment for generated files")
	cmd.Flags().BoolVar(&flags.watch, "watch", false, "regenerate when schema files change")
	cmd.Flags().StringVar(&flags.cache, "cache", "", "snapshot cache directory")
	return cmd
}

func runGenerate(ctx context.Context, flags generateFlags) error {
	opts := load.DefaultOptions()
	if flags.options != "" {
		var err error
		if opts, err = load.ReadOptions(flags.options); err != nil {
			return err
		}
	}
	var cache *load.SnapshotCache
	if flags.cache != "" {
		var err error
		if cache, err = load.NewSnapshotCache(flags.cache); err != nil {
			return err
		}
	}
	schemas := make([]*load.Schema, 0, len(flags.schemas))
	for _, path := range flags.schemas {
		sc, err := readSchema(path, cache)
		if err != nil {
			return err
		}
		schemas = append(schemas, sc)
	}
	cfg, err := gen.NewConfig(
		gen.WithPackage(flags.pkg),
		gen.WithTarget(flags.target),
		gen.WithHeader(flags.header),
		gen.WithOptions(opts),
	)
	if err != nil {
		return err
	}
	if err := gen.Generate(ctx, cfg, schemas...); err != nil {
		return err
	}
	slog.Info("generated", "schemas", len(schemas), "target", flags.target)
	return nil
}

// readSchema loads one schema descriptor, going through the snapshot
// cache when one is configured.
func readSchema(path string, cache *load.SnapshotCache) (*load.Schema, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if cache == nil {
		return load.UnmarshalSchema(buf)
	}
	key := load.Fingerprint(buf)
	if sc, ok, err := cache.Load(key); err == nil && ok {
		return sc, nil
	}
	sc, err := load.UnmarshalSchema(buf)
	if err != nil {
		return nil, err
	}
	if err := cache.Store(key, sc); err != nil {
		slog.Warn("snapshot cache store failed", "path", path, "err", err)
	}
	return sc, nil
}

// watchAndGenerate reruns generation whenever a schema file changes.
// Generation errors are logged, not fatal, so the watch survives broken
// intermediate states while the user edits.
func watchAndGenerate(ctx context.Context, flags generateFlags) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	for _, path := range flags.schemas {
		if err := watcher.Add(filepath.Dir(path)); err != nil {
			return err
		}
	}
	if err := runGenerate(ctx, flags); err != nil {
		slog.Error("generate failed", "err", err)
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if !watchedFile(flags.schemas, ev.Name) {
				continue
			}
			slog.Info("schema changed", "file", ev.Name)
			if err := runGenerate(ctx, flags); err != nil {
				slog.Error("generate failed", "err", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watch error", "err", err)
		}
	}
}

func watchedFile(schemas []string, name string) bool {
	for _, s := range schemas {
		if filepath.Clean(s) == filepath.Clean(name) {
			return true
		}
	}
	return false
}

func newInspectCmd() *cobra.Command {
	var (
		dialect string
		dsn     string
		schema  string
		out     string
	)
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "read a live database schema into a descriptor file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := sql.Open(driverName(dialect), dsn)
			if err != nil {
				return err
			}
			defer db.Close()
			insp, err := load.NewInspector(db, dialect)
			if err != nil {
				return err
			}
			sc, err := insp.InspectSchema(cmd.Context(), schema)
			if err != nil {
				return err
			}
			buf, err := load.MarshalSchema(sc)
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(buf)
				return err
			}
			return os.WriteFile(out, buf, 0644)
		},
	}
	cmd.Flags().StringVar(&dialect, "dialect", load.SQLite, "database dialect: sqlite, mysql or postgres")
	cmd.Flags().StringVar(&dsn, "dsn", "", "database connection string")
	cmd.Flags().StringVar(&schema, "db-schema", "", "database schema to inspect")
	cmd.Flags().StringVar(&out, "out", "-", "output file, - for stdout")
	return cmd
}

// driverName maps a dialect to the registered driver.
func driverName(dialect string) string {
	switch dialect {
	case load.MySQL:
		return "mysql"
	case load.Postgres:
		return "postgres"
	default:
		return "sqlite"
	}
}
