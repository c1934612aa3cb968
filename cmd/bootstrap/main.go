// Package main 将 CSV 目录导入 PostgreSQL，供 catalog.source=postgres 使用
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"kdrama-rec-api/internal/config"
	"kdrama-rec-api/internal/domain/entity"
	"kdrama-rec-api/internal/infrastructure/catalog"
	"kdrama-rec-api/internal/infrastructure/persistence/postgres"
	"kdrama-rec-api/pkg/logger"
)

var errEmptyCatalog = errors.New("refusing to import an empty catalog")

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Observability.Logging.Level, "text")
	ctx := context.Background()

	// CSV 路径：BOOTSTRAP_CSV > catalog.path
	csvPath := os.Getenv("BOOTSTRAP_CSV")
	if csvPath == "" {
		csvPath = cfg.Catalog.Path
	}

	if err := run(ctx, cfg, csvPath); err != nil {
		logger.Fatal(ctx, "catalog import failed", err, "path", csvPath, "table", cfg.Catalog.Table)
	}
}

// run 读取 CSV 并替换目录表
func run(ctx context.Context, cfg *config.Config, csvPath string) error {
	items, err := catalog.NewCSVSource(csvPath).LoadItems(ctx)
	if err != nil {
		return fmt.Errorf("read catalog csv: %w", err)
	}
	if len(items) == 0 {
		return errEmptyCatalog
	}

	client, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	n, err := importItems(ctx, client, cfg.Catalog.Table, items)
	if err != nil {
		return err
	}

	logger.Info(ctx, "catalog imported", "rows", n, "table", cfg.Catalog.Table, "source", csvPath)
	return nil
}

// importItems 替换目录表，无论成功与否都会关闭 client
func importItems(ctx context.Context, client *postgres.Client, table string, items []*entity.Item) (int, error) {
	defer func() {
		if err := client.Close(); err != nil {
			logger.Warn(ctx, "failed to close postgres client", "error", err.Error())
		}
	}()

	n, err := postgres.NewCatalogRepository(client, table, "id").ReplaceItems(ctx, items)
	if err != nil {
		return 0, fmt.Errorf("import catalog: %w", err)
	}
	return n, nil
}
