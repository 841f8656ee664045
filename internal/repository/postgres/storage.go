package postgres

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	appconfig "boardTracker/internal/config"
	"boardTracker/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Storage struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, cfg appconfig.DatabaseConfig) (*Storage, error) {
	config, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		logger.Error("Repository: Ошибка загрузки конфига", err)
		return nil, fmt.Errorf("загрузка конфига: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnIdleTime = time.Minute * 5

	if cfg.MaxConnections > 0 {
		config.MaxConns = int32(cfg.MaxConnections)
	}
	if cfg.MinConnections > 0 {
		config.MinConns = int32(cfg.MinConnections)
	}
	if cfg.IdleTimeout > 0 {
		config.MaxConnIdleTime = cfg.IdleTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		logger.Error("Repository: Ошибка создания пула", err)
		return nil, fmt.Errorf("создание пула: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return nil, fmt.Errorf("проверка соединения ping: %w", err)
	}

	logger.Info("Repository: Успешное создание подключения к PostgreSQL")
	return &Storage{pool: pool}, nil
}

func (s *Storage) Close() {
	s.pool.Close()
	logger.Info("Repository: Закрытие всех соединений PostgreSQL")
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	err := s.pool.Ping(ctx)
	if err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	return nil
}

func (s *Storage) Migrate(ctx context.Context, dir string) error {
	logger.Info("Попытка миграций")

	files := []string{"001_init.up.sql", "002_indexes.up.sql"}

	for _, name := range files {
		sql, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Error("Repository: не удалось прочитать миграцию", err)
			return fmt.Errorf("чтение %s: %w", name, err)
		}

		if _, err := s.pool.Exec(ctx, string(sql)); err != nil {
			logger.Error("Repository: не удалось применить миграцию", err)
			return fmt.Errorf("применение %s: %w", name, err)
		}
	}

	logger.Info("Миграции применены")
	return nil
}

func (s *Storage) Down(ctx context.Context, dir string) error {
	logger.Info("Откат миграций")

	files := []string{"002_indexes.down.sql", "001_init.down.sql"}

	for _, name := range files {
		sql, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Error("Repository: не удалось прочитать миграцию", err)
			return fmt.Errorf("чтение %s: %w", name, err)
		}

		if _, err := s.pool.Exec(ctx, string(sql)); err != nil {
			logger.Error("Repository: не удалось откатить миграцию", err)
			return fmt.Errorf("откат %s: %w", name, err)
		}
	}

	logger.Info("Миграции откачены")
	return nil
}
