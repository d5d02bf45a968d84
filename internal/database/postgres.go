package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hhrukbfu-tech/treino-em-casa/internal/config"
)

var DB *pgxpool.Pool

// ConnectDB opens the shared pool. Pool sizing comes from config so a
// small deployment can be tuned down without a rebuild.
func ConnectDB(cfg *config.Config) error {
	poolConfig, err := pgxpool.ParseConfig(cfg.DBUrl)
	if err != nil {
		return fmt.Errorf("parse database config: %w", err)
	}

	poolConfig.MaxConns = cfg.DBMaxConns
	poolConfig.MinConns = cfg.DBMinConns
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute

	DB, err = pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return fmt.Errorf("create connection pool: %w", err)
	}

	if err := DB.Ping(context.Background()); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	log.Printf("Connected to PostgreSQL (pool %d-%d connections)", cfg.DBMinConns, cfg.DBMaxConns)
	return nil
}

func CloseDB() {
	if DB != nil {
		DB.Close()
	}
}
