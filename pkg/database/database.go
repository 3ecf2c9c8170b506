package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"task-api/configs"
)

// DSN builds the lib/pq connection string for dbName.
func DSN(cfg configs.Config, dbName string) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, dbName)
}

// ConnectDB opens the shared connection pool and pings it once.
func ConnectDB(ctx context.Context, cfg configs.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", DSN(cfg, cfg.DBName))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}
