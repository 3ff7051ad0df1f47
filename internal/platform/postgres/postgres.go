package postgres

import (
	"context"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"paper-summary-api/internal/platform/database"
)

func New(ctx context.Context, dsn string, pool database.PoolOptions) (*gorm.DB, error) {
	return database.Open(ctx, "postgres", postgres.Open(dsn), pool)
}
