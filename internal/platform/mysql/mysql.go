package mysql

import (
	"context"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"paper-summary-api/internal/platform/database"
)

func New(ctx context.Context, dsn string, pool database.PoolOptions) (*gorm.DB, error) {
	return database.Open(ctx, "mysql", mysql.Open(dsn), pool)
}
