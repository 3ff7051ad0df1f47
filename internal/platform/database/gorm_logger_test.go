package database

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func traceSQL() (string, int64) {
	return "SELECT * FROM `papers` WHERE paper_id = 1", 0
}

func TestGormLoggerWritesFailedStatements(t *testing.T) {
	var buf bytes.Buffer
	l := NewGormLogger(zerolog.New(&buf), gormlogger.Warn, time.Second)

	l.Trace(context.Background(), time.Now(), traceSQL, errors.New("connection reset"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "gorm", entry["component"])
	assert.Equal(t, "connection reset", entry["error"])
	assert.Contains(t, entry["sql"], "FROM `papers`")
}

func TestGormLoggerSkipsRecordNotFoundAndFastQueries(t *testing.T) {
	var buf bytes.Buffer
	l := NewGormLogger(zerolog.New(&buf), gormlogger.Warn, time.Second)

	l.Trace(context.Background(), time.Now(), traceSQL, gorm.ErrRecordNotFound)
	l.Trace(context.Background(), time.Now(), traceSQL, nil)
	l.Info(context.Background(), "connected to %s", "mysql")

	assert.Empty(t, buf.String())
}

func TestGormLoggerWarnsOnSlowQuery(t *testing.T) {
	var buf bytes.Buffer
	l := NewGormLogger(zerolog.New(&buf), gormlogger.Warn, time.Millisecond)

	l.Trace(context.Background(), time.Now().Add(-time.Second), traceSQL, nil)

	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "slow sql")
}

func TestGormLoggerSilentMode(t *testing.T) {
	var buf bytes.Buffer
	l := NewGormLogger(zerolog.New(&buf), gormlogger.Warn, time.Second).LogMode(gormlogger.Silent)

	l.Trace(context.Background(), time.Now(), traceSQL, errors.New("boom"))
	l.Error(context.Background(), "boom")

	assert.Empty(t, buf.String())
}
