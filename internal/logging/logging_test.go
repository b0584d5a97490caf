package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/movie-server/internal/database/dbtest"
	"github.com/ahmetcoskunkizilkaya/movie-server/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSystemLog_MapsKnownAttributes(t *testing.T) {
	rec := slog.NewRecord(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), slog.LevelError, "store call failed", 0)
	rec.AddAttrs(
		slog.String("request_id", "req-1"),
		slog.String("method", "GET"),
		slog.String("path", "/favorite/u@test.com"),
		slog.Any("error", errors.New("connection refused")),
		slog.Float64("latency_ms", 12.6),
		slog.Int("attempt", 2),
	)

	entry := newSystemLog([]slog.Attr{slog.String("user_email", "u@test.com")}, rec)

	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "store call failed", entry.Message)
	assert.Equal(t, "req-1", entry.RequestID)
	assert.Equal(t, "GET", entry.Method)
	assert.Equal(t, "/favorite/u@test.com", entry.Path)
	assert.Equal(t, "connection refused", entry.Error)
	assert.Equal(t, 13, entry.LatencyMs)
	require.NotNil(t, entry.UserEmail)
	assert.Equal(t, "u@test.com", *entry.UserEmail)

	var extra map[string]interface{}
	require.NoError(t, json.Unmarshal(entry.Extra, &extra))
	assert.Equal(t, float64(2), extra["attempt"])
}

func TestMultiHandler_FansOutByLevel(t *testing.T) {
	var info, errs bytes.Buffer
	logger := slog.New(NewMultiHandler(
		slog.NewJSONHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&errs, &slog.HandlerOptions{Level: slog.LevelError}),
	)).With("service", "movie-server")

	logger.Info("catalog seeded")
	logger.Error("store call failed")

	assert.Contains(t, info.String(), "catalog seeded")
	assert.Contains(t, info.String(), "store call failed")
	assert.NotContains(t, errs.String(), "catalog seeded")
	assert.Contains(t, errs.String(), `"service":"movie-server"`)
}

func TestPGHandler_FlushesErrorsToDB(t *testing.T) {
	db := dbtest.New(t)
	h := NewPGHandler(db)
	assert.False(t, h.Enabled(context.Background(), slog.LevelWarn))

	logger := slog.New(h).With("request_id", "req-42")
	logger.Error("payment provider rejected request", "path", "/create-payment-intent")
	logger.Warn("ignored")
	h.Stop()

	require.Eventually(t, func() bool {
		var count int64
		db.Model(&models.SystemLog{}).Count(&count)
		return count == 1
	}, 5*time.Second, 50*time.Millisecond)

	var stored models.SystemLog
	require.NoError(t, db.First(&stored).Error)
	assert.Equal(t, "req-42", stored.RequestID)
	assert.Equal(t, "/create-payment-intent", stored.Path)
}

type failingHandler struct{ slog.Handler }

func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("sink down") }

func TestMultiHandler_ContinuesPastFailures(t *testing.T) {
	var buf bytes.Buffer
	h := NewMultiHandler(
		failingHandler{NewJSONHandler(&bytes.Buffer{}, slog.LevelInfo)},
		NewJSONHandler(&buf, slog.LevelInfo),
	)

	err := h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelError, "boom", 0))
	assert.EqualError(t, err, "sink down")
	assert.Contains(t, buf.String(), "boom")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestPurgeBefore(t *testing.T) {
	db := dbtest.New(t)
	now := time.Now().UTC()
	require.NoError(t, db.Create(&[]models.SystemLog{
		{ID: uuid.New(), Timestamp: now.AddDate(0, 0, -40), Level: "ERROR", Message: "old"},
		{ID: uuid.New(), Timestamp: now.AddDate(0, 0, -1), Level: "ERROR", Message: "recent"},
	}).Error)

	deleted, err := PurgeBefore(db, now.AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var left []models.SystemLog
	require.NoError(t, db.Find(&left).Error)
	require.Len(t, left, 1)
	assert.Equal(t, "recent", left[0].Message)
}
