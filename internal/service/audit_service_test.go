package service

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"taskboard/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditService_WritesStructuredRecord(t *testing.T) {
	var buf bytes.Buffer
	s := NewAuditService()
	s.log = slog.New(slog.NewJSONHandler(&buf, nil))
	s.now = func() time.Time { return time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC) }

	s.LogAdmin(context.Background(), 1, domain.AuditActionUserDelete, 7, "10.0.0.1")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "audit", rec["msg"])
	assert.Equal(t, "user_delete", rec["action"])
	assert.Equal(t, "admin", rec["category"])
	assert.EqualValues(t, 1, rec["actor_id"])
	assert.Equal(t, "10.0.0.1", rec["ip"])
	assert.Equal(t, map[string]any{"target_id": float64(7)}, rec["details"])
	assert.Equal(t, "2026-02-03T04:05:06Z", rec["at"])
}
