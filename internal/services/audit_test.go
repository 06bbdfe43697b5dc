package services

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/Avinash-006/UniChat/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingUploader struct {
	mu      sync.Mutex
	objects map[string][]byte
	err     error
}

func (r *recordingUploader) Upload(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) error {
	if r.err != nil {
		return r.err
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.objects == nil {
		r.objects = make(map[string][]byte)
	}
	r.objects[objectName] = data
	return nil
}

func TestAuditService_LogAsyncAndClose(t *testing.T) {
	db := setupServiceTestDB(t)
	audit := NewAuditService(db, nil, 10)

	ctx := WithRequestMeta(context.Background(), RequestMeta{IPAddress: "10.0.0.1", RequestID: "req-1"})
	groupID := int64(7)
	audit.Record(ctx, AuditEntry{
		Username:     "alice",
		Action:       "group.create",
		ResourceType: "group",
		ResourceID:   &groupID,
		Details:      map[string]interface{}{"group_name": "Team"},
	})
	audit.LogAsync(AuditEntry{Username: "bob", Action: "user.login", ResourceType: "user"})

	audit.Close()
	audit.Close()

	var rows []models.AuditLog
	require.NoError(t, db.Order("id ASC").Find(&rows).Error)
	require.Len(t, rows, 2)

	assert.Equal(t, "group.create", rows[0].Action)
	assert.Equal(t, "10.0.0.1", rows[0].IPAddress)
	assert.Equal(t, "req-1", rows[0].RequestID)
	require.NotNil(t, rows[0].ResourceID)
	assert.Equal(t, int64(7), *rows[0].ResourceID)
	assert.Equal(t, "Team", rows[0].Details["group_name"])

	t.Run("entries after close are dropped", func(t *testing.T) {
		audit.LogAsync(AuditEntry{Action: "user.login"})

		var count int64
		require.NoError(t, db.Model(&models.AuditLog{}).Count(&count).Error)
		assert.Equal(t, int64(2), count)
	})
}

func TestAuditService_NilIsNoop(t *testing.T) {
	var audit *AuditService
	assert.NotPanics(t, func() {
		audit.Record(context.Background(), AuditEntry{Action: "user.login"})
		audit.LogAsync(AuditEntry{Action: "user.login"})
		audit.Close()
		audit.StartExport(context.Background(), 0)
	})
}

func TestAuditService_Export(t *testing.T) {
	ctx := context.Background()
	db := setupServiceTestDB(t)
	uploader := &recordingUploader{}

	audit := NewAuditService(db, uploader, 10)
	audit.LogAsync(AuditEntry{Username: "alice", Action: "user.register", ResourceType: "user"})
	audit.LogAsync(AuditEntry{Username: "alice", Action: "user.login", ResourceType: "user"})
	audit.Close()

	exported, err := audit.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, exported)
	require.Len(t, uploader.objects, 1)

	for name, data := range uploader.objects {
		assert.True(t, strings.HasPrefix(name, "audit/"))
		assert.True(t, strings.HasSuffix(name, "-2.jsonl"))

		var actions []string
		scanner := bufio.NewScanner(bytes.NewReader(data))
		for scanner.Scan() {
			var row models.AuditLog
			require.NoError(t, json.Unmarshal(scanner.Bytes(), &row))
			actions = append(actions, row.Action)
		}
		assert.Equal(t, []string{"user.register", "user.login"}, actions)
	}

	var cursor models.AuditExportCursor
	require.NoError(t, db.First(&cursor).Error)
	assert.Equal(t, int64(2), cursor.LastLogID)
	assert.Equal(t, int64(2), cursor.ExportedCount)

	t.Run("nothing new to export", func(t *testing.T) {
		exported, err := audit.Export(ctx)
		require.NoError(t, err)
		assert.Zero(t, exported)
		assert.Len(t, uploader.objects, 1)
	})

	t.Run("upload failure keeps the cursor", func(t *testing.T) {
		require.NoError(t, db.Create(&models.AuditLog{Action: "user.delete"}).Error)
		uploader.err = errors.New("bucket unavailable")

		_, err := audit.Export(ctx)
		require.Error(t, err)

		var after models.AuditExportCursor
		require.NoError(t, db.First(&after).Error)
		assert.Equal(t, int64(2), after.LastLogID)
	})

	t.Run("export without storage", func(t *testing.T) {
		bare := &AuditService{DB: db}
		_, err := bare.Export(ctx)
		assert.Error(t, err)
	})
}
