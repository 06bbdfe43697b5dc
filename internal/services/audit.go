package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Avinash-006/UniChat/internal/models"
	"github.com/Avinash-006/UniChat/pkg/logger"
	"gorm.io/gorm"
)

const auditExportBatchSize = 5000

type AuditEntry struct {
	Username     string
	Action       string
	ResourceType string
	ResourceID   *int64
	Details      map[string]interface{}
	IPAddress    string
	RequestID    string
}

// AuditService persists audit rows from a buffered queue on a single worker
// goroutine. A nil *AuditService accepts and discards entries.
type AuditService struct {
	DB      *gorm.DB
	Storage ObjectUploader

	mu     sync.RWMutex
	closed bool
	queue  chan models.AuditLog
	done   chan struct{}
}

func NewAuditService(db *gorm.DB, storageClient ObjectUploader, queueSize int) *AuditService {
	if queueSize <= 0 {
		queueSize = 1000
	}
	s := &AuditService{
		DB:      db,
		Storage: storageClient,
		queue:   make(chan models.AuditLog, queueSize),
		done:    make(chan struct{}),
	}
	go s.processQueue()
	return s
}

// Record enqueues entry, filling transport details from ctx when the entry
// has none.
func (s *AuditService) Record(ctx context.Context, entry AuditEntry) {
	meta := RequestMetaFrom(ctx)
	if entry.IPAddress == "" {
		entry.IPAddress = meta.IPAddress
	}
	if entry.RequestID == "" {
		entry.RequestID = meta.RequestID
	}
	s.LogAsync(entry)
}

func (s *AuditService) LogAsync(entry AuditEntry) {
	if s == nil {
		return
	}

	row := models.AuditLog{
		Username:     entry.Username,
		Action:       entry.Action,
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		Details:      entry.Details,
		IPAddress:    entry.IPAddress,
		RequestID:    entry.RequestID,
		CreatedAt:    time.Now().UTC(),
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		logger.Warn("audit_queue_closed", map[string]interface{}{
			"action":  entry.Action,
			"dropped": true,
		})
		return
	}

	select {
	case s.queue <- row:
	default:
		logger.Warn("audit_queue_full", map[string]interface{}{
			"action":  entry.Action,
			"dropped": true,
		})
	}
}

func (s *AuditService) processQueue() {
	defer close(s.done)
	for row := range s.queue {
		if err := s.DB.Create(&row).Error; err != nil {
			logger.Error("audit_log_insert_failed", err, map[string]interface{}{
				"action": row.Action,
			})
		}
	}
}

// Close stops accepting entries and waits until every queued row is written.
func (s *AuditService) Close() {
	if s == nil {
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		<-s.done
		return
	}
	s.closed = true
	close(s.queue)
	s.mu.Unlock()

	<-s.done
}

// Export ships audit rows written since the previous export to object storage
// as JSON lines and advances the export cursor. It returns the number of rows
// exported.
func (s *AuditService) Export(ctx context.Context) (int, error) {
	if s.Storage == nil {
		return 0, errors.New("audit export storage not configured")
	}

	var cursor models.AuditExportCursor
	err := s.DB.WithContext(ctx).Order("id ASC").First(&cursor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cursor = models.AuditExportCursor{LastExportAt: time.Now().UTC()}
		if err := s.DB.WithContext(ctx).Create(&cursor).Error; err != nil {
			return 0, fmt.Errorf("creating audit export cursor: %w", err)
		}
	} else if err != nil {
		return 0, fmt.Errorf("loading audit export cursor: %w", err)
	}

	var rows []models.AuditLog
	if err := s.DB.WithContext(ctx).
		Where("id > ?", cursor.LastLogID).
		Order("id ASC").
		Limit(auditExportBatchSize).
		Find(&rows).Error; err != nil {
		return 0, fmt.Errorf("loading audit rows: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	for _, row := range rows {
		if err := encoder.Encode(row); err != nil {
			return 0, fmt.Errorf("encoding audit row %d: %w", row.ID, err)
		}
	}

	now := time.Now().UTC()
	lastID := rows[len(rows)-1].ID
	objectName := fmt.Sprintf("audit/%s-%d.jsonl", now.Format("20060102T150405Z"), lastID)
	if err := s.Storage.Upload(ctx, objectName, bytes.NewReader(buf.Bytes()), int64(buf.Len()), "application/x-ndjson"); err != nil {
		return 0, fmt.Errorf("uploading audit export: %w", err)
	}

	if err := s.DB.WithContext(ctx).Model(&cursor).Updates(map[string]interface{}{
		"last_log_id":    lastID,
		"last_export_at": now,
		"exported_count": cursor.ExportedCount + int64(len(rows)),
	}).Error; err != nil {
		return 0, fmt.Errorf("advancing audit export cursor: %w", err)
	}

	logger.Info("audit_export_completed", map[string]interface{}{
		"object_name": objectName,
		"rows":        len(rows),
	})
	return len(rows), nil
}

// StartExport runs Export every interval until ctx is cancelled.
func (s *AuditService) StartExport(ctx context.Context, interval time.Duration) {
	if s == nil || interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := s.Export(ctx); err != nil {
					logger.Error("audit_export_failed", err, nil)
				}
			}
		}
	}()
}
