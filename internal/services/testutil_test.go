package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/Avinash-006/UniChat/internal/database"
	"github.com/Avinash-006/UniChat/internal/models"
	"github.com/Avinash-006/UniChat/internal/store"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed opening in-memory sqlite database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db), "failed automigrating models")
	return db
}

type testEnv struct {
	DB       *gorm.DB
	Blobs    *memoryBlobStore
	Users    *UserService
	Files    *FileService
	Groups   *GroupService
	Messages *store.MessageStore
}

// setupServices wires every service against one in-memory database. Audit is
// left nil so tests that do not look at audit rows run without the worker.
func setupServices(t *testing.T) *testEnv {
	t.Helper()
	db := setupServiceTestDB(t)
	blobs := newMemoryBlobStore()

	userStore := store.NewUserStore(db)
	fileStore := store.NewFileStore(db)
	groupStore := store.NewGroupStore(db)
	messageStore := store.NewMessageStore(db)

	files := NewFileService(fileStore, userStore, blobs, nil)
	return &testEnv{
		DB:       db,
		Blobs:    blobs,
		Users:    NewUserService(userStore, fileStore, nil),
		Files:    files,
		Groups:   NewGroupService(groupStore, messageStore, files, nil),
		Messages: messageStore,
	}
}

func createTestUser(t *testing.T, env *testEnv, username string) *models.User {
	t.Helper()
	user, err := env.Users.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    username + "@test.com",
		Password: "secret-" + username,
	})
	require.NoError(t, err, "failed creating user %s", username)
	return user
}

func createTestFile(t *testing.T, env *testEnv, owner *models.User, name string) *models.File {
	t.Helper()
	content := []byte("contents of " + name)
	file, err := env.Files.Upload(context.Background(), UploadInput{
		UserID:   owner.ID,
		FileName: name,
		Size:     int64(len(content)),
		Content:  bytes.NewReader(content),
	})
	require.NoError(t, err, "failed uploading %s", name)
	return file
}

var errBlobNotFound = errors.New("blob not found")

type memoryBlobStore struct {
	mu          sync.Mutex
	objects     map[string][]byte
	types       map[string]string
	failUploads bool
}

func newMemoryBlobStore() *memoryBlobStore {
	return &memoryBlobStore{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

func (m *memoryBlobStore) Upload(_ context.Context, objectName string, reader io.Reader, _ int64, contentType string) error {
	if m.failUploads {
		return errors.New("upload refused")
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[objectName] = data
	m.types[objectName] = contentType
	return nil
}

func (m *memoryBlobStore) Open(_ context.Context, objectName string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[objectName]
	if !ok {
		return nil, errBlobNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memoryBlobStore) Delete(_ context.Context, objectName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, objectName)
	delete(m.types, objectName)
	return nil
}

func (m *memoryBlobStore) PresignedGetURL(_ context.Context, objectName string, expiry time.Duration) (string, error) {
	return "https://blobs.test/" + objectName + "?expires=" + expiry.String(), nil
}

func (m *memoryBlobStore) names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.objects))
	for name := range m.objects {
		names = append(names, name)
	}
	return names
}
