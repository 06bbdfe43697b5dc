package services

import (
	"context"
	"io"
	"time"

	"github.com/Avinash-006/UniChat/internal/models"
)

// The interfaces below are satisfied by the stores in internal/store and the
// MinIO client in internal/storage. Lookups return store.ErrNotFound when a
// row is absent.

type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	Save(ctx context.Context, group *models.Group) error
	FindByID(ctx context.Context, id int64) (*models.Group, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
	FindByMemberUsername(ctx context.Context, username string) ([]models.Group, error)
}

type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	FindByGroupID(ctx context.Context, groupID int64) ([]models.Message, error)
	FindFileMessagesInGroups(ctx context.Context, groupIDs []int64) ([]models.Message, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Save(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, id int64) error
}

type FileRepository interface {
	Create(ctx context.Context, file *models.File) error
	Save(ctx context.Context, file *models.File) error
	FindByID(ctx context.Context, id int64) (*models.File, error)
	FindByUserID(ctx context.Context, userID int64) ([]models.File, error)
	FindFavouritesByUserID(ctx context.Context, userID int64) ([]models.File, error)
	Delete(ctx context.Context, id int64) error
}

// FileLookup resolves file metadata by id. It returns ErrFileNotFound when the
// file does not exist.
type FileLookup interface {
	GetFile(ctx context.Context, id int64) (*models.File, error)
}

// BlobStore holds file contents addressed by object name.
type BlobStore interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	Open(ctx context.Context, objectName string) (io.ReadCloser, error)
	Delete(ctx context.Context, objectName string) error
	PresignedGetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

// ObjectUploader is the slice of BlobStore the audit exporter needs.
type ObjectUploader interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
}
