package store

import (
	"context"

	"github.com/Avinash-006/UniChat/internal/models"
	"gorm.io/gorm"
)

type FileStore struct {
	DB *gorm.DB
}

func NewFileStore(db *gorm.DB) *FileStore {
	return &FileStore{DB: db}
}

func (s *FileStore) Create(ctx context.Context, file *models.File) error {
	return s.DB.WithContext(ctx).Create(file).Error
}

func (s *FileStore) Save(ctx context.Context, file *models.File) error {
	return s.DB.WithContext(ctx).Save(file).Error
}

func (s *FileStore) FindByID(ctx context.Context, id int64) (*models.File, error) {
	var file models.File
	if err := s.DB.WithContext(ctx).First(&file, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &file, nil
}

func (s *FileStore) FindByUserID(ctx context.Context, userID int64) ([]models.File, error) {
	files := []models.File{}
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

func (s *FileStore) FindFavouritesByUserID(ctx context.Context, userID int64) ([]models.File, error) {
	files := []models.File{}
	if err := s.DB.WithContext(ctx).
		Where("user_id = ? AND is_favourite = ?", userID, true).
		Order("id ASC").
		Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

func (s *FileStore) Delete(ctx context.Context, id int64) error {
	return s.DB.WithContext(ctx).Delete(&models.File{}, "id = ?", id).Error
}
