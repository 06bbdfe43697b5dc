package store

import (
	"context"

	"github.com/Avinash-006/UniChat/internal/models"
	"gorm.io/gorm"
)

// GroupStore persists groups together with their membership rows. The
// Usernames slice on a loaded group reflects membership in join order.
type GroupStore struct {
	DB *gorm.DB
}

func NewGroupStore(db *gorm.DB) *GroupStore {
	return &GroupStore{DB: db}
}

func (s *GroupStore) Create(ctx context.Context, group *models.Group) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Members").Create(group).Error; err != nil {
			return err
		}
		return insertMembers(tx, group)
	})
}

// Save writes the group row and replaces its membership with group.Usernames.
func (s *GroupStore) Save(ctx context.Context, group *models.Group) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Members").Save(group).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", group.ID).Delete(&models.GroupMember{}).Error; err != nil {
			return err
		}
		return insertMembers(tx, group)
	})
}

func insertMembers(tx *gorm.DB, group *models.Group) error {
	if len(group.Usernames) == 0 {
		group.Members = nil
		return nil
	}

	members := make([]models.GroupMember, 0, len(group.Usernames))
	for _, username := range group.Usernames {
		members = append(members, models.GroupMember{GroupID: group.ID, Username: username})
	}
	if err := tx.Create(&members).Error; err != nil {
		return err
	}
	group.Members = members
	return nil
}

func (s *GroupStore) FindByID(ctx context.Context, id int64) (*models.Group, error) {
	var group models.Group
	if err := s.withMembers(ctx).First(&group, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	fillUsernames(&group)
	return &group, nil
}

func (s *GroupStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Group{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes the group and its membership rows. Messages are kept.
func (s *GroupStore) Delete(ctx context.Context, id int64) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&models.GroupMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Group{}, "id = ?", id).Error
	})
}

func (s *GroupStore) FindByMemberUsername(ctx context.Context, username string) ([]models.Group, error) {
	memberOf := s.DB.Model(&models.GroupMember{}).Select("group_id").Where("username = ?", username)

	groups := []models.Group{}
	if err := s.withMembers(ctx).
		Where("id IN (?)", memberOf).
		Order("id ASC").
		Find(&groups).Error; err != nil {
		return nil, err
	}
	for i := range groups {
		fillUsernames(&groups[i])
	}
	return groups, nil
}

func (s *GroupStore) withMembers(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx).Preload("Members", func(db *gorm.DB) *gorm.DB {
		return db.Order("group_members.id ASC")
	})
}

func fillUsernames(group *models.Group) {
	group.Usernames = make([]string, 0, len(group.Members))
	for _, member := range group.Members {
		group.Usernames = append(group.Usernames, member.Username)
	}
}
