package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Avinash-006/UniChat/internal/models"
	"github.com/Avinash-006/UniChat/internal/store"
	"github.com/Avinash-006/UniChat/pkg/logger"
	"github.com/Avinash-006/UniChat/pkg/utils"
)

// GroupService owns group lifecycle, group messaging and resolution of the
// files shared with a user through group messages.
//
// Join and leave are read-modify-write sequences on the membership list; they
// are serialized per group id so concurrent callers never overwrite each
// other's change.
type GroupService struct {
	Groups   GroupRepository
	Messages MessageRepository
	Files    FileLookup
	Audit    *AuditService

	locks *keyedMutex
	now   func() time.Time
}

func NewGroupService(groups GroupRepository, messages MessageRepository, files FileLookup, audit *AuditService) *GroupService {
	return &GroupService{
		Groups:   groups,
		Messages: messages,
		Files:    files,
		Audit:    audit,
		locks:    newKeyedMutex(),
		now:      time.Now,
	}
}

// CreateGroup stores a new group whose only member is creator. Name and
// password are accepted as given.
func (s *GroupService) CreateGroup(ctx context.Context, name, password, creator string) (*models.Group, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing group password: %w", err)
	}

	group := &models.Group{
		Name:         name,
		PasswordHash: hash,
		Usernames:    []string{creator},
	}
	if err := s.Groups.Create(ctx, group); err != nil {
		return nil, fmt.Errorf("creating group: %w", err)
	}

	logger.InfoWithUser(creator, "group_created", map[string]interface{}{
		"group_id":   group.ID,
		"group_name": group.Name,
	})
	s.Audit.Record(ctx, AuditEntry{
		Username:     creator,
		Action:       "group.create",
		ResourceType: "group",
		ResourceID:   &group.ID,
		Details:      map[string]interface{}{"group_name": group.Name},
	})

	return group, nil
}

// JoinGroup adds username to the group after checking the shared password.
// Joining twice is a no-op that returns the group unchanged.
func (s *GroupService) JoinGroup(ctx context.Context, groupID int64, password, username string) (*models.Group, error) {
	unlock := s.locks.Lock(groupID)
	defer unlock()

	group, err := s.loadGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if !utils.CheckPassword(password, group.PasswordHash) {
		logger.WarnWithUser(username, "group_join_denied", map[string]interface{}{
			"group_id": groupID,
		})
		return nil, ErrInvalidGroupPassword
	}

	if group.HasMember(username) {
		return group, nil
	}

	group.Usernames = append(group.Usernames, username)
	if err := s.Groups.Save(ctx, group); err != nil {
		return nil, fmt.Errorf("saving group %d: %w", groupID, err)
	}

	logger.InfoWithUser(username, "group_joined", map[string]interface{}{
		"group_id":     groupID,
		"member_count": len(group.Usernames),
	})
	s.Audit.Record(ctx, AuditEntry{
		Username:     username,
		Action:       "group.join",
		ResourceType: "group",
		ResourceID:   &group.ID,
		Details:      map[string]interface{}{"group_name": group.Name},
	})

	return group, nil
}

// LeaveGroup removes username from the group. The group is deleted when its
// last member leaves; its messages are kept.
func (s *GroupService) LeaveGroup(ctx context.Context, groupID int64, username string) (models.LeaveOutcome, error) {
	unlock := s.locks.Lock(groupID)
	defer unlock()

	group, err := s.loadGroup(ctx, groupID)
	if err != nil {
		return "", err
	}

	if !group.RemoveMember(username) {
		return "", ErrNotGroupMember
	}

	outcome := models.LeaveOutcomeLeft
	action := "group.leave"
	if len(group.Usernames) == 0 {
		if err := s.Groups.Delete(ctx, groupID); err != nil {
			return "", fmt.Errorf("deleting group %d: %w", groupID, err)
		}
		outcome = models.LeaveOutcomeDeleted
		action = "group.delete"
	} else if err := s.Groups.Save(ctx, group); err != nil {
		return "", fmt.Errorf("saving group %d: %w", groupID, err)
	}

	logger.InfoWithUser(username, "group_left", map[string]interface{}{
		"group_id": groupID,
		"outcome":  string(outcome),
	})
	s.Audit.Record(ctx, AuditEntry{
		Username:     username,
		Action:       action,
		ResourceType: "group",
		ResourceID:   &groupID,
		Details:      map[string]interface{}{"group_name": group.Name},
	})

	return outcome, nil
}

// GetUserGroups lists every group username belongs to. It never returns nil.
func (s *GroupService) GetUserGroups(ctx context.Context, username string) ([]models.Group, error) {
	groups, err := s.Groups.FindByMemberUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("listing groups for %s: %w", username, err)
	}
	if groups == nil {
		groups = []models.Group{}
	}
	return groups, nil
}

// SendMessage posts to an existing group. The sender is not required to be a
// member.
func (s *GroupService) SendMessage(ctx context.Context, groupID int64, sender, content, messageType string) (*models.Message, error) {
	exists, err := s.Groups.ExistsByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("checking group %d: %w", groupID, err)
	}
	if !exists {
		return nil, ErrGroupNotFound
	}

	message := &models.Message{
		GroupID:        groupID,
		SenderUsername: sender,
		Content:        content,
		Type:           messageType,
		Timestamp:      s.now().UTC(),
	}
	if err := s.Messages.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("storing message: %w", err)
	}

	s.Audit.Record(ctx, AuditEntry{
		Username:     sender,
		Action:       "message.send",
		ResourceType: "message",
		ResourceID:   &message.ID,
		Details:      map[string]interface{}{"group_id": groupID, "type": messageType},
	})

	return message, nil
}

// GetGroupMessages lists a group's messages in send order. Unknown groups
// yield an empty list.
func (s *GroupService) GetGroupMessages(ctx context.Context, groupID int64) ([]models.Message, error) {
	messages, err := s.Messages.FindByGroupID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("listing messages for group %d: %w", groupID, err)
	}
	if messages == nil {
		messages = []models.Message{}
	}
	return messages, nil
}

// GetSharedFiles resolves the files referenced by "file" messages in every
// group username belongs to. A file referenced by several messages appears
// once per message. Messages whose content is not a decimal id, or whose file
// no longer exists, are skipped.
func (s *GroupService) GetSharedFiles(ctx context.Context, username string) ([]models.FileDTO, error) {
	shared := []models.FileDTO{}

	groups, err := s.GetUserGroups(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return shared, nil
	}

	groupIDs := make([]int64, 0, len(groups))
	for _, group := range groups {
		groupIDs = append(groupIDs, group.ID)
	}

	messages, err := s.Messages.FindFileMessagesInGroups(ctx, groupIDs)
	if err != nil {
		return nil, fmt.Errorf("listing file messages: %w", err)
	}

	groupNames := make(map[int64]string, len(groups))
	for _, message := range messages {
		fileID, err := strconv.ParseInt(message.Content, 10, 64)
		if err != nil {
			logger.Warn("shared_file_invalid_reference", map[string]interface{}{
				"message_id": message.ID,
				"group_id":   message.GroupID,
				"content":    message.Content,
			})
			continue
		}

		file, err := s.Files.GetFile(ctx, fileID)
		if errors.Is(err, ErrFileNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("loading shared file %d: %w", fileID, err)
		}

		dto := models.NewFileDTO(file)
		dto.GroupName, err = s.groupName(ctx, message.GroupID, groupNames)
		if err != nil {
			return nil, err
		}
		shared = append(shared, dto)
	}

	return shared, nil
}

// groupName resolves a group's current name, memoized in cache for the
// duration of one call. Groups deleted since the message was sent resolve to
// models.UnknownGroupName.
func (s *GroupService) groupName(ctx context.Context, groupID int64, cache map[int64]string) (string, error) {
	if name, ok := cache[groupID]; ok {
		return name, nil
	}

	name := models.UnknownGroupName
	group, err := s.Groups.FindByID(ctx, groupID)
	switch {
	case err == nil:
		name = group.Name
	case !errors.Is(err, store.ErrNotFound):
		return "", fmt.Errorf("loading group %d: %w", groupID, err)
	}

	cache[groupID] = name
	return name, nil
}

func (s *GroupService) loadGroup(ctx context.Context, groupID int64) (*models.Group, error) {
	group, err := s.Groups.FindByID(ctx, groupID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrGroupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading group %d: %w", groupID, err)
	}
	return group, nil
}
