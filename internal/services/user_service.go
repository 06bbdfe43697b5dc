package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Avinash-006/UniChat/internal/models"
	"github.com/Avinash-006/UniChat/internal/store"
	"github.com/Avinash-006/UniChat/pkg/logger"
	"github.com/Avinash-006/UniChat/pkg/utils"
)

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type UpdateInput struct {
	ID       int64
	Username string
	Email    string
	Password string
}

// Credentials identify a user by username or, when the username is blank or
// unknown, by email.
type Credentials struct {
	Username string
	Email    string
	Password string
}

type UserService struct {
	Users UserRepository
	Files FileRepository
	Audit *AuditService
}

func NewUserService(users UserRepository, files FileRepository, audit *AuditService) *UserService {
	return &UserService{Users: users, Files: files, Audit: audit}
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if taken, err := s.UsernameExists(ctx, in.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrUsernameTaken
	}
	if taken, err := s.EmailExists(ctx, in.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	logger.InfoWithUser(user.Username, "user_registered", map[string]interface{}{
		"user_id": user.ID,
	})
	s.Audit.Record(ctx, AuditEntry{
		Username:     user.Username,
		Action:       "user.register",
		ResourceType: "user",
		ResourceID:   &user.ID,
	})

	return user, nil
}

// Update overwrites the user's username, email and password. It reports false
// when no user has the given id.
func (s *UserService) Update(ctx context.Context, in UpdateInput) (bool, error) {
	user, err := s.Users.FindByID(ctx, in.ID)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("loading user %d: %w", in.ID, err)
	}

	if err := s.checkConflict(ctx, in.ID, in.Username, in.Email); err != nil {
		return false, err
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return false, fmt.Errorf("hashing password: %w", err)
	}

	user.Username = in.Username
	user.Email = in.Email
	user.PasswordHash = hash
	if err := s.Users.Save(ctx, user); err != nil {
		return false, fmt.Errorf("saving user %d: %w", in.ID, err)
	}

	s.Audit.Record(ctx, AuditEntry{
		Username:     user.Username,
		Action:       "user.update",
		ResourceType: "user",
		ResourceID:   &user.ID,
	})
	return true, nil
}

func (s *UserService) checkConflict(ctx context.Context, id int64, username, email string) error {
	other, err := s.Users.FindByUsername(ctx, username)
	switch {
	case err == nil && other.ID != id:
		return ErrUsernameTaken
	case err != nil && !errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("checking username: %w", err)
	}

	other, err = s.Users.FindByEmail(ctx, email)
	switch {
	case err == nil && other.ID != id:
		return ErrEmailTaken
	case err != nil && !errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("checking email: %w", err)
	}
	return nil
}

// Delete removes the user row. Files owned by the user are left in place.
func (s *UserService) Delete(ctx context.Context, id int64) (bool, error) {
	user, err := s.Users.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("loading user %d: %w", id, err)
	}

	if err := s.Users.Delete(ctx, id); err != nil {
		return false, fmt.Errorf("deleting user %d: %w", id, err)
	}

	logger.InfoWithUser(user.Username, "user_deleted", map[string]interface{}{
		"user_id": id,
	})
	s.Audit.Record(ctx, AuditEntry{
		Username:     user.Username,
		Action:       "user.delete",
		ResourceType: "user",
		ResourceID:   &id,
	})
	return true, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.Users.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.Users.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading user %d: %w", id, err)
	}
	return user, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.Users.FindByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading user %s: %w", username, err)
	}
	return user, nil
}

// Login returns the user matching creds. Every failure to match, including a
// wrong password, is reported as ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, creds Credentials) (*models.User, error) {
	var user *models.User

	if strings.TrimSpace(creds.Username) != "" {
		found, err := s.Users.FindByUsername(ctx, creds.Username)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("loading user: %w", err)
		}
		user = found
	}

	if user == nil && strings.TrimSpace(creds.Email) != "" {
		found, err := s.Users.FindByEmail(ctx, creds.Email)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("loading user: %w", err)
		}
		user = found
	}

	if user == nil || !utils.CheckPassword(creds.Password, user.PasswordHash) {
		logger.Warn("login_failed", map[string]interface{}{
			"username": creds.Username,
			"email":    creds.Email,
		})
		return nil, ErrInvalidCredentials
	}

	logger.InfoWithUser(user.Username, "login_success", nil)
	s.Audit.Record(ctx, AuditEntry{
		Username:     user.Username,
		Action:       "user.login",
		ResourceType: "user",
		ResourceID:   &user.ID,
	})
	return user, nil
}

func (s *UserService) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := s.Users.FindByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking username: %w", err)
	}
	return true, nil
}

func (s *UserService) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.Users.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking email: %w", err)
	}
	return true, nil
}

// SetFavourite flags or unflags a file. It reports false when the file does
// not exist.
func (s *UserService) SetFavourite(ctx context.Context, fileID int64, favourite bool) (bool, error) {
	file, err := s.Files.FindByID(ctx, fileID)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("loading file %d: %w", fileID, err)
	}

	file.IsFavourite = favourite
	if err := s.Files.Save(ctx, file); err != nil {
		return false, fmt.Errorf("saving file %d: %w", fileID, err)
	}

	s.Audit.Record(ctx, AuditEntry{
		Action:       "file.favourite",
		ResourceType: "file",
		ResourceID:   &file.ID,
		Details:      map[string]interface{}{"favourite": favourite},
	})
	return true, nil
}

func (s *UserService) ListFavourites(ctx context.Context, username string) ([]models.FileDTO, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	files, err := s.Files.FindFavouritesByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("listing favourites for %s: %w", username, err)
	}

	dtos := make([]models.FileDTO, 0, len(files))
	for i := range files {
		dtos = append(dtos, models.NewFileDTO(&files[i]))
	}
	return dtos, nil
}
