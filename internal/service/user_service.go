package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"sical_backend/internal/model"
	"sical_backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService struct {
	Repo    *repository.UserRepository
	Storage *StorageService
}

func NewUserService(repo *repository.UserRepository, storage *StorageService) *UserService {
	return &UserService{Repo: repo, Storage: storage}
}

func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	return s.Repo.FindByID(userID)
}

type ProfileUpdateRequest struct {
	Username string `json:"username"`
	Email    string `json:"email" binding:"omitempty,email"`
	Bio      string `json:"bio"`
	Language string `json:"language"`
}

func (s *UserService) UpdateProfile(userID uint, req ProfileUpdateRequest) (*model.User, error) {
	user, err := s.Repo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.Language != "" {
		user.Language = req.Language
	}

	if err := s.Repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UploadAvatar 上传头像到对象存储并更新用户记录
func (s *UserService) UploadAvatar(ctx context.Context, userID uint, reader io.Reader, size int64, ext, contentType string) (string, error) {
	user, err := s.Repo.FindByID(userID)
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("avatars/%d_%s%s", userID, uuid.New().String(), ext)
	url, err := s.Storage.Upload(ctx, filename, reader, size, contentType)
	if err != nil {
		return "", err
	}

	user.Avatar = url
	if err := s.Repo.Update(user); err != nil {
		return "", err
	}
	return url, nil
}

func (s *UserService) GetLearningProgress(userID uint) ([]model.LearningProgress, error) {
	return s.Repo.ListProgress(userID)
}

// UpdateLearningProgress 更新或新建某知识点的学习进度
func (s *UserService) UpdateLearningProgress(userID, knowledgeID uint, progress int) (*model.LearningProgress, error) {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	item, err := s.Repo.FindProgress(userID, knowledgeID)
	if err == gorm.ErrRecordNotFound {
		item = &model.LearningProgress{
			UserID:      userID,
			KnowledgeID: knowledgeID,
		}
	} else if err != nil {
		return nil, err
	}

	item.Progress = progress
	item.LastAccessed = time.Now()
	if err := s.Repo.SaveProgress(item); err != nil {
		return nil, err
	}
	return item, nil
}
