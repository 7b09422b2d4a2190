package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"sical_backend/internal/config"
	"sical_backend/internal/model"
	"sical_backend/internal/repository"
	"sical_backend/internal/util"
	"sical_backend/pkg/logger"
	"sical_backend/pkg/mailer"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const resetTokenTTL = 10 * time.Minute

type AuthService struct {
	UserRepo *repository.UserRepository
	Mailer   *mailer.Mailer
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, m *mailer.Mailer, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Mailer:   m,
		Cfg:      cfg,
	}
}

func (s *AuthService) Register(user *model.User) error {
	_, err := s.UserRepo.FindByEmail(user.Email)
	if err == nil {
		return util.ErrEmailRegistered
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)

	if err := s.UserRepo.Create(user); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return util.ErrUsernameTaken
		}
		return err
	}
	return nil
}

func (s *AuthService) Login(email, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}
	if user.Disabled {
		return "", nil, util.ErrInvalidCredentials
	}

	_ = s.UserRepo.UpdateLastLogin(user.ID)

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) UpdatePassword(userID uint, currentPassword, newPassword string) (string, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return "", util.ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	user.Password = string(hashed)
	if err := s.UserRepo.Update(user); err != nil {
		return "", err
	}

	return util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

// ForgotPassword 生成一次性重置令牌并寄送邮件。
// 数据库只保存令牌哈希；找不到用户时同样返回 nil，避免探测账号是否存在。
func (s *AuthService) ForgotPassword(email string) error {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}

	raw := make([]byte, 20)
	if _, err := rand.Read(raw); err != nil {
		return err
	}
	resetToken := hex.EncodeToString(raw)

	hashed := sha256.Sum256([]byte(resetToken))
	expire := time.Now().Add(resetTokenTTL)
	user.ResetPasswordToken = hex.EncodeToString(hashed[:])
	user.ResetPasswordExpire = &expire
	if err := s.UserRepo.Update(user); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", s.Cfg.Server.BaseURL, resetToken)
	if err := s.Mailer.SendPasswordReset(user.Username, user.Email, resetURL); err != nil {
		// 发信失败时清掉令牌，避免留下不可达的半开状态
		user.ResetPasswordToken = ""
		user.ResetPasswordExpire = nil
		_ = s.UserRepo.Update(user)
		logger.Log.Error("failed to send password reset mail", zap.Error(err))
		return err
	}
	return nil
}

func (s *AuthService) ResetPassword(resetToken, newPassword string) (string, error) {
	hashed := sha256.Sum256([]byte(resetToken))
	user, err := s.UserRepo.FindByResetToken(hex.EncodeToString(hashed[:]))
	if err != nil {
		return "", util.ErrInvalidResetToken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	user.Password = string(hashedPassword)
	user.ResetPasswordToken = ""
	user.ResetPasswordExpire = nil
	if err := s.UserRepo.Update(user); err != nil {
		return "", err
	}

	return util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}
