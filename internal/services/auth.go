package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	"maintenance-system/pkg/config"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/service"
	"maintenance-system/pkg/utils"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, payload dto.RegisterDTO) (*dto.AuthResponseDTO, error)
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error)
	Refresh(ctx context.Context, payload dto.RefreshTokenDTO) (*dto.AuthResponseDTO, error)
	Me(ctx context.Context) (*dto.UserDTO, error)
}

type AuthService struct {
	userRepo   repositories.UserRepositoryInterface
	cacheRepo  repositories.CacheRepositoryInterface
	jwtService service.JWTService
	cfg        config.AuthConfig
	logger     *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	cfg config.AuthConfig,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:   userRepo,
		cacheRepo:  cacheRepo,
		jwtService: jwtService,
		cfg:        cfg,
		logger:     logger,
	}
}

// Register создаёт пользователя. Роль Manager через регистрацию не выдаётся.
func (s *AuthService) Register(ctx context.Context, payload dto.RegisterDTO) (*dto.AuthResponseDTO, error) {
	role := payload.Role
	if role == "" {
		role = entities.RoleEmployee
	}
	if role == entities.RoleManager {
		return nil, apperrors.ErrForbidden
	}

	hash, err := utils.HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	user := entities.User{
		Name:         payload.Name,
		Email:        normalizeEmail(payload.Email),
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.userRepo.CreateUser(ctx, &user); err != nil {
		return nil, err
	}
	s.logger.Info("Зарегистрирован пользователь", zap.Uint64("userID", user.ID), zap.String("role", string(user.Role)))

	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(payload.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.checkLockout(ctx, user.ID); err != nil {
		return nil, err
	}
	if err := utils.ComparePasswords(user.PasswordHash, payload.Password); err != nil {
		s.handleFailedLoginAttempt(ctx, user.ID)
		return nil, apperrors.ErrInvalidCredentials
	}
	s.resetLoginAttempts(ctx, user.ID)

	return s.issue(*user)
}

// Refresh выдаёт новую пару по refresh-токену. Роль перечитывается из БД.
func (s *AuthService) Refresh(ctx context.Context, payload dto.RefreshTokenDTO) (*dto.AuthResponseDTO, error) {
	claims, err := s.jwtService.ValidateToken(payload.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	user, err := s.userRepo.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	return s.issue(*user)
}

func (s *AuthService) Me(ctx context.Context) (*dto.UserDTO, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	out := userToDTO(*user)
	return &out, nil
}

func (s *AuthService) issue(user entities.User) (*dto.AuthResponseDTO, error) {
	access, refresh, err := s.jwtService.GenerateTokens(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("не удалось выпустить токены: %w", err)
	}
	return &dto.AuthResponseDTO{AccessToken: access, RefreshToken: refresh, User: userToDTO(user)}, nil
}

func (s *AuthService) checkLockout(ctx context.Context, userID uint64) error {
	if s.cacheRepo == nil {
		return nil
	}
	// Если ключ существует: аккаунт заблокирован
	if _, err := s.cacheRepo.Get(ctx, fmt.Sprintf("lockout:%d", userID)); err == nil {
		return apperrors.ErrAccountLocked
	}
	return nil
}

func (s *AuthService) handleFailedLoginAttempt(ctx context.Context, userID uint64) {
	if s.cacheRepo == nil || s.cfg.MaxLoginAttempts <= 0 {
		return
	}
	attemptsKey := fmt.Sprintf("login_attempts:%d", userID)
	attempts, err := s.cacheRepo.Incr(ctx, attemptsKey)
	if err != nil {
		s.logger.Warn("Не удалось учесть неудачную попытку входа", zap.Uint64("userID", userID), zap.Error(err))
		return
	}
	// Счётчик живёт не дольше окна блокировки, иначе старые ошибки копятся вечно.
	if attempts == 1 {
		if err := s.cacheRepo.Expire(ctx, attemptsKey, s.cfg.LockoutDuration); err != nil {
			s.logger.Warn("Не удалось задать TTL счётчику попыток", zap.Uint64("userID", userID), zap.Error(err))
		}
	}
	if attempts >= int64(s.cfg.MaxLoginAttempts) {
		s.logger.Warn("Аккаунт временно заблокирован", zap.Uint64("userID", userID))
		_ = s.cacheRepo.Set(ctx, fmt.Sprintf("lockout:%d", userID), "locked", s.cfg.LockoutDuration)
		_ = s.cacheRepo.Del(ctx, attemptsKey)
	}
}

func (s *AuthService) resetLoginAttempts(ctx context.Context, userID uint64) {
	if s.cacheRepo == nil {
		return
	}
	_ = s.cacheRepo.Del(ctx, fmt.Sprintf("login_attempts:%d", userID), fmt.Sprintf("lockout:%d", userID))
}
