package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/style-gallery-api/internal/domain/entity"
	repo "github.com/oksasatya/style-gallery-api/internal/domain/repository"
	"github.com/oksasatya/style-gallery-api/pkg/helpers"
)

// SessionTTL bounds how long a login stays valid without a refresh.
const SessionTTL = 24 * time.Hour

type AuthService struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Logger *logrus.Logger
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// SessionKey is the Redis hash holding the active session of a user.
func SessionKey(userID string) string {
	return "user:session:" + userID
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func NewAuthService(r repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: r, JWT: jwt, Redis: rdb, Logger: logger}
}

type RegisterInput struct {
	Email       string
	Password    string
	UserType    entity.UserType
	Username    string
	FirstName   string
	LastName    string
	CompanyName string
	Phone       string
}

// Register creates an account. The identity variant is chosen by UserType
// and must be able to produce a display name.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	var identity entity.Identity
	switch in.UserType {
	case entity.UserTypeIndividual:
		identity = entity.Individual{
			Username:  strings.TrimSpace(in.Username),
			FirstName: strings.TrimSpace(in.FirstName),
			LastName:  strings.TrimSpace(in.LastName),
		}
	case entity.UserTypeOrganization:
		identity = entity.Organization{CompanyName: strings.TrimSpace(in.CompanyName)}
	default:
		return nil, newError(ErrValidation, "userType must be individual or organization")
	}

	u := &entity.User{
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Identity:  identity,
		Phone:     strings.TrimSpace(in.Phone),
		Following: entity.NewIDSet(),
		Followers: entity.NewIDSet(),
	}
	if _, err := entity.DisplayName(u); err != nil {
		if in.UserType == entity.UserTypeOrganization {
			return nil, wrapError(ErrValidation, "companyName is required", err)
		}
		return nil, wrapError(ErrValidation, "username or firstName and lastName are required", err)
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u.Password = hash

	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, wrapError(ErrConflict, "Email already registered", err)
		}
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "user_type": u.Type()}).Info("user registered")
	}
	return u, nil
}

// Authenticate validates email/password and returns the user without issuing tokens.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil || u == nil {
		return nil, newError(ErrUnauthorized, "Invalid credentials")
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, newError(ErrUnauthorized, "Invalid credentials")
	}
	return u, nil
}

// IssueTokens generates access/refresh tokens and records a session in Redis.
func (s *AuthService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	pair, err := s.tokens(u.ID, sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate tokens failed")
		}
		return TokenPair{}, err
	}

	if s.Redis != nil {
		name, _ := entity.DisplayName(u)
		fields := map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"name":       name,
			"sid":        sid,
			"logged_in":  true,
			"created_at": nowRFC3339(),
		}
		key := SessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, SessionTTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}
	return pair, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, TokenPair, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// Refresh rotates the session id and both tokens.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	invalid := newError(ErrUnauthorized, "Invalid refresh token")
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", invalid
	}
	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil || u == nil {
		return TokenPair{}, "", invalid
	}
	if s.Redis != nil {
		data, rErr := s.Redis.HGetAll(ctx, SessionKey(u.ID)).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, "", invalid
		}
	}

	sid := uuid.NewString()
	pair, err := s.tokens(u.ID, sid)
	if err != nil {
		return TokenPair{}, "", err
	}
	if s.Redis != nil {
		key := SessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"sid":        sid,
			"updated_at": nowRFC3339(),
		})
		pipe.Expire(ctx, key, SessionTTL)
		_, _ = pipe.Exec(ctx)
	}
	return pair, u.ID, nil
}

// Logout drops the Redis session so outstanding access tokens stop working.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if s.Redis == nil || userID == "" {
		return nil
	}
	return s.Redis.Del(ctx, SessionKey(userID)).Err()
}

func (s *AuthService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, wrapError(ErrNotFound, "User not found", err)
		}
		return nil, err
	}
	return u, nil
}

func (s *AuthService) tokens(userID, sid string) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(userID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(userID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}
