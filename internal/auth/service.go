// Package auth はメール・パスワード認証とセッション管理を提供する。
//
// すべての失敗は値として返される。既知の失敗カテゴリは*model.APIErrorに
// 変換され、ネットワークを介さずに検出できる検証エラー（パスワード長など）は
// ハッシュ化やDBアクセスの前にローカルで弾く。
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/club1938/clubhouse/internal/model"
	"github.com/club1938/clubhouse/internal/repository"
)

// MinPasswordLength はパスワードの最小文字数。
const MinPasswordLength = 6

// uniqueViolation はPostgreSQLの一意制約違反のエラーコード。
const uniqueViolation = "23505"

// ServiceConfig は認証サービスの設定。
type ServiceConfig struct {
	SessionMaxAge int // セッション有効期間（秒）
}

// Service は認証に関するビジネスロジックを提供する。
type Service struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	config      ServiceConfig
}

// NewService はServiceを生成する。
func NewService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	config ServiceConfig,
) *Service {
	return &Service{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		config:      config,
	}
}

// SignUp は新規ユーザーを登録しセッションを発行する。
// 検証エラー（必須フィールド・パスワード長）はDBアクセスの前に返す。
// ユーザーとプロフィールは同一トランザクションで作成される。
func (s *Service) SignUp(ctx context.Context, email, password, firstName, lastName string) (*model.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, model.NewMissingFieldsError()
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return nil, model.NewPasswordTooShortError()
	}

	// 既存メールアドレスの事前チェック
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing != nil {
		return nil, model.NewEmailTakenError()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(email),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	profile := &model.Profile{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Email:     &user.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if firstName = strings.TrimSpace(firstName); firstName != "" {
		profile.FirstName = &firstName
	}
	if lastName = strings.TrimSpace(lastName); lastName != "" {
		profile.LastName = &lastName
	}

	if err := s.userRepo.CreateWithProfile(ctx, user, profile); err != nil {
		// 事前チェックとINSERTの間に同一メールで登録された場合
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, model.NewEmailTakenError()
		}
		return nil, fmt.Errorf("failed to create user and profile: %w", err)
	}

	slog.Info("new user registered",
		slog.String("user_id", user.ID),
	)

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// SignIn は認証情報を検証しセッションを発行する。
// メール未登録とパスワード不一致は区別せず、同一のエラーを返す。
func (s *Service) SignIn(ctx context.Context, email, password string) (*model.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, model.NewMissingFieldsError()
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewInvalidCredentialsError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, model.NewInvalidCredentialsError()
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	slog.Info("user signed in",
		slog.String("user_id", user.ID),
	)

	return session, nil
}

// SignOut はセッションを破棄する。
// DB削除が失敗してもローカルのサインアウト（Cookie削除）は妨げない前提で、
// 呼び出し側はこのエラーに関わらずCookieをクリアする。
func (s *Service) SignOut(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("session ID is required")
	}

	if err := s.sessionRepo.DeleteByID(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	slog.Info("user signed out", slog.String("session_id", sessionID))
	return nil
}

// GetCurrentUser はセッションから現在のユーザーを取得する。
func (s *Service) GetCurrentUser(ctx context.Context, sessionID string) (*model.User, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID is required")
	}

	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("session not found or expired")
	}

	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	return user, nil
}

// createSession はセッションを作成し永続化する。
func (s *Service) createSession(ctx context.Context, userID string) (*model.Session, error) {
	sessionID, err := generateSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID: %w", err)
	}

	session := &model.Session{
		ID:        sessionID,
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Duration(s.config.SessionMaxAge) * time.Second),
		CreatedAt: time.Now(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return session, nil
}

// generateSessionID は暗号的に安全なセッションIDを生成する。
func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
