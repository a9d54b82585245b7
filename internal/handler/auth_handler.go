// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"context"
	"net/http"

	"log/slog"

	"github.com/club1938/clubhouse/internal/metrics"
	"github.com/club1938/clubhouse/internal/middleware"
	"github.com/club1938/clubhouse/internal/model"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	SignUp(ctx context.Context, email, password, firstName, lastName string) (*model.Session, error)
	SignIn(ctx context.Context, email, password string) (*model.Session, error)
	SignOut(ctx context.Context, sessionID string) error
	GetCurrentUser(ctx context.Context, sessionID string) (*model.User, error)
}

// AuthHandlerConfig は認証ハンドラーの設定。
type AuthHandlerConfig struct {
	CookieDomain  string
	CookieSecure  bool
	SessionMaxAge int // セッションCookieの有効期間（秒）
}

// AuthHandler は認証関連のHTTPハンドラー。
type AuthHandler struct {
	service   AuthServiceInterface
	config    AuthHandlerConfig
	collector metrics.MetricsCollector
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface, config AuthHandlerConfig, collector metrics.MetricsCollector) *AuthHandler {
	return &AuthHandler{
		service:   service,
		config:    config,
		collector: collector,
	}
}

// signUpRequest は会員登録リクエストのボディ。
type signUpRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
}

// signInRequest はサインインリクエストのボディ。
type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userResponse はユーザー情報のAPIレスポンス。
type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SignUp は会員登録を処理する。
// POST /auth/signup
// パスワード確認の不一致はサービス層に到達する前にここで検出する。
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if req.Password != req.ConfirmPassword {
		h.collector.RecordAuthFailure("password_mismatch")
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewPasswordMismatchError())
		return
	}

	session, err := h.service.SignUp(r.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		h.collector.RecordAuthFailure("signup")
		handleServiceError(w, err)
		return
	}

	h.collector.RecordSignUp()
	h.setSessionCookie(w, session)

	user, err := h.service.GetCurrentUser(r.Context(), session.ID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, userResponse{ID: user.ID, Email: user.Email})
}

// SignIn はサインインを処理する。
// POST /auth/signin
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	session, err := h.service.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		h.collector.RecordAuthFailure("signin")
		handleServiceError(w, err)
		return
	}

	h.collector.RecordSignIn()
	h.setSessionCookie(w, session)

	user, err := h.service.GetCurrentUser(r.Context(), session.ID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{ID: user.ID, Email: user.Email})
}

// Logout はセッションを破棄する。
// POST /auth/logout
// DB側の削除が失敗してもCookieは必ずクリアする。
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err == nil && cookie.Value != "" {
		if logoutErr := h.service.SignOut(r.Context(), cookie.Value); logoutErr != nil {
			slog.Error("failed to sign out", slog.String("error", logoutErr.Error()))
		}
	}

	h.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// Me は現在のログインユーザー情報を返す。
// GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err != nil || cookie.Value == "" {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	user, err := h.service.GetCurrentUser(r.Context(), cookie.Value)
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	writeJSON(w, http.StatusOK, userResponse{ID: user.ID, Email: user.Email})
}

// setSessionCookie はセッションCookieを設定する（HTTP Only）。
func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, session *model.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.ID,
		Path:     "/",
		Domain:   h.config.CookieDomain,
		MaxAge:   h.config.SessionMaxAge,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie はセッションCookieをクリアする。
func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.config.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
