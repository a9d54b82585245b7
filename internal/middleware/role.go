package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/club1938/clubhouse/internal/guard"
	"github.com/club1938/clubhouse/internal/model"
)

// RoleChecker はロールの照会に必要なインターフェース。
// repository.RoleRepositoryの部分集合として定義する。
type RoleChecker interface {
	HasRole(ctx context.Context, userID string, role model.Role) (bool, error)
}

// NewAdminMiddleware は管理者ロールを要求するミドルウェアを返す。
// セッションミドルウェアの後に配置し、リクエストごとに認可状態機械を
// 駆動する。ロール照会が完了するまで判定は保留され、完了後に
// Authorized以外の状態が確定した場合のみエラーを返す。
// リダイレクト先はLocationヘッダーで通知する。
func NewAdminMiddleware(roleChecker RoleChecker) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			g := guard.New(guard.RequireAdmin)

			userID, err := UserIDFromContext(r.Context())
			if err != nil {
				g.ResolveSession("")
			} else {
				g.ResolveSession(userID)
			}

			// アイデンティティ不在はロール照会なしで確定する
			if g.State() == guard.StateUnauthenticated {
				w.Header().Set("Location", g.RedirectTarget())
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			isAdmin, err := roleChecker.HasRole(r.Context(), userID, model.RoleAdmin)
			if err != nil {
				// 照会失敗時は権限を付与しない
				slog.Error("failed to check admin role",
					slog.String("user_id", userID),
					slog.String("error", err.Error()),
				)
				WriteInternalServerError(w)
				return
			}
			g.ResolveRole(isAdmin)

			switch g.State() {
			case guard.StateAuthorized:
				next.ServeHTTP(w, r)
			case guard.StateForbidden:
				slog.Warn("admin route denied",
					slog.String("user_id", userID),
				)
				w.Header().Set("Location", g.RedirectTarget())
				WriteErrorResponse(w, http.StatusForbidden, model.NewForbiddenError())
			default:
				// 両解決イベント通知後にBootstrappingへ戻ることはない
				WriteInternalServerError(w)
			}
		})
	}
}
