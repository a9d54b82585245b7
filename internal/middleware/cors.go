package middleware

import "net/http"

// NewCORSMiddleware は単一の許可オリジンに対するCORSミドルウェアを返す。
// セッションCookieを伴うリクエストを許可するため、ワイルドカード(*)ではなく
// 設定されたフロントエンドのオリジンを明示する。
// CSRFトークンはカスタムヘッダーで送られるため許可ヘッダーに含める。
func NewCORSMiddleware(allowedOrigin string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", allowedOrigin)
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, X-CSRF-Token")
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Max-Age", "86400")
			h.Add("Vary", "Origin")

			// プリフライトはここで完結させる
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
