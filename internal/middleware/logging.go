package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// statusRecorder はhttp.ResponseWriterをラップしてステータスコードを捕捉する。
// 最初のWriteHeader呼び出しのみ記録する。
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (sr *statusRecorder) WriteHeader(code int) {
	if !sr.written {
		sr.statusCode = code
		sr.written = true
	}
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if !sr.written {
		sr.statusCode = http.StatusOK
		sr.written = true
	}
	return sr.ResponseWriter.Write(b)
}

// NewLoggingMiddleware は全リクエストをJSON構造化ログに記録するミドルウェアを返す。
// method / path / status / duration_ms を共通フィールドとし、
// セッション解決済みならuser_idを付与する。
// ログレベルはレスポンスの結果で決める: 5xxはError、4xxはWarn、それ以外はInfo。
func NewLoggingMiddleware(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rec, r)

			elapsed := time.Since(start)

			args := []any{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.statusCode),
				slog.Float64("duration_ms", float64(elapsed.Nanoseconds())/float64(time.Millisecond)),
			}
			if userID, err := UserIDFromContext(r.Context()); err == nil && userID != "" {
				args = append(args, slog.String("user_id", userID))
			}

			logger.Log(r.Context(), levelForStatus(rec.statusCode), "http_request", args...)
		})
	}
}

func levelForStatus(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
