package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// responseCapture はhttp.ResponseWriterをラップし、ボディとステータスを記録する。
type responseCapture struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (rc *responseCapture) WriteHeader(code int) {
	rc.statusCode = code
	rc.ResponseWriter.WriteHeader(code)
}

func (rc *responseCapture) Write(b []byte) (int, error) {
	rc.body.Write(b)
	return rc.ResponseWriter.Write(b)
}

// NewResponseCacheMiddleware は公開一覧GETレスポンスをRedisにキャッシュする
// ミドルウェアを返す。キーはパスとクエリ文字列から構成され、
// 検索語・ファセットの組み合わせごとに独立したエントリとなる。
// Redisが利用できない場合はキャッシュを素通りして通常処理を行う。
// 200レスポンスのみをキャッシュする。
func NewResponseCacheMiddleware(client *redis.Client, ttl time.Duration) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if client == nil || r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := "respcache:" + r.URL.Path + "?" + r.URL.RawQuery

			cached, err := client.Get(r.Context(), key).Bytes()
			if err == nil {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Cache", "HIT")
				w.Write(cached)
				return
			}
			if err != redis.Nil {
				slog.Warn("response cache read failed",
					slog.String("key", key),
					slog.String("error", err.Error()),
				)
			}

			rc := &responseCapture{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rc, r)

			if rc.statusCode == http.StatusOK && rc.body.Len() > 0 {
				if err := client.Set(r.Context(), key, rc.body.Bytes(), ttl).Err(); err != nil {
					slog.Warn("response cache write failed",
						slog.String("key", key),
						slog.String("error", err.Error()),
					)
				}
			}
		})
	}
}
