// Package logger はJSON構造化ログの初期化を提供する。
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup はJSON形式で出力するslog.Loggerを生成して返す。
// ログレベルは環境変数LOG_LEVEL（debug/info/warn/error）で制御でき、
// 未設定または不正な値の場合はinfoになる。
func Setup(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: levelFromEnv(),
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// SetupDefault はグローバルロガーをJSON構造化ログに差し替える。
// wがnilの場合はos.Stdoutへ出力する。コンテナ環境ではstdout収集を前提とする。
func SetupDefault(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	slog.SetDefault(Setup(w))
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
