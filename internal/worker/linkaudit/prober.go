package linkaudit

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Target は検査対象のリンク。どのリソースのどのフィールド由来かを保持する。
type Target struct {
	Resource string // "members", "projects", "news"
	ID       string
	Field    string // "linkedin", "avatar_url", "image_url"
	URL      string
}

// URLValidator はURLの事前検証と安全なHTTPクライアント生成のインターフェース。
type URLValidator interface {
	ValidateURL(rawURL string) error
	NewSafeClient(timeout time.Duration) *http.Client
}

// Prober は個別リンクのHTTP検査を行う。
// URL検証を通過したリンクに対してGETリクエストを発行し、
// ステータスコードで結果を分類する。リダイレクト先の検証は
// 安全なクライアント側で行われる。
type Prober struct {
	validator URLValidator
	logger    *slog.Logger
	timeout   time.Duration
}

// NewProber はProberの新しいインスタンスを生成する。
func NewProber(validator URLValidator, logger *slog.Logger, timeout time.Duration) *Prober {
	return &Prober{
		validator: validator,
		logger:    logger,
		timeout:   timeout,
	}
}

// Probe はリンクを1件検査し、結果を分類して返す。
func (p *Prober) Probe(ctx context.Context, target Target) Outcome {
	if err := p.validator.ValidateURL(target.URL); err != nil {
		p.logger.Warn("リンクURLの検証に失敗しました",
			slog.String("resource", target.Resource),
			slog.String("id", target.ID),
			slog.String("url", target.URL),
			slog.String("error", err.Error()),
		)
		return OutcomeInvalid
	}

	client := p.validator.NewSafeClient(p.timeout)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.URL, nil)
	if err != nil {
		return OutcomeError
	}
	req.Header.Set("User-Agent", "Clubhouse/1.0 Link Audit")

	resp, err := client.Do(req)
	if err != nil {
		p.logger.Warn("リンク検査のリクエストに失敗しました",
			slog.String("resource", target.Resource),
			slog.String("id", target.ID),
			slog.String("url", target.URL),
			slog.String("error", err.Error()),
		)
		return OutcomeError
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))

	outcome := ClassifyHTTPStatus(resp.StatusCode)
	if outcome != OutcomeOK {
		p.logger.Warn("リンク検査で問題を検出しました",
			slog.String("resource", target.Resource),
			slog.String("id", target.ID),
			slog.String("url", target.URL),
			slog.Int("status", resp.StatusCode),
			slog.String("outcome", string(outcome)),
		)
	}
	return outcome
}
