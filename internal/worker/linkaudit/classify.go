package linkaudit

// Outcome はリンク検査1回の結果分類。
type Outcome string

const (
	// OutcomeOK はリンクが有効（2xx）。
	OutcomeOK Outcome = "ok"
	// OutcomeBroken はリンク切れ（404/410）またはアクセス拒否（401/403）。
	OutcomeBroken Outcome = "broken"
	// OutcomeRetryable は一時的な失敗（429/5xx）。次回の監査サイクルで再検査する。
	OutcomeRetryable Outcome = "retryable"
	// OutcomeInvalid はURL検証（スキーム・内部ネットワーク）で拒否された。
	OutcomeInvalid Outcome = "invalid"
	// OutcomeError は接続エラーやタイムアウト。
	OutcomeError Outcome = "error"
)

// ClassifyHTTPStatus はHTTPステータスコードを検査結果に分類する。
func ClassifyHTTPStatus(statusCode int) Outcome {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return OutcomeOK
	case statusCode == 404 || statusCode == 410:
		return OutcomeBroken
	case statusCode == 401 || statusCode == 403:
		return OutcomeBroken
	case statusCode == 429:
		return OutcomeRetryable
	case statusCode >= 500:
		return OutcomeRetryable
	default:
		return OutcomeBroken
	}
}
