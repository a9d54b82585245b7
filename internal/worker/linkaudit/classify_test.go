package linkaudit

import "testing"

func TestClassifyHTTPStatus(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		want       Outcome
	}{
		{"200はOK", 200, OutcomeOK},
		{"204はOK", 204, OutcomeOK},
		{"301はリダイレクト扱いでbroken", 301, OutcomeBroken},
		{"401はbroken", 401, OutcomeBroken},
		{"403はbroken", 403, OutcomeBroken},
		{"404はbroken", 404, OutcomeBroken},
		{"410はbroken", 410, OutcomeBroken},
		{"429はretryable", 429, OutcomeRetryable},
		{"500はretryable", 500, OutcomeRetryable},
		{"503はretryable", 503, OutcomeRetryable},
		{"418はbroken", 418, OutcomeBroken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyHTTPStatus(tt.statusCode); got != tt.want {
				t.Errorf("ClassifyHTTPStatus(%d) = %q, want %q", tt.statusCode, got, tt.want)
			}
		})
	}
}
