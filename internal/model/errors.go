// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
// メッセージはクラブ会員向けのフランス語表記で統一する。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, data, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeMissingFields      = "MISSING_FIELDS"
	ErrCodePasswordTooShort   = "PASSWORD_TOO_SHORT"
	ErrCodePasswordMismatch   = "PASSWORD_MISMATCH"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeEmailTaken         = "EMAIL_ALREADY_REGISTERED"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeInvalidURL         = "INVALID_URL"
	ErrCodeInvalidRequest     = "INVALID_REQUEST"
	ErrCodeProvider           = "PROVIDER_ERROR"
)

// NewMissingFieldsError は必須フィールド未入力エラーを生成する。
// ネットワーク呼び出しの前にローカルで検出される。
func NewMissingFieldsError() *APIError {
	return &APIError{
		Code:     ErrCodeMissingFields,
		Message:  "Veuillez remplir tous les champs",
		Category: "validation",
		Action:   "Renseignez tous les champs obligatoires puis réessayez.",
	}
}

// NewPasswordTooShortError はパスワード長不足エラーを生成する。
// 最小6文字。ハッシュ化やDBアクセスの前にローカルで検出される。
func NewPasswordTooShortError() *APIError {
	return &APIError{
		Code:     ErrCodePasswordTooShort,
		Message:  "Le mot de passe doit contenir au moins 6 caractères",
		Category: "validation",
		Action:   "Choisissez un mot de passe d'au moins 6 caractères.",
	}
}

// NewPasswordMismatchError はパスワード確認不一致エラーを生成する。
// ハンドラー層で検出され、サービス層には到達しない。
func NewPasswordMismatchError() *APIError {
	return &APIError{
		Code:     ErrCodePasswordMismatch,
		Message:  "Les mots de passe ne correspondent pas",
		Category: "validation",
		Action:   "Vérifiez la confirmation du mot de passe.",
	}
}

// NewInvalidCredentialsError は認証失敗エラーを生成する。
// メール未登録とパスワード不一致を区別せず、同一メッセージを返す。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "Email ou mot de passe incorrect",
		Category: "auth",
		Action:   "Vérifiez vos identifiants puis réessayez.",
	}
}

// NewEmailTakenError はメールアドレス重複登録エラーを生成する。
func NewEmailTakenError() *APIError {
	return &APIError{
		Code:     ErrCodeEmailTaken,
		Message:  "Cet email est déjà utilisé",
		Category: "auth",
		Action:   "Connectez-vous avec cet email ou utilisez une autre adresse.",
	}
}

// NewUnauthorizedError は未認証エラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "Connexion requise",
		Category: "auth",
		Action:   "Connectez-vous pour accéder à cette ressource.",
	}
}

// NewForbiddenError は権限不足エラーを生成する。
// 管理者ロールを持たないユーザーが管理ルートにアクセスした場合に返す。
func NewForbiddenError() *APIError {
	return &APIError{
		Code:     ErrCodeForbidden,
		Message:  "Accès réservé aux administrateurs",
		Category: "auth",
		Action:   "Retournez à la page d'accueil.",
	}
}

// NewNotFoundError は対象リソース未検出エラーを生成する。
// 空の一覧はエラーではなく、個別リソースの取得・更新時のみ使用する。
func NewNotFoundError(resource string) *APIError {
	return &APIError{
		Code:     ErrCodeNotFound,
		Message:  fmt.Sprintf("Ressource introuvable : %s", resource),
		Category: "data",
		Action:   "Vérifiez l'identifiant puis réessayez.",
	}
}

// NewInvalidURLError は無効なURLエラーを生成する。
// アバターや画像のURL検証で使用する。
func NewInvalidURLError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidURL,
		Message:  fmt.Sprintf("URL invalide : %s", reason),
		Category: "validation",
		Action:   "Indiquez une URL publique commençant par https://.",
	}
}

// NewInvalidRequestError はリクエスト解析失敗エラーを生成する。
func NewInvalidRequestError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  "Requête invalide",
		Category: "validation",
		Action:   "Vérifiez le format de la requête.",
	}
}

// NewProviderError はデータ層から返された未分類エラーをラップする。
// 既知のカテゴリに一致しない場合、元のメッセージをそのまま表示する。
func NewProviderError(message string) *APIError {
	return &APIError{
		Code:     ErrCodeProvider,
		Message:  message,
		Category: "system",
		Action:   "Veuillez réessayer dans quelques instants.",
	}
}
