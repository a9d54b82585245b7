// Package guard は保護ビューの認可判定の状態機械を提供する。
//
// セッション解決とロール解決は非同期かつ順不同に完了するため、
// 両者が揃うまでは必ずBootstrapping状態に留まる。これにより、
// 認可確定前に保護コンテンツが一瞬表示されること、およびロール解決前に
// 誤った禁止リダイレクトが発火することの両方を防ぐ。
package guard

// State は保護ビューの認可状態を表す。
type State int

const (
	// StateBootstrapping はセッションまたはロールが未解決の初期状態。
	// この状態では保護コンテンツを決して表示しない。
	StateBootstrapping State = iota
	// StateAuthorized は表示許可が確定した状態。
	StateAuthorized
	// StateUnauthenticated はアイデンティティ不在が確定した状態。サインイン画面へ誘導する。
	StateUnauthenticated
	// StateForbidden は認証済みだが権限不足が確定した状態。公開ホームへ誘導する。
	StateForbidden
)

// String はStateの文字列表現を返す。
func (s State) String() string {
	switch s {
	case StateBootstrapping:
		return "bootstrapping"
	case StateAuthorized:
		return "authorized"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Requirement は保護ビューが要求する権限レベルを表す。
type Requirement int

const (
	// RequireSession はサインイン済みであることのみを要求する。
	RequireSession Requirement = iota
	// RequireAdmin は管理者ロールを要求する。
	RequireAdmin
)

// Guard は1つの保護ビューに対する認可判定の状態機械。
// セッション解決とロール解決のイベントを任意の順序で受け取り、
// 現在の状態を同期的に返す。イベントは直列に呼び出されることを前提とし、
// 内部でロックは行わない。
type Guard struct {
	requirement Requirement

	sessionResolved bool
	userID          string // 空文字列はアイデンティティ不在を表す

	roleResolved bool
	isAdmin      bool
}

// New は指定した要求レベルのGuardを生成する。初期状態はBootstrapping。
func New(requirement Requirement) *Guard {
	return &Guard{requirement: requirement}
}

// ResolveSession はセッション解決イベントを通知する。
// userIDが空文字列の場合はアイデンティティ不在（サインアウト状態）を意味する。
func (g *Guard) ResolveSession(userID string) {
	g.sessionResolved = true
	g.userID = userID
}

// ResolveRole はロール解決イベントを通知する。
// セッション解決前に到着したロール結果は保持されるが、
// 状態はセッションが解決するまでBootstrappingのまま変わらない。
func (g *Guard) ResolveRole(isAdmin bool) {
	g.roleResolved = true
	g.isAdmin = isAdmin
}

// IdentityChanged はアイデンティティの変化を通知する。
// 新しいアイデンティティに対してロールは必ず再解決が必要となり、
// 解決までの間、前のアイデンティティのロールが流用されることはない。
func (g *Guard) IdentityChanged(userID string) {
	g.sessionResolved = true
	g.userID = userID
	g.roleResolved = false
	g.isAdmin = false
}

// State は現在の認可状態を返す。
// 未解決の間はisAdminをfalseとして扱うのではなく、判定自体を保留する。
func (g *Guard) State() State {
	if !g.sessionResolved {
		return StateBootstrapping
	}
	if g.userID == "" {
		return StateUnauthenticated
	}
	if g.requirement == RequireSession {
		return StateAuthorized
	}
	if !g.roleResolved {
		return StateBootstrapping
	}
	if g.isAdmin {
		return StateAuthorized
	}
	return StateForbidden
}

// UserID は解決済みのユーザーIDを返す。未解決または不在の場合は空文字列。
func (g *Guard) UserID() string {
	return g.userID
}

// RedirectTarget は現在の状態に対応するリダイレクト先を返す。
// リダイレクト不要な状態では空文字列を返す。
func (g *Guard) RedirectTarget() string {
	switch g.State() {
	case StateUnauthenticated:
		return "/auth"
	case StateForbidden:
		return "/"
	default:
		return ""
	}
}
