// Package security は会員が入力するコンテンツの検証機能を提供する。
package security

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/doyensec/safeurl"

	"github.com/club1938/clubhouse/internal/model"
)

// URLGuardService は会員が登録する外部URL（アバター画像・プロジェクト画像・
// LinkedInプロフィール・会社サイト）の検証機能を定義する。
type URLGuardService interface {
	// ValidateURL はURLの安全性を事前に検証する。
	// スキーム、ホスト、IPアドレスの静的検証を行い、
	// 内部ネットワークを指すURLの場合はエラーを返す。
	ValidateURL(rawURL string) error

	// NewSafeClient はリンク監査用のHTTPクライアントを生成する。
	// safeurlにより、プライベートIP、ループバック、リンクローカル、
	// メタデータIPへのリクエストが自動的にブロックされる。
	// DNS解決後のIPアドレスもDialerレベルで検証される。
	NewSafeClient(timeout time.Duration) *http.Client
}

// allowedSchemes は会員登録URLで許可されるスキーム。
var allowedSchemes = []string{"http", "https"}

// blockedNetworks は検証でブロックされるネットワーク範囲。
// パッケージ初期化時に1回だけパースする。
var blockedNetworks []net.IPNet

func init() {
	cidrs := []string{
		// プライベートIPアドレス (RFC 1918)
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		// ループバック (RFC 1122)
		"127.0.0.0/8",
		// リンクローカル (RFC 3927) - クラウドメタデータIP (169.254.169.254) を含む
		"169.254.0.0/16",
		// カレントネットワーク
		"0.0.0.0/8",
		// IPv6ループバック
		"::1/128",
		// IPv6リンクローカル
		"fe80::/10",
		// IPv6ユニークローカル
		"fc00::/7",
	}
	for _, cidr := range cidrs {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			panic(fmt.Sprintf("invalid CIDR in blockedNetworks: %s: %v", cidr, err))
		}
		blockedNetworks = append(blockedNetworks, *network)
	}
}

// urlGuard はURLGuardServiceの実装。
type urlGuard struct{}

// NewURLGuard はURLGuardServiceの新しいインスタンスを生成する。
func NewURLGuard() *urlGuard {
	return &urlGuard{}
}

// NewSafeClient はリンク監査用のHTTPクライアントを生成する。
// 会員が登録したURLへの定期プローブに使用する。
func (g *urlGuard) NewSafeClient(timeout time.Duration) *http.Client {
	config := safeurl.GetConfigBuilder().
		SetTimeout(timeout).
		SetAllowedSchemes(allowedSchemes...).
		SetAllowedPorts(80, 443).
		Build()

	wrappedClient := safeurl.Client(config)
	return wrappedClient.Client
}

// ValidateURL はURLの安全性を事前に検証する。
// DNS解決を伴わない静的な検証のみ行う。プロフィール更新や投稿の
// 受付時にリクエストを保存する前のチェックとして使用する。
// DNS再バインディングはNewSafeClientのDialer検証側で防止される。
func (g *urlGuard) ValidateURL(rawURL string) error {
	if rawURL == "" {
		return model.NewInvalidURLError("URL vide")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return model.NewInvalidURLError("format non reconnu")
	}

	scheme := strings.ToLower(parsed.Scheme)
	if !isAllowedScheme(scheme) {
		return model.NewInvalidURLError(fmt.Sprintf("schéma non autorisé : %s", scheme))
	}

	host := parsed.Hostname()
	if host == "" {
		return model.NewInvalidURLError("hôte manquant")
	}

	ip := net.ParseIP(host)
	if ip != nil {
		if isBlockedIP(ip) {
			return model.NewInvalidURLError("adresse IP non autorisée")
		}
		return nil
	}

	if isBlockedHostname(host) {
		return model.NewInvalidURLError("hôte non autorisé")
	}

	return nil
}

// isAllowedScheme はURLスキームが許可リストに含まれるかを検証する。
func isAllowedScheme(scheme string) bool {
	for _, allowed := range allowedSchemes {
		if strings.EqualFold(scheme, allowed) {
			return true
		}
	}
	return false
}

// isBlockedIP はIPアドレスがブロック対象のネットワーク範囲に含まれるかを検証する。
func isBlockedIP(ip net.IP) bool {
	for _, network := range blockedNetworks {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// blockedHostnames はブロック対象のホスト名。
var blockedHostnames = []string{
	"localhost",
}

// isBlockedHostname はホスト名がブロック対象かを検証する。
func isBlockedHostname(host string) bool {
	lower := strings.ToLower(host)
	for _, blocked := range blockedHostnames {
		if lower == blocked {
			return true
		}
	}
	return false
}
