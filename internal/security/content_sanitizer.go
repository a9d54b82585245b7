// Package security は会員が入力するコンテンツの検証機能を提供する。
//
// ContentSanitizerService は会員が投稿する本文（プロジェクト説明・
// ビジネス機会の説明・ニュース記事）をサニタイズし、
// XSSなどのリスクから閲覧者を保護する。
// bluemondayの許可リストベースのポリシーで、安全なタグと属性のみを通過させる。
package security

import (
	"net/url"

	"github.com/microcosm-cc/bluemonday"
)

// ContentSanitizerService は投稿本文のサニタイズ機能のインターフェースを定義する。
// 保存前およびAPI応答時に使用される。
type ContentSanitizerService interface {
	// Sanitize はHTMLコンテンツをサニタイズして安全なHTMLを返す。
	// 許可タグ（p, br, a, ul, ol, li, blockquote, strong, em）のみを通過させ、
	// script, iframe, styleタグおよびon*イベント属性を除去する。
	// aタグにはtarget="_blank"とrel="noopener noreferrer"が自動付与される。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(rawHTML string) string
}

// contentSanitizer はContentSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type contentSanitizer struct {
	policy *bluemonday.Policy
}

// NewContentSanitizer はContentSanitizerServiceの新しいインスタンスを生成する。
// 初期化時にbluemondayのカスタムポリシーを構築する。
// 会員投稿は軽い書式のみ許可し、埋め込みコンテンツは通さない。
func NewContentSanitizer() *contentSanitizer {
	p := bluemonday.NewPolicy()

	// 許可タグ（属性なしのシンプルなタグ）。
	// script, iframe, style等は許可リストに含めないことで自動的に除去される。
	// on*イベント属性はbluemondayのデフォルトで許可されない。
	p.AllowElements(
		"p", "br", "ul", "ol", "li",
		"blockquote", "strong", "em",
	)

	// aタグ: 絶対URLのみ。target="_blank"とrel="noreferrer noopener"を強制付与。
	p.AllowAttrs("href").OnElements("a")
	p.AllowRelativeURLs(false)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.RequireNoReferrerOnLinks(true)

	// 画像は本文中に埋め込まず、専用のimage_urlカラムで扱う。
	p.AllowURLSchemeWithCustomPolicy("https", func(u *url.URL) bool {
		return true
	})

	return &contentSanitizer{
		policy: p,
	}
}

// Sanitize はHTMLコンテンツをサニタイズして安全なHTMLを返す。
func (s *contentSanitizer) Sanitize(rawHTML string) string {
	return s.policy.Sanitize(rawHTML)
}
