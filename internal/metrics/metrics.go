// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ハンドラーやワーカーから利用する。
type MetricsCollector interface {
	RecordHTTPStatus(statusCode int)
	RecordSignUp()
	RecordSignIn()
	RecordAuthFailure(reason string)
	RecordListingQuery(collection string)
	RecordModeration(resource string, operation string)
	RecordSessionsCleaned(count int)
	RecordLinkProbe(outcome string)
	RecordQueryLatency(duration time.Duration)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	httpStatus      *prometheus.CounterVec
	signUps         prometheus.Counter
	signIns         prometheus.Counter
	authFailures    *prometheus.CounterVec
	listingQueries  *prometheus.CounterVec
	moderationOps   *prometheus.CounterVec
	sessionsCleaned prometheus.Counter
	linkProbes      *prometheus.CounterVec
	queryLatency    prometheus.Histogram
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clubhouse_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		signUps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clubhouse_signups_total",
			Help: "会員登録成功の合計数",
		}),
		signIns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clubhouse_signins_total",
			Help: "サインイン成功の合計数",
		}),
		authFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clubhouse_auth_failures_total",
			Help: "認証失敗の理由別合計数",
		}, []string{"reason"}),
		listingQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clubhouse_listing_queries_total",
			Help: "コレクション別の一覧取得数",
		}, []string{"collection"}),
		moderationOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clubhouse_moderation_operations_total",
			Help: "管理操作のリソース・操作別合計数",
		}, []string{"resource", "operation"}),
		sessionsCleaned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clubhouse_sessions_cleaned_total",
			Help: "クリーンアップで削除された期限切れセッションの合計数",
		}),
		linkProbes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clubhouse_link_probes_total",
			Help: "会員登録URLの監査プローブの結果別合計数",
		}, []string{"outcome"}),
		queryLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "clubhouse_query_latency_seconds",
			Help:    "一覧クエリのレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.signUps,
		c.signIns,
		c.authFailures,
		c.listingQueries,
		c.moderationOps,
		c.sessionsCleaned,
		c.linkProbes,
		c.queryLatency,
	)

	return c
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordSignUp は会員登録成功を記録する。
func (c *Collector) RecordSignUp() {
	c.signUps.Inc()
}

// RecordSignIn はサインイン成功を記録する。
func (c *Collector) RecordSignIn() {
	c.signIns.Inc()
}

// RecordAuthFailure は認証失敗を理由別に記録する。
func (c *Collector) RecordAuthFailure(reason string) {
	c.authFailures.WithLabelValues(reason).Inc()
}

// RecordListingQuery は一覧取得をコレクション別に記録する。
func (c *Collector) RecordListingQuery(collection string) {
	c.listingQueries.WithLabelValues(collection).Inc()
}

// RecordModeration は管理操作をリソース・操作別に記録する。
func (c *Collector) RecordModeration(resource string, operation string) {
	c.moderationOps.WithLabelValues(resource, operation).Inc()
}

// RecordSessionsCleaned は削除された期限切れセッション数を記録する。
func (c *Collector) RecordSessionsCleaned(count int) {
	c.sessionsCleaned.Add(float64(count))
}

// RecordLinkProbe はリンク監査プローブの結果を記録する。
func (c *Collector) RecordLinkProbe(outcome string) {
	c.linkProbes.WithLabelValues(outcome).Inc()
}

// RecordQueryLatency は一覧クエリのレイテンシを記録する。
func (c *Collector) RecordQueryLatency(duration time.Duration) {
	c.queryLatency.Observe(duration.Seconds())
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute は/metricsエンドポイントを提供するHTTPハンドラーを返す。
// Prometheusスクレイプに対応する。
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
