package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "table_booking"

// Результаты сборки индекса
const (
	BuildPublished = "published"
	BuildDiscarded = "discarded"
	BuildFailed    = "failed"
)

// Результаты обращения к кэшу снимков
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Metrics набор prometheus-метрик сервиса на собственном реестре.
// Все методы безопасны для nil-получателя: выключенные метрики просто ничего не пишут.
type Metrics struct {
	service  string
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbConnections   *prometheus.GaugeVec

	indexBuildsTotal   *prometheus.CounterVec
	indexBuildDuration prometheus.Histogram
	indexSkipped       *prometheus.CounterVec
	indexOccupations   prometheus.Gauge

	feedFetchDuration *prometheus.HistogramVec
	snapshotCache     *prometheus.CounterVec
	brokerMessages    *prometheus.CounterVec
}

// New создаёт и регистрирует метрики сервиса
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		service:  serviceName,
		registry: prometheus.NewRegistry(),

		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "http_requests_total",
			Help:        "Количество HTTP запросов",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "http_request_duration_seconds",
			Help:        "Длительность обработки HTTP запросов",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "db_query_duration_seconds",
			Help:        "Длительность запросов к БД",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),

		dbConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "db_connections",
			Help:        "Состояние пула соединений с БД",
			ConstLabels: constLabels,
		}, []string{"state"}),

		indexBuildsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "index_builds_total",
			Help:        "Количество сборок индекса занятости по результату",
			ConstLabels: constLabels,
		}, []string{"result"}),

		indexBuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "index_build_duration_seconds",
			Help:        "Длительность обновления индекса вместе с загрузкой данных",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}),

		indexSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "index_skipped_records_total",
			Help:        "Записи, пропущенные при сборке индекса",
			ConstLabels: constLabels,
		}, []string{"reason"}),

		indexOccupations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "index_occupations",
			Help:        "Количество занятых (дата, слот, столик) в опубликованном индексе",
			ConstLabels: constLabels,
		}),

		feedFetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "feed_fetch_duration_seconds",
			Help:        "Длительность загрузки источников занятости",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"feed", "status"}),

		snapshotCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "snapshot_cache_requests_total",
			Help:        "Обращения к кэшу снимков по результату",
			ConstLabels: constLabels,
		}, []string{"result"}),

		brokerMessages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "broker_messages_total",
			Help:        "Сообщения брокера по направлению и результату",
			ConstLabels: constLabels,
		}, []string{"direction", "status"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbConnections,
		m.indexBuildsTotal,
		m.indexBuildDuration,
		m.indexSkipped,
		m.indexOccupations,
		m.feedFetchDuration,
		m.snapshotCache,
		m.brokerMessages,
	)

	return m
}

// Handler отдаёт метрики собственного реестра
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry нужен тестам для чтения значений
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) ObserveDBQuery(operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(operation, statusOf(err)).Observe(duration.Seconds())
}

// SetDBConnections выставляет состояние пула соединений
func (m *Metrics) SetDBConnections(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.dbConnections.WithLabelValues("open").Set(float64(open))
	m.dbConnections.WithLabelValues("in_use").Set(float64(inUse))
	m.dbConnections.WithLabelValues("idle").Set(float64(idle))
}

// ObserveIndexBuild учитывает завершённое обновление индекса.
// result: BuildPublished, BuildDiscarded или BuildFailed.
func (m *Metrics) ObserveIndexBuild(result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.indexBuildsTotal.WithLabelValues(result).Inc()
	m.indexBuildDuration.Observe(duration.Seconds())
}

func (m *Metrics) AddSkippedRecords(reason string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.indexSkipped.WithLabelValues(reason).Add(float64(count))
}

func (m *Metrics) SetIndexOccupations(count int) {
	if m == nil {
		return
	}
	m.indexOccupations.Set(float64(count))
}

func (m *Metrics) ObserveFeedFetch(feed string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	m.feedFetchDuration.WithLabelValues(feed, statusOf(err)).Observe(duration.Seconds())
}

// IncSnapshotCache result: CacheHit, CacheMiss или CacheError
func (m *Metrics) IncSnapshotCache(result string) {
	if m == nil {
		return
	}
	m.snapshotCache.WithLabelValues(result).Inc()
}

// IncBrokerMessage direction: "published" или "consumed"
func (m *Metrics) IncBrokerMessage(direction string, err error) {
	if m == nil {
		return
	}
	m.brokerMessages.WithLabelValues(direction, statusOf(err)).Inc()
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
