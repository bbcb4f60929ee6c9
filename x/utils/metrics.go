package utils

import (
	"strconv"
	"time"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a decorator that counts processed transactions and measures
// the time spent handling them. Collectors are labeled with the message
// path, the phase (check or deliver) and the ABCI code of the result.
type Metrics struct {
	txs      *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ barter.Decorator = Metrics{}

// NewMetrics creates the collectors and registers them with given
// registerer. Use prometheus.NewRegistry in tests.
func NewMetrics(reg prometheus.Registerer) Metrics {
	m := Metrics{
		txs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barter",
			Subsystem: "tx",
			Name:      "processed_total",
			Help:      "Total transactions processed, by message path, phase and result code.",
		}, []string{"path", "phase", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "barter",
			Subsystem: "tx",
			Name:      "duration_seconds",
			Help:      "Time spent processing a transaction.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path", "phase"}),
	}
	reg.MustRegister(m.txs, m.duration)
	return m
}

// Check measures the check call.
func (m Metrics) Check(ctx barter.Context, store barter.KVStore, tx barter.Tx, next barter.Checker) (*barter.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	m.observe("check", tx, start, err)
	return res, err
}

// Deliver measures the deliver call.
func (m Metrics) Deliver(ctx barter.Context, store barter.KVStore, tx barter.Tx, next barter.Deliverer) (*barter.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	m.observe("deliver", tx, start, err)
	return res, err
}

func (m Metrics) observe(phase string, tx barter.Tx, start time.Time, err error) {
	path := barter.GetPath(tx)
	code, _ := errors.ABCIInfo(err, false)
	m.txs.WithLabelValues(path, phase, codeLabel(code)).Inc()
	m.duration.WithLabelValues(path, phase).Observe(time.Since(start).Seconds())
}

func codeLabel(code uint32) string {
	if code == 0 {
		return "ok"
	}
	return strconv.FormatUint(uint64(code), 10)
}
