package utils

import (
	"time"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

// Logging writes one log entry per processed transaction, with the message
// path, the phase and the time it took. Failures are logged at error level,
// delivered transactions at info and checked ones at debug level.
type Logging struct{}

var _ barter.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx barter.Context, store barter.KVStore, tx barter.Tx, next barter.Checker) (*barter.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logResult(ctx, "check", tx, start, resLog, err)
	return res, err
}

func (Logging) Deliver(ctx barter.Context, store barter.KVStore, tx barter.Tx, next barter.Deliverer) (*barter.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logResult(ctx, "deliver", tx, start, resLog, err)
	return res, err
}

func logResult(ctx barter.Context, phase string, tx barter.Tx, start time.Time, resLog string, err error) {
	logger := barter.GetLogger(ctx).With(
		"phase", phase,
		"path", barter.GetPath(tx),
		"duration_us", time.Since(start).Microseconds(),
	)
	if err != nil {
		code, _ := errors.ABCIInfo(err, false)
		logger.Error("tx failed", "code", code, "err", err)
		return
	}
	if phase == "check" {
		logger.Debug("tx checked", "log", resLog)
		return
	}
	logger.Info("tx delivered", "log", resLog)
}
