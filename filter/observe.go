package filter

import (
	"context"

	"github.com/kbukum/pktchain/errors"
	"github.com/kbukum/pktchain/logger"
	"github.com/kbukum/pktchain/observability"
	"github.com/kbukum/pktchain/packet"
)

// WithLogging wraps f so that failures are logged at error level and the
// drain at debug level. Ordinary packets and NeedMoreInput are not logged.
func WithLogging(f Filter, log *logger.Logger, stage int) Filter {
	return &loggedFilter{
		Filter: f,
		log: log.WithFields(logger.Fields(
			logger.FieldFilter, f.Name(),
			logger.FieldStage, stage,
		)),
	}
}

type loggedFilter struct {
	Filter
	log     *logger.Logger
	emitted int
	drained bool
}

func (f *loggedFilter) Push(pkt *packet.Packet) error {
	err := f.Filter.Push(pkt)
	if err != nil {
		f.log.WithError(err).Error("push failed")
	}
	return err
}

func (f *loggedFilter) Pull() (*packet.Packet, Status, error) {
	pkt, st, err := f.Filter.Pull()
	switch st {
	case StatusOK:
		f.emitted++
	case StatusError:
		f.log.WithError(err).Error("pull failed")
	case StatusEndOfStream:
		if !f.drained {
			f.drained = true
			f.log.Debug("filter drained", logger.Fields(logger.FieldPackets, f.emitted))
		}
	}
	return pkt, st, err
}

// WithMetrics wraps f so that packets in, packets out and errors are
// recorded on m.
func WithMetrics(ctx context.Context, f Filter, m *observability.Metrics, stage int) Filter {
	return &meteredFilter{Filter: f, ctx: ctx, metrics: m, stage: stage}
}

type meteredFilter struct {
	Filter
	ctx     context.Context
	metrics *observability.Metrics
	stage   int
}

func (f *meteredFilter) Push(pkt *packet.Packet) error {
	err := f.Filter.Push(pkt)
	switch {
	case err != nil:
		f.metrics.RecordError(f.ctx, f.Name(), f.stage, errorCode(err))
	case pkt != nil:
		f.metrics.RecordPacketIn(f.ctx, f.Name(), f.stage)
	}
	return err
}

func (f *meteredFilter) Pull() (*packet.Packet, Status, error) {
	pkt, st, err := f.Filter.Pull()
	switch st {
	case StatusOK:
		f.metrics.RecordPacketOut(f.ctx, f.Name(), f.stage, pkt.Len())
	case StatusError:
		f.metrics.RecordError(f.ctx, f.Name(), f.stage, errorCode(err))
	}
	return pkt, st, err
}

func errorCode(err error) string {
	if appErr, ok := errors.AsAppError(err); ok {
		return string(appErr.Code)
	}
	return string(errors.ErrCodeInternal)
}
