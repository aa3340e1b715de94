package consumerworker

import (
	"context"
	"encoding/json"

	"github.com/wb-go/wbf/zlog"

	"confbackend/internal/dto"
	"confbackend/internal/metrics"
	"confbackend/internal/rabbit"
)

// Reader drains the submission-events queue. Events are acknowledged once
// recorded; downstream notification hooks attach here.
type Reader struct {
	RMQ     *rabbit.Client
	metrics *metrics.Metrics
	done    chan struct{}
	cancel  context.CancelFunc
}

func NewReader(rmq *rabbit.Client, m *metrics.Metrics) *Reader {
	return &Reader{
		RMQ:     rmq,
		metrics: m,
		done:    make(chan struct{}),
	}
}

func (r *Reader) Start(ctx context.Context) {
	cctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	zlog.Logger.Info().Msg("Submission events reader started")

	go func() {
		defer close(r.done)

		handler := func(body []byte) error {
			var event dto.SubmissionEvent
			if err := json.Unmarshal(body, &event); err != nil {
				zlog.Logger.Error().
					Err(err).
					Msgf("Failed to unmarshal submission event: %s", string(body))
				return err
			}

			zlog.Logger.Info().
				Str("kind", event.Kind).
				Str("id", event.ID).
				Time("created_at", event.CreatedAt).
				Msg("Submission event received")

			r.metrics.IncEventsConsumed()
			return nil
		}

		if err := r.RMQ.Consume(handler); err != nil {
			zlog.Logger.Error().Err(err).Msg("Failed to start consuming")
			return
		}

		<-cctx.Done()
		zlog.Logger.Info().Msg("Submission events reader stopped by context")
	}()
}

func (r *Reader) Stop() {
	if r.cancel != nil {
		r.cancel()
		<-r.done
	}
}
