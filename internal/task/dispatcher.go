package task

import (
	"context"
	"errors"
	"time"

	"github.com/ankitpatne/clipTag/internal/logger"
	"github.com/ankitpatne/clipTag/internal/port"
	"github.com/hibiken/asynq"
)

// analyses are never retried automatically
const analyseMaxRetry = 0

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type Dispatcher struct {
	client  enqueuer
	timeout time.Duration
}

// compile-time check
var _ port.TaskDispatcher = (*Dispatcher)(nil)

// NewDispatcher returns a dispatcher whose analyse tasks are cancelled after timeout.
func NewDispatcher(addr, password string, timeout time.Duration) *Dispatcher {
	c := asynq.NewClient(asynq.RedisClientOpt{Addr: addr, Password: password})
	return &Dispatcher{client: c, timeout: timeout}
}

func (d *Dispatcher) EnqueueAnalyseVideo(ctx context.Context, videoID string) error {
	t, err := NewAnalyseVideoTask(videoID)
	if err != nil {
		return err
	}

	_, err = d.client.EnqueueContext(ctx, t,
		asynq.TaskID(TypeAnalyseVideo+":"+videoID),
		asynq.MaxRetry(analyseMaxRetry),
		asynq.Timeout(d.timeout),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		logger.Infof(ctx, "analysis of video %q is already queued", videoID)
		return nil
	}
	return err
}
