package reconciler

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"orghub_backend/platform/config"
	"orghub_backend/platform/logger"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// Dispatcher periodically enqueues a partition audit task.
type Dispatcher struct {
	client   *asynq.Client
	queue    string
	interval time.Duration
	log      *logger.Logger
}

func NewDispatcher(cfg config.ReconcilerConfig, log *logger.Logger) (*Dispatcher, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	interval := cfg.GetReconcileInterval()
	if interval <= 0 {
		interval = time.Hour
	}

	return &Dispatcher{
		client:   asynq.NewClient(opt),
		queue:    queue,
		interval: interval,
		log:      log,
	}, nil
}

func (d *Dispatcher) Close() error {
	if d == nil || d.client == nil {
		return nil
	}
	return d.client.Close()
}

// Run enqueues an audit task on every tick until the context is cancelled.
// The first audit is enqueued immediately.
func (d *Dispatcher) Run(ctx context.Context) {
	if d == nil || d.client == nil {
		return
	}

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.enqueue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.enqueue(ctx)
		}
	}
}

func (d *Dispatcher) enqueue(ctx context.Context) {
	task, err := NewPartitionAuditTask(PartitionAuditPayload{RequestedAt: time.Now()})
	if err != nil {
		d.log.Warn("failed to build audit task", "error", err)
		return
	}

	if _, err := d.client.EnqueueContext(ctx, task, asynq.Queue(d.queue)); err != nil {
		d.log.Warn("failed to enqueue audit task", "error", err)
	}
}

func redisClientOpt(redisURL string, tlsInsecure bool) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	var tlsConfig *tls.Config
	if opt.TLSConfig != nil {
		clone := opt.TLSConfig.Clone()
		if tlsInsecure {
			clone.InsecureSkipVerify = true
		}
		tlsConfig = clone
	} else if tlsInsecure {
		tlsConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: tlsConfig,
	}, nil
}
