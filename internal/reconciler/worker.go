package reconciler

import (
	"context"
	"fmt"

	"orghub_backend/internal/tenant"
	"orghub_backend/platform/config"
	"orghub_backend/platform/logger"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Worker consumes audit tasks. For every organization record it verifies the
// partition exists, and for every partition it verifies a directory record
// points at it. Findings are logged for an operator; nothing is deleted.
type Worker struct {
	server     *asynq.Server
	mux        *asynq.ServeMux
	pool       *pgxpool.Pool
	partitions *tenant.Store
	log        *logger.Logger
}

func NewWorker(cfg config.ReconcilerConfig, pool *pgxpool.Pool, log *logger.Logger) (*Worker, error) {
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

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 2
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:     server,
		mux:        mux,
		pool:       pool,
		partitions: tenant.NewStore(pool, log),
		log:        log,
	}

	mux.HandleFunc(TaskPartitionAudit, w.handlePartitionAudit)

	return w, nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("reconciler worker stopped", "error", err)
	}
}

func (w *Worker) handlePartitionAudit(ctx context.Context, task *asynq.Task) error {
	payload, err := ParsePartitionAuditPayload(task)
	if err != nil {
		return err
	}

	w.log.Info("partition audit started", "requested_at", payload.RequestedAt)

	recorded, err := w.recordedPartitions(ctx)
	if err != nil {
		return err
	}

	var missing int
	for partitionID, orgName := range recorded {
		exists, err := w.partitions.Exists(ctx, partitionID)
		if err != nil {
			return err
		}
		if !exists {
			missing++
			w.log.Warn("directory record points at a missing partition",
				"organization", orgName, "partition", partitionID)
		}
	}

	live, err := w.livePartitions(ctx)
	if err != nil {
		return err
	}

	var orphaned int
	for _, partitionID := range live {
		if _, ok := recorded[partitionID]; !ok {
			orphaned++
			w.log.Warn("partition has no directory record", "partition", partitionID)
		}
	}

	w.log.Info("partition audit finished",
		"organizations", len(recorded), "partitions", len(live),
		"missing_partitions", missing, "orphaned_partitions", orphaned)
	return nil
}

// recordedPartitions maps partition id to organization name for every
// directory record.
func (w *Worker) recordedPartitions(ctx context.Context) (map[string]string, error) {
	rows, err := w.pool.Query(ctx,
		`SELECT partition_id, organization_name FROM organizations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recorded := make(map[string]string)
	for rows.Next() {
		var partitionID, orgName string
		if err := rows.Scan(&partitionID, &orgName); err != nil {
			return nil, err
		}
		recorded[partitionID] = orgName
	}
	return recorded, rows.Err()
}

// livePartitions lists every table in the tenant schema.
func (w *Worker) livePartitions(ctx context.Context) ([]string, error) {
	rows, err := w.pool.Query(ctx,
		`SELECT tablename FROM pg_tables WHERE schemaname = 'tenant'`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var live []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		live = append(live, name)
	}
	return live, rows.Err()
}
