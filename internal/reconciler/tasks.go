// Package reconciler audits the directory against the tenant partitions.
// Multi-step workflows accept inconsistency windows instead of rolling back;
// this worker is the out-of-band tool that finds what those windows left
// behind. It only reports, it never deletes anything on its own.
package reconciler

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// TaskPartitionAudit walks every organization record and every tenant
// partition and reports the ones that lost their counterpart.
const TaskPartitionAudit = "tenant.partition.audit"

type PartitionAuditPayload struct {
	RequestedAt time.Time `json:"requested_at"`
}

func NewPartitionAuditTask(payload PartitionAuditPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPartitionAudit, data), nil
}

func ParsePartitionAuditPayload(task *asynq.Task) (PartitionAuditPayload, error) {
	var payload PartitionAuditPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return PartitionAuditPayload{}, err
	}
	return payload, nil
}
