package camunda

import (
	"context"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// completeRetry governs retries of the completion command.
var completeRetry = DefaultRetryConfig

// CompleteJob completes job with output marshalled as process variables.
// Transient gateway errors are retried; an output that cannot be encoded
// fails at once.
func CompleteJob(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}) error {
	cmd, err := client.NewCompleteJobCommand().JobKey(job.Key).VariablesFromObject(output)
	if err != nil {
		return fmt.Errorf("encode output variables: %w", err)
	}
	_, err = ExecuteWithRetry(ctx, completeRetry, func(ctx context.Context) (interface{}, error) {
		return cmd.Send(ctx)
	}, "complete-job")
	return err
}
