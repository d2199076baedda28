// Package camundatest provides an in-memory worker.JobClient that records
// the commands a handler sends.
package camundatest

import (
	"context"
	"sync"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"google.golang.org/grpc"
)

// JobClient answers complete, fail and throw commands locally.
type JobClient struct {
	// CompleteErrs are returned by successive completion requests. Nil
	// entries and requests past the end succeed.
	CompleteErrs []error

	mu            sync.Mutex
	completeCalls int
	completed     []*pb.CompleteJobRequest
	failed        []*pb.FailJobRequest
	thrown        []*pb.ThrowErrorRequest
}

func noRetry(context.Context, error) bool { return false }

func (c *JobClient) NewCompleteJobCommand() commands.CompleteJobCommandStep1 {
	return commands.NewCompleteJobCommand(gateway{c: c}, noRetry)
}

func (c *JobClient) NewFailJobCommand() commands.FailJobCommandStep1 {
	return commands.NewFailJobCommand(gateway{c: c}, noRetry)
}

func (c *JobClient) NewThrowErrorCommand() commands.ThrowErrorCommandStep1 {
	return commands.NewThrowErrorCommand(gateway{c: c}, noRetry)
}

// CompleteCalls counts completion requests, including failed ones.
func (c *JobClient) CompleteCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.completeCalls
}

func (c *JobClient) Completed() []*pb.CompleteJobRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*pb.CompleteJobRequest(nil), c.completed...)
}

func (c *JobClient) Failed() []*pb.FailJobRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*pb.FailJobRequest(nil), c.failed...)
}

func (c *JobClient) Thrown() []*pb.ThrowErrorRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*pb.ThrowErrorRequest(nil), c.thrown...)
}

// gateway implements the three job RPCs; any other call panics.
type gateway struct {
	pb.GatewayClient
	c *JobClient
}

func (g gateway) CompleteJob(_ context.Context, in *pb.CompleteJobRequest, _ ...grpc.CallOption) (*pb.CompleteJobResponse, error) {
	g.c.mu.Lock()
	defer g.c.mu.Unlock()

	i := g.c.completeCalls
	g.c.completeCalls++
	if i < len(g.c.CompleteErrs) && g.c.CompleteErrs[i] != nil {
		return nil, g.c.CompleteErrs[i]
	}
	g.c.completed = append(g.c.completed, in)
	return &pb.CompleteJobResponse{}, nil
}

func (g gateway) FailJob(_ context.Context, in *pb.FailJobRequest, _ ...grpc.CallOption) (*pb.FailJobResponse, error) {
	g.c.mu.Lock()
	defer g.c.mu.Unlock()
	g.c.failed = append(g.c.failed, in)
	return &pb.FailJobResponse{}, nil
}

func (g gateway) ThrowError(_ context.Context, in *pb.ThrowErrorRequest, _ ...grpc.CallOption) (*pb.ThrowErrorResponse, error) {
	g.c.mu.Lock()
	defer g.c.mu.Unlock()
	g.c.thrown = append(g.c.thrown, in)
	return &pb.ThrowErrorResponse{}, nil
}
