package notification

import (
	"context"
	"sync"

	"github.com/notifykit/notifykit/pkg/template"
)

// dispatchJob is one notification's detached delivery work: the persisted
// record, its rendered content and the allowed channels in dispatch order.
type dispatchJob struct {
	notification Notification
	rendered     template.Rendered
	channels     []string
}

// dispatchPool runs dispatch jobs on a fixed set of workers. Jobs for
// different notifications run concurrently; within one job the channels are
// sent strictly one after another. Workers run detached from request
// contexts so a canceled creation request never interrupts delivery.
type dispatchPool struct {
	jobs    chan dispatchJob
	run     func(context.Context, dispatchJob)
	pending sync.WaitGroup
	workers sync.WaitGroup
}

func newDispatchPool(workers, buffer int, run func(context.Context, dispatchJob)) *dispatchPool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}

	p := &dispatchPool{
		jobs: make(chan dispatchJob, buffer),
		run:  run,
	}

	for i := 0; i < workers; i++ {
		p.workers.Add(1)
		go func() {
			defer p.workers.Done()
			for job := range p.jobs {
				p.run(context.Background(), job)
				p.pending.Done()
			}
		}()
	}

	return p
}

// enqueue hands a job to the pool. Blocks when the buffer is full; creation
// throughput backs off rather than dropping deliveries.
func (p *dispatchPool) enqueue(job dispatchJob) {
	p.pending.Add(1)
	p.jobs <- job
}

// drain waits until every enqueued job has finished, or ctx expires.
func (p *dispatchPool) drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// close drains the pool and stops the workers.
func (p *dispatchPool) close(ctx context.Context) error {
	if err := p.drain(ctx); err != nil {
		return err
	}
	close(p.jobs)

	done := make(chan struct{})
	go func() {
		p.workers.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
