package blueprint

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/v0d1ch/aiken/errors"
	"github.com/v0d1ch/aiken/metrics"
)

// ValidatorError records a verification failure for one validator.
type ValidatorError struct {
	Validator string
	Err       error
}

func (e *ValidatorError) Error() string {
	return fmt.Sprintf("validator %s: %s", e.Validator, e.Err)
}

// VerifyAll rechecks the declared hash of every validator in the
// document, fanning the work out over the given number of worker
// goroutines. Failures are collected rather than aborting the batch,
// in the order the validators appear in the document. Cancelling ctx
// stops new validators from starting; ones already in flight finish.
func VerifyAll(ctx context.Context, bp *Blueprint, workers int) []*ValidatorError {
	if workers < 1 {
		workers = 1
	}
	defer metrics.RecordElapsed(time.Now())

	jobs := make(chan *Validator)
	var mu sync.Mutex
	failed := make(map[string]error, len(bp.Validators))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for v := range jobs {
				err := v.VerifyHash()
				if err == nil {
					metrics.ValidatorVerified()
					continue
				}
				metrics.ValidatorFailed(errors.Root(err).Error())
				mu.Lock()
				failed[v.Title] = err
				mu.Unlock()
			}
		}()
	}

feed:
	for _, v := range bp.Validators {
		select {
		case <-ctx.Done():
			break feed
		default:
		}
		select {
		case <-ctx.Done():
			break feed
		case jobs <- v:
		}
	}
	close(jobs)
	wg.Wait()

	var errs []*ValidatorError
	for _, v := range bp.Validators {
		if err, ok := failed[v.Title]; ok {
			errs = append(errs, &ValidatorError{Validator: v.Title, Err: err})
		}
	}
	return errs
}
