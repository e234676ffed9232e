package worker_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/candidesk/candidesk/internal/adapters/mq/queue"
	worker "github.com/candidesk/candidesk/internal/adapters/mq/worker"
	"github.com/candidesk/candidesk/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeReducer struct {
	mu       sync.Mutex
	autofill []model.AutofillPatch
	status   []model.StatusUpdate
}

func (r *fakeReducer) ApplyAutofill(_ context.Context, p model.AutofillPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.autofill = append(r.autofill, p)
	return nil
}

func (r *fakeReducer) ApplyStatus(_ context.Context, u model.StatusUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = append(r.status, u)
	return nil
}

func (r *fakeReducer) counts() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.autofill), len(r.status)
}

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

func TestWorker(t *testing.T) {
	Convey("Given a worker draining a queue", t, func() {
		ctx := context.Background()
		q := queue.NewInMemoryQueue(queue.WithCapacity(16))
		reducer := &fakeReducer{}
		w := worker.New(q, reducer)
		go w.Run(ctx)

		Convey("Autofill and status messages dispatch to the reducer", func() {
			So(q.Enqueue(ctx, queue.Message{
				Kind:     model.PushAutofill,
				Autofill: &model.AutofillPatch{Name: "jane doe"},
			}), ShouldBeTrue)
			So(q.Enqueue(ctx, queue.Message{
				Kind:   model.PushStatus,
				Status: &model.StatusUpdate{Subject: "subj", Status: "Scheduled"},
			}), ShouldBeTrue)

			ok := waitFor(func() bool {
				a, s := reducer.counts()
				return a == 1 && s == 1
			})
			So(ok, ShouldBeTrue)
		})

		Convey("Malformed messages are dropped silently", func() {
			So(q.Enqueue(ctx, queue.Message{Kind: model.PushAutofill}), ShouldBeTrue)
			So(q.Enqueue(ctx, queue.Message{Kind: model.PushAutofill, Autofill: &model.AutofillPatch{}}), ShouldBeTrue)
			So(q.Enqueue(ctx, queue.Message{Kind: model.PushStatus, Status: &model.StatusUpdate{}}), ShouldBeTrue)
			So(q.Enqueue(ctx, queue.Message{Kind: "mystery"}), ShouldBeTrue)

			// A valid trailing message proves the malformed ones were
			// passed over without stopping the loop.
			So(q.Enqueue(ctx, queue.Message{
				Kind:   model.PushStatus,
				Status: &model.StatusUpdate{Subject: "subj", Status: "Done"},
			}), ShouldBeTrue)

			ok := waitFor(func() bool {
				a, s := reducer.counts()
				return a == 0 && s == 1
			})
			So(ok, ShouldBeTrue)
		})

		Convey("Shutdown stops the loop", func() {
			So(w.Shutdown(ctx), ShouldBeNil)

			Convey("And a second shutdown is safe", func() {
				So(w.Shutdown(ctx), ShouldBeNil)
			})
		})

		Convey("A closed queue ends the run loop", func() {
			So(q.Close(), ShouldBeNil)
			So(w.Shutdown(ctx), ShouldBeNil)
		})
	})
}
