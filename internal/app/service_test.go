package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/candidesk/candidesk/internal/adapters/bus"
	service "github.com/candidesk/candidesk/internal/app"
	"github.com/candidesk/candidesk/internal/domain/field"
	"github.com/candidesk/candidesk/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func startService(t *testing.T, opts ...service.Option) *service.Service {
	t.Helper()
	svc := service.New(opts...)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start service: %v", err)
	}
	return svc
}

func fillValidDraft(ctx context.Context, svc *service.Service) {
	_, _ = svc.SetField(ctx, "name", "jane doe")
	_, _ = svc.SetField(ctx, "technology", "react")
	_, _ = svc.SetField(ctx, "email", "jane@example.com")
	_, _ = svc.SetField(ctx, "interviewDateTime", "2024-06-03T14:00")
}

func TestDraftLifecycle(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := startService(t)
		Reset(svc.Stop)

		Convey("A fresh draft is an interview with the default duration", func() {
			d := svc.Draft()
			So(d.TaskType, ShouldEqual, model.TaskInterview)
			So(d.Duration, ShouldEqual, model.DefaultDuration)
		})

		Convey("SetField derives as it writes", func() {
			Convey("Name-like fields are capitalized", func() {
				_, err := svc.SetField(ctx, "name", "jane doe")
				So(err, ShouldBeNil)
				So(svc.Draft().Name, ShouldEqual, "Jane Doe")
			})

			Convey("Phone is normalized", func() {
				_, err := svc.SetField(ctx, "phone", "4155552671")
				So(err, ShouldBeNil)
				So(svc.Draft().Phone, ShouldEqual, "+1 (415) 555-2671")
			})

			Convey("A failing validator fills the error map without blocking the write", func() {
				msg, err := svc.SetField(ctx, "email", "broken")
				So(err, ShouldBeNil)
				So(msg, ShouldNotBeEmpty)
				So(svc.Draft().Email, ShouldEqual, "broken")
				So(svc.DraftErrors(), ShouldContainKey, "email")

				Convey("And a later valid value clears it", func() {
					_, _ = svc.SetField(ctx, "email", "jane@example.com")
					So(svc.DraftErrors(), ShouldNotContainKey, "email")
				})
			})

			Convey("Unknown field names are rejected", func() {
				_, err := svc.SetField(ctx, "bogus", "x")
				So(errors.Is(err, service.ErrUnknownField), ShouldBeTrue)
			})
		})

		Convey("An out-of-hours datetime raises a non-blocking warning", func() {
			sub := svc.Subscribe(bus.ValidationWarning)
			defer sub.Close()

			msg, err := svc.SetField(ctx, "interviewDateTime", "2024-06-03T20:00")
			So(err, ShouldBeNil)
			So(msg, ShouldBeEmpty) // warning, not a validation error

			select {
			case n := <-sub.C:
				So(n.Severity, ShouldEqual, bus.SeverityWarning)
				So(n.Message, ShouldEqual, field.BusinessHoursWarning)
			case <-time.After(time.Second):
				So("no warning received", ShouldBeEmpty)
			}
		})

		Convey("Switching the variant keeps common fields and resets the rest", func() {
			fillValidDraft(ctx, svc)
			_, _ = svc.SetField(ctx, "jobTitle", "frontend engineer")

			So(svc.SwitchTaskType(ctx, model.TaskAssessment), ShouldBeNil)
			d := svc.Draft()
			So(d.TaskType, ShouldEqual, model.TaskAssessment)
			So(d.Name, ShouldEqual, "Jane Doe")
			So(d.JobTitle, ShouldBeEmpty)
			So(d.InterviewDateTime, ShouldBeEmpty)
			So(d.Duration, ShouldEqual, model.DefaultDuration)
			So(svc.DraftErrors(), ShouldBeEmpty)

			Convey("An unknown variant is rejected", func() {
				So(svc.SwitchTaskType(ctx, "bogus"), ShouldNotBeNil)
			})
		})

		Convey("Submitting an invalid draft blocks and reports per field", func() {
			_, result, err := svc.Submit(ctx)
			So(errors.Is(err, service.ErrValidation), ShouldBeTrue)
			So(result.FieldErrors, ShouldContainKey, "email")
			So(svc.Records(ctx), ShouldBeEmpty)
		})

		Convey("Submitting a valid draft persists and resets", func() {
			fillValidDraft(ctx, svc)
			saved, result, err := svc.Submit(ctx)
			So(err, ShouldBeNil)
			So(result.IsValid, ShouldBeTrue)
			So(saved.ID, ShouldNotBeEmpty)
			So(saved.Subject, ShouldStartWith, "Interview Support - Jane Doe - React")
			So(len(svc.Records(ctx)), ShouldEqual, 1)

			Convey("The draft is fresh afterwards", func() {
				So(svc.Draft().Name, ShouldBeEmpty)
			})

			Convey("The corpus picks up the new record", func() {
				So(svc.Corpus(ctx).Names, ShouldContain, "Jane Doe")
			})

			Convey("Editing loads the record and submitting updates in place", func() {
				So(svc.EditRecord(ctx, saved.ID), ShouldBeNil)
				So(svc.Draft().Name, ShouldEqual, "Jane Doe")

				_, _ = svc.SetField(ctx, "name", "jane updated")
				updated, _, err := svc.Submit(ctx)
				So(err, ShouldBeNil)
				So(updated.ID, ShouldEqual, saved.ID)
				So(len(svc.Records(ctx)), ShouldEqual, 1)
			})

			Convey("Cloning pre-fills but mints a new id on submit", func() {
				So(svc.CloneRecord(ctx, saved.ID), ShouldBeNil)
				So(svc.Draft().Name, ShouldEqual, "Jane Doe")

				cloned, _, err := svc.Submit(ctx)
				So(err, ShouldBeNil)
				So(cloned.ID, ShouldNotEqual, saved.ID)
				So(len(svc.Records(ctx)), ShouldEqual, 2)
			})

			Convey("Delete removes the record", func() {
				removed, err := svc.Delete(ctx, saved.ID)
				So(err, ShouldBeNil)
				So(removed.ID, ShouldEqual, saved.ID)
				So(svc.Records(ctx), ShouldBeEmpty)
			})
		})

		Convey("ResetDraft discards edits and edit mode", func() {
			fillValidDraft(ctx, svc)
			svc.ResetDraft()
			So(svc.Draft().Name, ShouldBeEmpty)
			So(svc.DraftErrors(), ShouldBeEmpty)
		})
	})
}

func TestScreeningDeadline(t *testing.T) {
	Convey("Given a service with a fixed clock", t, func() {
		ctx := context.Background()
		now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		svc := startService(t, service.WithClock(func() time.Time { return now }))
		Reset(svc.Stop)

		So(svc.SwitchTaskType(ctx, model.TaskAssessment), ShouldBeNil)

		Convey("Flipping screening on derives the three-day deadline", func() {
			svc.SetScreeningDone(ctx, true)
			d := svc.Draft()
			So(d.ScreeningDone, ShouldBeTrue)
			So(d.AssessmentDeadline, ShouldEqual, "2024-03-04")
		})

		Convey("Flipping screening off keeps the deadline untouched", func() {
			svc.SetScreeningDone(ctx, true)
			svc.SetScreeningDone(ctx, false)
			d := svc.Draft()
			So(d.ScreeningDone, ShouldBeFalse)
			So(d.AssessmentDeadline, ShouldEqual, "2024-03-04")
		})

		Convey("Not-mentioned deadlines follow the category", func() {
			svc.MarkDeadlineNotMentioned(ctx, field.DeadlineTechnical)
			So(svc.Draft().AssessmentDeadline, ShouldEqual, "2024-03-08")
		})
	})
}

func TestReconciliation(t *testing.T) {
	Convey("Given a started service with a record", t, func() {
		ctx := context.Background()
		now := time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)
		svc := startService(t, service.WithClock(func() time.Time { return now }))
		Reset(svc.Stop)

		fillValidDraft(ctx, svc)
		saved, _, err := svc.Submit(ctx)
		So(err, ShouldBeNil)

		Convey("An autofill patch merges only the fields it carries", func() {
			_, _ = svc.SetField(ctx, "name", "partial entry")

			So(svc.ApplyAutofill(ctx, model.AutofillPatch{
				Name:  "amara okafor",
				Phone: "2125559876",
			}), ShouldBeNil)

			d := svc.Draft()
			So(d.Name, ShouldEqual, "Amara Okafor")
			So(d.Phone, ShouldEqual, "+1 (212) 555-9876")
			So(d.Email, ShouldBeEmpty) // absent in the patch, untouched

			Convey("Later patches win for the fields they share", func() {
				So(svc.ApplyAutofill(ctx, model.AutofillPatch{Name: "final name"}), ShouldBeNil)
				So(svc.Draft().Name, ShouldEqual, "Final Name")
				So(svc.Draft().Phone, ShouldEqual, "+1 (212) 555-9876")
			})

			Convey("And a DraftPatched notification names the changed fields", func() {
				sub := svc.Subscribe(bus.DraftPatched)
				defer sub.Close()

				So(svc.ApplyAutofill(ctx, model.AutofillPatch{Email: "a@example.com"}), ShouldBeNil)
				select {
				case n := <-sub.C:
					So(n.Fields, ShouldResemble, []string{"email"})
				case <-time.After(time.Second):
					So("no notification received", ShouldBeEmpty)
				}
			})
		})

		Convey("An empty patch is a no-op", func() {
			before := svc.Draft()
			So(svc.ApplyAutofill(ctx, model.AutofillPatch{}), ShouldBeNil)
			So(svc.Draft(), ShouldResemble, before)
		})

		Convey("A status update matches by recomputed subject", func() {
			So(svc.ApplyStatus(ctx, model.StatusUpdate{
				Subject: saved.Subject,
				Status:  "Scheduled",
			}), ShouldBeNil)

			records := svc.Records(ctx)
			So(records[0].Status, ShouldEqual, "Scheduled")
			firstStamp := records[0].UpdatedAt

			Convey("Replaying the same update changes nothing, timestamps included", func() {
				now = now.Add(time.Hour)
				So(svc.ApplyStatus(ctx, model.StatusUpdate{
					Subject: saved.Subject,
					Status:  "Scheduled",
				}), ShouldBeNil)

				records := svc.Records(ctx)
				So(records[0].Status, ShouldEqual, "Scheduled")
				So(records[0].UpdatedAt, ShouldEqual, firstStamp)
			})

			Convey("A different status for the same subject is applied", func() {
				now = now.Add(time.Hour)
				So(svc.ApplyStatus(ctx, model.StatusUpdate{
					Subject: saved.Subject,
					Status:  "Completed",
				}), ShouldBeNil)

				records := svc.Records(ctx)
				So(records[0].Status, ShouldEqual, "Completed")
				So(records[0].UpdatedAt, ShouldNotEqual, firstStamp)
			})
		})

		Convey("Records sharing a subject all receive the status", func() {
			// A clone keeps every subject-bearing field, so both records
			// recompute to the same subject line.
			So(svc.CloneRecord(ctx, saved.ID), ShouldBeNil)
			twin, _, err := svc.Submit(ctx)
			So(err, ShouldBeNil)
			So(twin.ID, ShouldNotEqual, saved.ID)
			So(twin.Subject, ShouldEqual, saved.Subject)

			So(svc.ApplyStatus(ctx, model.StatusUpdate{
				Subject: saved.Subject,
				Status:  "Completed",
			}), ShouldBeNil)

			records := svc.Records(ctx)
			So(len(records), ShouldEqual, 2)
			So(records[0].Status, ShouldEqual, "Completed")
			So(records[1].Status, ShouldEqual, "Completed")

			Convey("The unchanged-status skip stays per record", func() {
				// Replace one twin with a fresh same-subject record that
				// missed the update: replaying catches it up while the
				// current record keeps its stamp.
				_, err := svc.Delete(ctx, twin.ID)
				So(err, ShouldBeNil)
				fillValidDraft(ctx, svc)
				lagging, _, err := svc.Submit(ctx)
				So(err, ShouldBeNil)
				So(lagging.Subject, ShouldEqual, saved.Subject)

				currentStamp := svc.Records(ctx)[0].UpdatedAt
				now = now.Add(time.Hour)
				So(svc.ApplyStatus(ctx, model.StatusUpdate{
					Subject: saved.Subject,
					Status:  "Completed",
				}), ShouldBeNil)

				records := svc.Records(ctx)
				So(records[0].Status, ShouldEqual, "Completed")
				So(records[0].UpdatedAt, ShouldEqual, currentStamp)
				So(records[1].Status, ShouldEqual, "Completed")
				So(records[1].UpdatedAt, ShouldNotEqual, currentStamp)
			})
		})

		Convey("An unmatched subject is dropped without error", func() {
			So(svc.ApplyStatus(ctx, model.StatusUpdate{
				Subject: "Interview Support - Nobody - None - Jan 1, 2000 at 12:00 AM",
				Status:  "Scheduled",
			}), ShouldBeNil)
			So(svc.Records(ctx)[0].Status, ShouldBeEmpty)
		})

		Convey("Push messages travel through the queue to the reducer", func() {
			So(svc.EnqueuePush(ctx, model.PushMessage{
				Kind:   model.PushStatus,
				Status: &model.StatusUpdate{Subject: saved.Subject, Status: "Queued"},
			}), ShouldBeTrue)

			deadline := time.Now().Add(2 * time.Second)
			for time.Now().Before(deadline) {
				if svc.Records(ctx)[0].Status == "Queued" {
					break
				}
				time.Sleep(5 * time.Millisecond)
			}
			So(svc.Records(ctx)[0].Status, ShouldEqual, "Queued")
		})
	})
}

func TestGetStats(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startService(t)
		Reset(svc.Stop)

		stats := svc.GetStats()
		So(stats["started"], ShouldBeTrue)
		So(stats["records"], ShouldEqual, 0)
		So(stats["draftType"], ShouldEqual, string(model.TaskInterview))
	})
}
