package task_test

import (
	"testing"
	"time"

	"github.com/candidesk/candidesk/internal/domain/model"
	task "github.com/candidesk/candidesk/internal/domain/task"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSubject(t *testing.T) {
	Convey("Given a candidate for each variant", t, func() {
		base := model.Candidate{
			Draft: model.Draft{
				Name:       "Jane Doe",
				Technology: "React",
			},
		}

		Convey("Interview subjects carry the formatted datetime", func() {
			c := base
			c.TaskType = model.TaskInterview
			c.InterviewDateTime = "2024-05-01T14:30"
			So(task.Subject(c), ShouldEqual, "Interview Support - Jane Doe - React - May 1, 2024 at 2:30 PM")
		})

		Convey("Assessment subjects carry only the deadline date", func() {
			c := base
			c.TaskType = model.TaskAssessment
			c.AssessmentDeadline = "2024-05-04"
			So(task.Subject(c), ShouldEqual, "Assessment Support - Jane Doe - React - May 4, 2024")
		})

		Convey("Mock subjects carry the mode", func() {
			c := base
			c.TaskType = model.TaskMock
			c.MockMode = model.MockEvaluation
			c.AvailabilityDateTime = "2024-05-02T09:00"
			So(task.Subject(c), ShouldEqual, "Mock Interview - Jane Doe - React - Evaluation - May 2, 2024 at 9:00 AM")
		})

		Convey("Resume understanding subjects carry availability", func() {
			c := base
			c.TaskType = model.TaskResumeUnderstanding
			c.AvailabilityDateTime = "2024-05-03T16:00"
			So(task.Subject(c), ShouldEqual, "Resume Understanding - Jane Doe - React - May 3, 2024 at 4:00 PM")
		})

		Convey("Resume review subjects have no date", func() {
			c := base
			c.TaskType = model.TaskResumeReview
			So(task.Subject(c), ShouldEqual, "Resume Making - Jane Doe - React")
		})

		Convey("Identical inputs always produce identical subjects", func() {
			c := base
			c.TaskType = model.TaskInterview
			c.InterviewDateTime = "2024-05-01T14:30"
			So(task.Subject(c), ShouldEqual, task.Subject(c))
		})

		Convey("An unknown variant yields an empty subject", func() {
			c := base
			c.TaskType = "bogus"
			So(task.Subject(c), ShouldEqual, "")
		})
	})
}

func TestFormatDateTime(t *testing.T) {
	Convey("Given wall-clock strings", t, func() {
		So(task.FormatDateTime("2024-01-02T15:04"), ShouldEqual, "Jan 2, 2024 at 3:04 PM")
		So(task.FormatDateTime("2024-12-25T00:05"), ShouldEqual, "Dec 25, 2024 at 12:05 AM")
		So(task.FormatDateTime("2024-06-15T12:00"), ShouldEqual, "Jun 15, 2024 at 12:00 PM")

		Convey("A bare date renders as midnight", func() {
			So(task.FormatDateTime("2024-06-15"), ShouldEqual, "Jun 15, 2024 at 12:00 AM")
		})

		Convey("Empty and malformed input render empty", func() {
			So(task.FormatDateTime(""), ShouldEqual, "")
			So(task.FormatDateTime("not-a-date"), ShouldEqual, "")
		})
	})

	Convey("FormatDate drops the time portion", t, func() {
		So(task.FormatDate("2024-01-02T15:04"), ShouldEqual, "Jan 2, 2024")
		So(task.FormatDate("2024-01-02"), ShouldEqual, "Jan 2, 2024")
		So(task.FormatDate(""), ShouldEqual, "")
	})
}

func TestParseWallClock(t *testing.T) {
	Convey("Given stored datetime strings", t, func() {
		Convey("All three layouts parse", func() {
			for _, s := range []string{"2024-05-01T14:30:15", "2024-05-01T14:30", "2024-05-01"} {
				_, ok := task.ParseWallClock(s)
				So(ok, ShouldBeTrue)
			}
		})

		Convey("The parsed value is zone-less", func() {
			parsed, ok := task.ParseWallClock("2024-05-01T14:30")
			So(ok, ShouldBeTrue)
			So(parsed.Hour(), ShouldEqual, 14)
			So(parsed.Location(), ShouldEqual, time.UTC)
		})

		Convey("Empty and malformed input is rejected", func() {
			_, ok := task.ParseWallClock("")
			So(ok, ShouldBeFalse)
			_, ok = task.ParseWallClock("May 1, 2024")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestResetForType(t *testing.T) {
	Convey("Given a fully populated interview draft", t, func() {
		d := model.Draft{
			TaskType:          model.TaskInterview,
			Name:              "Jane Doe",
			Gender:            "Female",
			Technology:        "React",
			Email:             "jane@example.com",
			Phone:             "+1 (415) 555-2671",
			EndClient:         "Acme Corp",
			Duration:          "90",
			JobTitle:          "Frontend Engineer",
			InterviewRound:    "2",
			InterviewDateTime: "2024-05-01T14:30",
			Remarks:           "urgent",
			Expert:            "expert-7",
		}

		Convey("When switching to assessment", func() {
			got := task.ResetForType(d, model.TaskAssessment)

			Convey("The common fields and expert survive", func() {
				So(got.Name, ShouldEqual, d.Name)
				So(got.Gender, ShouldEqual, d.Gender)
				So(got.Technology, ShouldEqual, d.Technology)
				So(got.Email, ShouldEqual, d.Email)
				So(got.Phone, ShouldEqual, d.Phone)
				So(got.Expert, ShouldEqual, d.Expert)
			})

			Convey("EndClient survives because assessments have a client", func() {
				So(got.EndClient, ShouldEqual, "Acme Corp")
			})

			Convey("Variant-conditional fields reset", func() {
				So(got.JobTitle, ShouldBeEmpty)
				So(got.InterviewRound, ShouldBeEmpty)
				So(got.InterviewDateTime, ShouldBeEmpty)
				So(got.Remarks, ShouldBeEmpty)
				So(got.Duration, ShouldEqual, model.DefaultDuration)
			})
		})

		Convey("When switching to resume review the client is dropped", func() {
			got := task.ResetForType(d, model.TaskResumeReview)
			So(got.EndClient, ShouldBeEmpty)
			So(got.TaskType, ShouldEqual, model.TaskResumeReview)
		})
	})
}

func TestLabel(t *testing.T) {
	Convey("Every variant has a label", t, func() {
		for _, tt := range model.AllTaskTypes() {
			So(task.Label(tt), ShouldNotBeEmpty)
		}
		So(task.Label(model.TaskResumeReview), ShouldEqual, "Resume Making")
		So(task.Label("bogus"), ShouldBeEmpty)
	})
}
