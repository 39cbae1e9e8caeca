package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/ngocanhdo/engkids-backend/internal/platform/apierr"
	"github.com/ngocanhdo/engkids-backend/internal/platform/logger"
)

const (
	SaveStepCheckpoints = "checkpoints"
	SaveStepVersionMeta = "version_meta"
	SaveStepLessonInfo  = "lesson_info"
)

// SaveStep is one independently-recorded unit of a lesson save. Skip marks
// steps whose precondition does not hold this round (no version row yet,
// title unchanged); skipped steps count as not attempted.
type SaveStep struct {
	Name string
	Skip bool
	Run  func(ctx context.Context) error
}

type StepResult struct {
	Name    string
	Skipped bool
	Err     error
}

type SaveOutcome struct {
	Steps []StepResult
}

// RunSaveSaga executes every non-skipped step in order and records each
// result. A failed step never aborts the rest: later steps still run so a
// transient failure loses as little work as possible.
func RunSaveSaga(ctx context.Context, log *logger.Logger, steps []SaveStep) SaveOutcome {
	out := SaveOutcome{Steps: make([]StepResult, 0, len(steps))}
	for _, step := range steps {
		if step.Skip {
			out.Steps = append(out.Steps, StepResult{Name: step.Name, Skipped: true})
			continue
		}
		err := step.Run(ctx)
		if err != nil && log != nil {
			log.Warn("save step failed", "step", step.Name, "error", err)
		}
		out.Steps = append(out.Steps, StepResult{Name: step.Name, Err: err})
	}
	return out
}

func (o SaveOutcome) Failed() []string {
	var names []string
	for _, r := range o.Steps {
		if !r.Skipped && r.Err != nil {
			names = append(names, r.Name)
		}
	}
	return names
}

func (o SaveOutcome) Succeeded(name string) bool {
	for _, r := range o.Steps {
		if r.Name == name {
			return !r.Skipped && r.Err == nil
		}
	}
	return false
}

// Reduce collapses the step results into the single outcome the client
// sees: nil when every attempted step succeeded, otherwise one partial-save
// warning. Which steps failed goes to the log, not the user.
func (o SaveOutcome) Reduce() error {
	if len(o.Failed()) == 0 {
		return nil
	}
	return apierr.New(http.StatusMultiStatus, apierr.CodePartialSave,
		errors.New("Lưu chưa hoàn tất, vui lòng thử lại"))
}
