package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ngocanhdo/engkids-backend/internal/platform/apierr"
	"github.com/ngocanhdo/engkids-backend/internal/platform/logger"
)

func TestRunSaveSagaAllSucceed(t *testing.T) {
	var order []string
	steps := []SaveStep{
		{Name: "one", Run: func(context.Context) error { order = append(order, "one"); return nil }},
		{Name: "two", Run: func(context.Context) error { order = append(order, "two"); return nil }},
	}
	out := RunSaveSaga(context.Background(), logger.Noop(), steps)
	if len(order) != 2 || order[0] != "one" || order[1] != "two" {
		t.Fatalf("steps must run in order, got %v", order)
	}
	if err := out.Reduce(); err != nil {
		t.Fatalf("all-success reduce must be nil, got %v", err)
	}
}

func TestRunSaveSagaContinuesPastFailure(t *testing.T) {
	var order []string
	steps := []SaveStep{
		{Name: "one", Run: func(context.Context) error { order = append(order, "one"); return errors.New("boom") }},
		{Name: "two", Run: func(context.Context) error { order = append(order, "two"); return nil }},
	}
	out := RunSaveSaga(context.Background(), logger.Noop(), steps)
	if len(order) != 2 {
		t.Fatalf("a failed step must not abort later steps, ran %v", order)
	}

	failed := out.Failed()
	if len(failed) != 1 || failed[0] != "one" {
		t.Fatalf("want failed=[one] got %v", failed)
	}
	if !out.Succeeded("two") {
		t.Fatal("two should count as succeeded")
	}

	err := out.Reduce()
	if err == nil {
		t.Fatal("partial failure must reduce to a warning")
	}
	ae := apierr.From(err)
	if ae.Code != apierr.CodePartialSave {
		t.Fatalf("want code=%q got=%q", apierr.CodePartialSave, ae.Code)
	}
	if ae.Error() != "Lưu chưa hoàn tất, vui lòng thử lại" {
		t.Fatalf("unexpected message: %q", ae.Error())
	}
}

func TestRunSaveSagaSkippedStepsNotAttempted(t *testing.T) {
	ran := false
	steps := []SaveStep{
		{Name: "one", Skip: true, Run: func(context.Context) error { ran = true; return errors.New("boom") }},
	}
	out := RunSaveSaga(context.Background(), logger.Noop(), steps)
	if ran {
		t.Fatal("skipped step must not run")
	}
	if out.Succeeded("one") {
		t.Fatal("skipped step must not count as succeeded")
	}
	if err := out.Reduce(); err != nil {
		t.Fatalf("skipped steps are not failures, got %v", err)
	}
}
