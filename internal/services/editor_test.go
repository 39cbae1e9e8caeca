package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	types "github.com/ngocanhdo/engkids-backend/internal/domain"
	"github.com/ngocanhdo/engkids-backend/internal/platform/apierr"
	"github.com/ngocanhdo/engkids-backend/internal/platform/logger"
)

// fakeLessonService records persistence calls so tests can assert which save
// steps ran.
type fakeLessonService struct {
	boot *EditorBootstrap

	persistCheckpointCalls int
	persistedItems         []types.CheckpointItem
	createVersionCalls     int
	persistMetaCalls       int
	persistInfoCalls       int
	lastTitle              string

	checkpointErr error
	metaErr       error
	infoErr       error
}

func (f *fakeLessonService) Create(context.Context, *types.Lesson) (*types.Lesson, error) {
	return nil, nil
}
func (f *fakeLessonService) List(context.Context) ([]*types.Lesson, error) { return nil, nil }
func (f *fakeLessonService) Get(context.Context, uuid.UUID) (*types.Lesson, error) {
	return nil, nil
}
func (f *fakeLessonService) Update(context.Context, uuid.UUID, map[string]interface{}) error {
	return nil
}
func (f *fakeLessonService) Delete(context.Context, uuid.UUID) error { return nil }

func (f *fakeLessonService) LoadEditor(context.Context, uuid.UUID) (*EditorBootstrap, error) {
	return f.boot, nil
}

func (f *fakeLessonService) PersistCheckpoints(_ context.Context, _ uuid.UUID, items []types.CheckpointItem) error {
	f.persistCheckpointCalls++
	f.persistedItems = items
	return f.checkpointErr
}

func (f *fakeLessonService) CreateVersionWithCheckpoints(_ context.Context, lesson *types.Lesson, items []types.CheckpointItem) (*types.LessonVersion, error) {
	f.createVersionCalls++
	f.persistedItems = items
	return &types.LessonVersion{ID: uuid.New(), LessonID: lesson.ID}, nil
}

func (f *fakeLessonService) PersistVersionMeta(context.Context, uuid.UUID, string, int, []uuid.UUID) error {
	f.persistMetaCalls++
	return f.metaErr
}

func (f *fakeLessonService) PersistLessonInfo(_ context.Context, _ uuid.UUID, title, _ string) error {
	f.persistInfoCalls++
	f.lastTitle = title
	return f.infoErr
}

func newTestBootstrap(withVersion bool) *EditorBootstrap {
	lessonID := uuid.New()
	boot := &EditorBootstrap{
		Lesson: &types.Lesson{
			ID:          lessonID,
			Title:       "Chào hỏi",
			VideoURL:    "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			DurationSec: 120,
		},
		Checkpoints: []types.CheckpointItem{
			{Token: "cp-1", TimeSec: 10, Kind: types.CheckpointVocab, Content: types.EmptyCheckpointContent()},
			{Token: "cp-2", TimeSec: 30, Kind: types.CheckpointQuestion, Content: types.EmptyCheckpointContent()},
		},
	}
	if withVersion {
		boot.Version = &types.LessonVersion{ID: uuid.New(), LessonID: lessonID, DifficultyLevel: 2}
	}
	return boot
}

func newTestEditor(t *testing.T, boot *EditorBootstrap) (EditorService, *fakeLessonService, uuid.UUID) {
	t.Helper()
	fake := &fakeLessonService{boot: boot}
	svc := NewEditorService(logger.Noop(), fake, 0.25, true)
	state, _, err := svc.Open(context.Background(), boot.Lesson.ID)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return svc, fake, state.SessionID
}

func TestEditorProgressTriggersOncePerArrival(t *testing.T) {
	svc, _, sid := newTestEditor(t, newTestBootstrap(true))

	res, err := svc.Progress(sid, 9.8)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if !res.Triggered || res.Checkpoint.Token != "cp-1" {
		t.Fatalf("expected cp-1 to fire at 9.8 with 0.25 tolerance, got %+v", res)
	}
	if !res.Paused {
		t.Fatal("trigger must pause playback")
	}

	// same checkpoint must not re-fire on the next ticks
	for _, tick := range []float64{9.9, 10.0, 10.1} {
		res, err = svc.Progress(sid, tick)
		if err != nil {
			t.Fatalf("Progress(%v): %v", tick, err)
		}
		if res.Triggered {
			t.Fatalf("cp-1 re-fired at %v", tick)
		}
	}
}

func TestEditorSeekSuppressesSkippedCheckpoints(t *testing.T) {
	svc, _, sid := newTestEditor(t, newTestBootstrap(true))

	// forward seek over cp-1 and cp-2
	if _, err := svc.Seek(sid, 60); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	res, err := svc.Progress(sid, 61)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if res.Triggered {
		t.Fatalf("checkpoints jumped over by the seek fired: %+v", res.Checkpoint)
	}
}

func TestEditorSeekClearsTriggerTracker(t *testing.T) {
	svc, _, sid := newTestEditor(t, newTestBootstrap(true))

	res, _ := svc.Progress(sid, 10)
	if !res.Triggered {
		t.Fatal("expected initial trigger")
	}

	// seek away and come back: the checkpoint may fire again
	if _, err := svc.Seek(sid, 5); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	res, err := svc.Progress(sid, 10)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if !res.Triggered || res.Checkpoint.Token != "cp-1" {
		t.Fatalf("cp-1 should re-fire after seek cleared the tracker, got %+v", res)
	}
}

func TestEditorTwoPhaseDelete(t *testing.T) {
	svc, _, sid := newTestEditor(t, newTestBootstrap(true))

	if err := svc.RequestDelete(sid, "cp-1"); err != nil {
		t.Fatalf("RequestDelete: %v", err)
	}
	st, err := svc.State(sid)
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if len(st.Checkpoints) != 2 {
		t.Fatal("request alone must not mutate the timeline")
	}

	if err := svc.CancelDelete(sid); err != nil {
		t.Fatalf("CancelDelete: %v", err)
	}
	if _, err := svc.ConfirmDelete(sid); err == nil {
		t.Fatal("confirm after cancel must fail, nothing is staged")
	}

	if err := svc.RequestDelete(sid, "cp-1"); err != nil {
		t.Fatalf("RequestDelete: %v", err)
	}
	st, err = svc.ConfirmDelete(sid)
	if err != nil {
		t.Fatalf("ConfirmDelete: %v", err)
	}
	if len(st.Checkpoints) != 1 || st.Checkpoints[0].Token != "cp-2" {
		t.Fatalf("expected only cp-2 left, got %+v", st.Checkpoints)
	}
}

func TestEditorSaveCheckpointValidation(t *testing.T) {
	svc, _, sid := newTestEditor(t, newTestBootstrap(true))

	_, err := svc.SaveCheckpoint(sid, types.CheckpointItem{Token: "x", TimeSec: 10, Kind: "bogus"})
	if apierr.From(err).Code != apierr.CodeValidationFailed {
		t.Fatalf("bad kind must fail validation, got %v", err)
	}

	_, err = svc.SaveCheckpoint(sid, types.CheckpointItem{Token: "x", TimeSec: -1, Kind: types.CheckpointNote})
	if apierr.From(err).Code != apierr.CodeValidationFailed {
		t.Fatalf("negative time must fail validation, got %v", err)
	}

	// lesson duration is 120s and bounds are enforced
	_, err = svc.SaveCheckpoint(sid, types.CheckpointItem{Token: "x", TimeSec: 500, Kind: types.CheckpointNote})
	if apierr.From(err).Code != apierr.CodeValidationFailed {
		t.Fatalf("out-of-bounds time must fail validation, got %v", err)
	}

	st, err := svc.SaveCheckpoint(sid, types.CheckpointItem{Token: "x", TimeSec: 20, Kind: types.CheckpointNote})
	if err != nil {
		t.Fatalf("SaveCheckpoint: %v", err)
	}
	if len(st.Checkpoints) != 3 {
		t.Fatalf("want 3 checkpoints got %d", len(st.Checkpoints))
	}
	if st.Checkpoints[1].Token != "x" {
		t.Fatalf("new checkpoint must slot in sorted position, got order %v", st.Checkpoints)
	}
}

func TestEditorSaveRunsExpectedSteps(t *testing.T) {
	svc, fake, sid := newTestEditor(t, newTestBootstrap(true))

	// no info change: only checkpoints and version meta run
	if _, err := svc.Save(context.Background(), sid); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if fake.persistCheckpointCalls != 1 {
		t.Fatalf("checkpoint step: want 1 call got %d", fake.persistCheckpointCalls)
	}
	if fake.persistMetaCalls != 1 {
		t.Fatalf("version meta step: want 1 call got %d", fake.persistMetaCalls)
	}
	if fake.persistInfoCalls != 0 {
		t.Fatalf("lesson info step must be skipped when unchanged, got %d calls", fake.persistInfoCalls)
	}

	// change the title: info step now runs
	if err := svc.SetInfo(sid, "Chào hỏi nâng cao", ""); err != nil {
		t.Fatalf("SetInfo: %v", err)
	}
	if _, err := svc.Save(context.Background(), sid); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if fake.persistInfoCalls != 1 || fake.lastTitle != "Chào hỏi nâng cao" {
		t.Fatalf("lesson info step: want 1 call with new title, got %d calls title=%q", fake.persistInfoCalls, fake.lastTitle)
	}
}

func TestEditorSaveWithoutVersionCreatesOne(t *testing.T) {
	svc, fake, sid := newTestEditor(t, newTestBootstrap(false))

	if _, err := svc.Save(context.Background(), sid); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if fake.createVersionCalls != 1 {
		t.Fatalf("want version created once, got %d", fake.createVersionCalls)
	}
	if fake.persistMetaCalls != 0 {
		t.Fatal("version meta step must be skipped when no version existed at load")
	}

	// second save reuses the created version
	if _, err := svc.Save(context.Background(), sid); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if fake.persistCheckpointCalls != 1 {
		t.Fatalf("second save should persist checkpoints against the new version, got %d calls", fake.persistCheckpointCalls)
	}
}

func TestEditorSavePartialFailure(t *testing.T) {
	svc, fake, sid := newTestEditor(t, newTestBootstrap(true))
	fake.metaErr = errors.New("db down")

	outcome, err := svc.Save(context.Background(), sid)
	if err == nil {
		t.Fatal("partial failure must surface a warning")
	}
	if apierr.From(err).Code != apierr.CodePartialSave {
		t.Fatalf("want code=%q got=%q", apierr.CodePartialSave, apierr.From(err).Code)
	}
	// the checkpoint step still ran and succeeded
	if fake.persistCheckpointCalls != 1 {
		t.Fatalf("checkpoint step should have run, got %d calls", fake.persistCheckpointCalls)
	}
	if !outcome.Succeeded(SaveStepCheckpoints) {
		t.Fatal("checkpoint step should count as succeeded")
	}
}
