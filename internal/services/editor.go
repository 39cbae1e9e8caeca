package services

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"

	types "github.com/ngocanhdo/engkids-backend/internal/domain"
	"github.com/ngocanhdo/engkids-backend/internal/platform/apierr"
	"github.com/ngocanhdo/engkids-backend/internal/platform/logger"
)

// editorSession is one open lesson in the checkpoint editor. All fields are
// guarded by mu; handlers only ever see copies.
type editorSession struct {
	mu sync.Mutex

	id      uuid.UUID
	lesson  *types.Lesson
	version *types.LessonVersion

	timeline *Timeline

	// Playback state. lastProgress is the previous progress tick, the lower
	// bound of the trigger window. lastTriggeredToken is the one-shot
	// tracker: a checkpoint never re-fires until a seek clears it.
	cursor             float64
	lastProgress       float64
	lastTriggeredToken string
	paused             bool

	// Editing state.
	editing         *types.CheckpointItem
	pendingDelete   string
	title           string
	description     string
	videoURL        string
	difficultyLevel int
	vocabIDs        []uuid.UUID

	// Loaded snapshot, for change detection at save time.
	loadedTitle       string
	loadedDescription string
}

// EditorState is the copy-out snapshot handlers serialize to the client.
type EditorState struct {
	SessionID       uuid.UUID              `json:"session_id"`
	LessonID        uuid.UUID              `json:"lesson_id"`
	Title           string                 `json:"title"`
	Description     string                 `json:"description"`
	VideoURL        string                 `json:"video_url"`
	DifficultyLevel int                    `json:"difficulty_level"`
	VocabularyIDs   []uuid.UUID            `json:"vocabulary_ids"`
	Cursor          float64                `json:"cursor"`
	Paused          bool                   `json:"paused"`
	Checkpoints     []types.CheckpointItem `json:"checkpoints"`
	Editing         *types.CheckpointItem  `json:"editing,omitempty"`
	PendingDeleteID string                 `json:"pending_delete_id,omitempty"`
}

// TriggerResult reports what a progress tick did. Checkpoint is set only
// when a checkpoint fired this tick.
type TriggerResult struct {
	Triggered  bool                  `json:"triggered"`
	Checkpoint *types.CheckpointItem `json:"checkpoint,omitempty"`
	Paused     bool                  `json:"paused"`
}

type EditorService interface {
	Open(ctx context.Context, lessonID uuid.UUID) (*EditorState, *EditorBootstrap, error)
	Close(sessionID uuid.UUID)
	State(sessionID uuid.UUID) (*EditorState, error)

	Progress(sessionID uuid.UUID, t float64) (*TriggerResult, error)
	Seek(sessionID uuid.UUID, t float64) (*EditorState, error)
	Resume(sessionID uuid.UUID) error

	AddCheckpoint(sessionID uuid.UUID, atSec *float64, kind string) (*EditorState, error)
	EditCheckpoint(sessionID uuid.UUID, token string) (*EditorState, error)
	SaveCheckpoint(sessionID uuid.UUID, item types.CheckpointItem) (*EditorState, error)
	CancelEdit(sessionID uuid.UUID) error

	RequestDelete(sessionID uuid.UUID, token string) error
	ConfirmDelete(sessionID uuid.UUID) (*EditorState, error)
	CancelDelete(sessionID uuid.UUID) error

	SetInfo(sessionID uuid.UUID, title, description string) error
	SetMeta(sessionID uuid.UUID, videoURL, difficulty string, vocabIDs []uuid.UUID) error

	Save(ctx context.Context, sessionID uuid.UUID) (*SaveOutcome, error)
}

type editorService struct {
	log     *logger.Logger
	lessons LessonService

	mu       sync.Mutex
	sessions map[uuid.UUID]*editorSession

	toleranceSec  float64
	enforceBounds bool
}

func NewEditorService(baseLog *logger.Logger, lessons LessonService, toleranceSec float64, enforceBounds bool) EditorService {
	if toleranceSec <= 0 {
		toleranceSec = 0.25
	}
	return &editorService{
		log:           baseLog.With("service", "EditorService"),
		lessons:       lessons,
		sessions:      make(map[uuid.UUID]*editorSession),
		toleranceSec:  toleranceSec,
		enforceBounds: enforceBounds,
	}
}

func (es *editorService) Open(ctx context.Context, lessonID uuid.UUID) (*EditorState, *EditorBootstrap, error) {
	boot, err := es.lessons.LoadEditor(ctx, lessonID)
	if err != nil {
		return nil, nil, err
	}

	sess := &editorSession{
		id:                uuid.New(),
		lesson:            boot.Lesson,
		version:           boot.Version,
		timeline:          NewTimeline(boot.Checkpoints),
		title:             boot.Lesson.Title,
		description:       boot.Lesson.Description,
		videoURL:          boot.Lesson.VideoURL,
		difficultyLevel:   boot.Lesson.DifficultyLevel,
		loadedTitle:       boot.Lesson.Title,
		loadedDescription: boot.Lesson.Description,
	}
	if boot.Version != nil {
		sess.videoURL = boot.Version.VideoURL
		sess.difficultyLevel = boot.Version.DifficultyLevel
	}

	es.mu.Lock()
	es.sessions[sess.id] = sess
	es.mu.Unlock()

	es.log.Info("editor session opened", "session_id", sess.id.String(), "lesson_id", lessonID.String())
	sess.mu.Lock()
	st := sess.snapshot()
	sess.mu.Unlock()
	return st, boot, nil
}

func (es *editorService) Close(sessionID uuid.UUID) {
	es.mu.Lock()
	delete(es.sessions, sessionID)
	es.mu.Unlock()
}

func (es *editorService) get(sessionID uuid.UUID) (*editorSession, error) {
	es.mu.Lock()
	sess, ok := es.sessions[sessionID]
	es.mu.Unlock()
	if !ok {
		return nil, apierr.NotFound("Phiên chỉnh sửa không tồn tại")
	}
	return sess, nil
}

func (es *editorService) State(sessionID uuid.UUID) (*EditorState, error) {
	sess, err := es.get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snapshot(), nil
}

// Progress advances the playback cursor. The trigger window is half-open,
// (previous tick, t + tolerance]: a checkpoint sitting exactly on the
// previous tick already had its chance and never fires twice.
func (es *editorService) Progress(sessionID uuid.UUID, t float64) (*TriggerResult, error) {
	sess, err := es.get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	prev := sess.lastProgress
	sess.lastProgress = t
	sess.cursor = t

	hit, ok := sess.timeline.NextInWindow(prev, t+es.toleranceSec, sess.lastTriggeredToken)
	if !ok {
		return &TriggerResult{Paused: sess.paused}, nil
	}

	sess.lastTriggeredToken = hit.Token
	sess.paused = true
	cp := hit
	return &TriggerResult{Triggered: true, Checkpoint: &cp, Paused: true}, nil
}

// Seek moves the cursor and resets the window lower bound to the target, so
// checkpoints jumped over never fire. Moving away from the triggered
// checkpoint clears the one-shot tracker, letting it fire again on a later
// pass.
func (es *editorService) Seek(sessionID uuid.UUID, t float64) (*EditorState, error) {
	sess, err := es.get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.cursor = t
	sess.lastProgress = t
	if sess.lastTriggeredToken != "" {
		if cp, ok := sess.timeline.Get(sess.lastTriggeredToken); !ok || math.Abs(cp.TimeSec-t) > es.toleranceSec {
			sess.lastTriggeredToken = ""
		}
	}
	return sess.snapshot(), nil
}

func (es *editorService) Resume(sessionID uuid.UUID) error {
	sess, err := es.get(sessionID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	sess.paused = false
	sess.mu.Unlock()
	return nil
}

func (es *editorService) AddCheckpoint(sessionID uuid.UUID, atSec *float64, kind string) (*EditorState, error) {
	sess, err := es.get(sessionID)
	if err != nil {
		return nil, err
	}

	k := types.CheckpointVocab
	if kind != "" {
		parsed, ok := types.ParseCheckpointKind(kind)
		if !ok {
			return nil, apierr.Validation("Loại checkpoint không hợp lệ")
		}
		k = parsed
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	at := sess.cursor
	if atSec != nil {
		at = *atSec
	}
	sess.paused = true
	sess.editing = &types.CheckpointItem{
		Token:   uuid.New().String(),
		TimeSec: at,
		Kind:    k,
		Content: types.EmptyCheckpointContent(),
	}
	return sess.snapshot(), nil
}

func (es *editorService) EditCheckpoint(sessionID uuid.UUID, token string) (*EditorState, error) {
	sess, err := es.get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	cp, ok := sess.timeline.Get(token)
	if !ok {
		return nil, apierr.NotFound("Không tìm thấy checkpoint")
	}
	sess.paused = true
	edit := cp
	sess.editing = &edit
	return sess.snapshot(), nil
}

func (es *editorService) SaveCheckpoint(sessionID uuid.UUID, item types.CheckpointItem) (*EditorState, error) {
	sess, err := es.get(sessionID)
	if err != nil {
		return nil, err
	}

	if _, ok := types.ParseCheckpointKind(string(item.Kind)); !ok {
		return nil, apierr.Validation("Loại checkpoint không hợp lệ")
	}
	if item.TimeSec < 0 {
		return nil, apierr.Validation("Thời điểm checkpoint không được âm")
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if es.enforceBounds && sess.lesson.DurationSec > 0 && item.TimeSec > sess.lesson.DurationSec {
		return nil, apierr.Validation("Thời điểm checkpoint vượt quá độ dài video")
	}
	if item.Token == "" {
		item.Token = uuid.New().String()
	}
	if item.Content.Options == nil {
		item.Content = types.EmptyCheckpointContent()
	}

	sess.timeline.Upsert(item)
	sess.editing = nil
	return sess.snapshot(), nil
}

func (es *editorService) CancelEdit(sessionID uuid.UUID) error {
	sess, err := es.get(sessionID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	sess.editing = nil
	sess.mu.Unlock()
	return nil
}

// RequestDelete stages a deletion; nothing changes until ConfirmDelete.
func (es *editorService) RequestDelete(sessionID uuid.UUID, token string) error {
	sess, err := es.get(sessionID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if _, ok := sess.timeline.Get(token); !ok {
		return apierr.NotFound("Không tìm thấy checkpoint")
	}
	sess.pendingDelete = token
	return nil
}

func (es *editorService) ConfirmDelete(sessionID uuid.UUID) (*EditorState, error) {
	sess, err := es.get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.pendingDelete == "" {
		return nil, apierr.Validation("Không có checkpoint nào đang chờ xoá")
	}
	sess.timeline.Remove(sess.pendingDelete)
	if sess.lastTriggeredToken == sess.pendingDelete {
		sess.lastTriggeredToken = ""
	}
	sess.pendingDelete = ""
	return sess.snapshot(), nil
}

func (es *editorService) CancelDelete(sessionID uuid.UUID) error {
	sess, err := es.get(sessionID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	sess.pendingDelete = ""
	sess.mu.Unlock()
	return nil
}

func (es *editorService) SetInfo(sessionID uuid.UUID, title, description string) error {
	sess, err := es.get(sessionID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	sess.title = title
	sess.description = description
	sess.mu.Unlock()
	return nil
}

func (es *editorService) SetMeta(sessionID uuid.UUID, videoURL, difficulty string, vocabIDs []uuid.UUID) error {
	sess, err := es.get(sessionID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	sess.videoURL = CleanVideoURL(videoURL)
	sess.difficultyLevel = DifficultyValue(difficulty)
	sess.vocabIDs = append([]uuid.UUID(nil), vocabIDs...)
	sess.mu.Unlock()
	return nil
}

// Save runs the three-step save saga. Steps are independent: a failure in
// one never stops the others, and the reducer collapses the results into
// either success or a single partial-save warning.
func (es *editorService) Save(ctx context.Context, sessionID uuid.UUID) (*SaveOutcome, error) {
	sess, err := es.get(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	items := sess.timeline.Items()
	hadVersion := sess.version != nil
	title := sess.title
	description := sess.description
	videoURL := sess.videoURL
	difficulty := sess.difficultyLevel
	vocabIDs := append([]uuid.UUID(nil), sess.vocabIDs...)
	infoChanged := title != sess.loadedTitle || description != sess.loadedDescription
	sess.mu.Unlock()

	steps := []SaveStep{
		{
			Name: SaveStepCheckpoints,
			Run: func(stepCtx context.Context) error {
				if hadVersion {
					sess.mu.Lock()
					versionID := sess.version.ID
					sess.mu.Unlock()
					return es.lessons.PersistCheckpoints(stepCtx, versionID, items)
				}
				sess.mu.Lock()
				lesson := *sess.lesson
				sess.mu.Unlock()
				lesson.VideoURL = videoURL
				lesson.DifficultyLevel = difficulty
				version, cErr := es.lessons.CreateVersionWithCheckpoints(stepCtx, &lesson, items)
				if cErr != nil {
					return cErr
				}
				sess.mu.Lock()
				sess.version = version
				sess.mu.Unlock()
				return nil
			},
		},
		{
			Name: SaveStepVersionMeta,
			Skip: !hadVersion,
			Run: func(stepCtx context.Context) error {
				sess.mu.Lock()
				versionID := sess.version.ID
				sess.mu.Unlock()
				return es.lessons.PersistVersionMeta(stepCtx, versionID, videoURL, difficulty, vocabIDs)
			},
		},
		{
			Name: SaveStepLessonInfo,
			Skip: !infoChanged,
			Run: func(stepCtx context.Context) error {
				sess.mu.Lock()
				lessonID := sess.lesson.ID
				sess.mu.Unlock()
				return es.lessons.PersistLessonInfo(stepCtx, lessonID, title, description)
			},
		},
	}

	outcome := RunSaveSaga(ctx, es.log, steps)
	if outcome.Succeeded(SaveStepLessonInfo) {
		sess.mu.Lock()
		sess.loadedTitle = title
		sess.loadedDescription = description
		sess.mu.Unlock()
	}
	if failed := outcome.Failed(); len(failed) > 0 {
		es.log.Warn("lesson save incomplete", "session_id", sessionID.String(), "failed_steps", fmt.Sprintf("%v", failed))
	}
	return &outcome, outcome.Reduce()
}

// snapshot must be called with sess.mu held.
func (sess *editorSession) snapshot() *EditorState {
	var editing *types.CheckpointItem
	if sess.editing != nil {
		cp := *sess.editing
		editing = &cp
	}
	return &EditorState{
		SessionID:       sess.id,
		LessonID:        sess.lesson.ID,
		Title:           sess.title,
		Description:     sess.description,
		VideoURL:        sess.videoURL,
		DifficultyLevel: sess.difficultyLevel,
		VocabularyIDs:   append([]uuid.UUID(nil), sess.vocabIDs...),
		Cursor:          sess.cursor,
		Paused:          sess.paused,
		Checkpoints:     sess.timeline.Items(),
		Editing:         editing,
		PendingDeleteID: sess.pendingDelete,
	}
}
