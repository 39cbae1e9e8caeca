package app

import (
	"github.com/ngocanhdo/engkids-backend/internal/http/handlers"
)

type Handlers struct {
	Auth    *handlers.AuthHandler
	Student *handlers.StudentHandler
	Lesson  *handlers.LessonHandler
	Editor  *handlers.EditorHandler
	Content *handlers.ContentHandler
	Video   *handlers.VideoHandler
	Game    *handlers.GameHandler
}

func wireHandlers(s Services) Handlers {
	return Handlers{
		Auth:    handlers.NewAuthHandler(s.Auth),
		Student: handlers.NewStudentHandler(s.Student, s.Content),
		Lesson:  handlers.NewLessonHandler(s.Lesson),
		Editor:  handlers.NewEditorHandler(s.Editor),
		Content: handlers.NewContentHandler(s.Content),
		Video:   handlers.NewVideoHandler(s.Content),
		Game:    handlers.NewGameHandler(s.Content),
	}
}
