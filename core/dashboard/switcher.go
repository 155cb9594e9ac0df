package dashboard

import (
	"errors"
	"sync"
)

var (
	// errors
	ErrInvalidTransition = errors.New("invalid dashboard transition")
	ErrNoContentManager  = errors.New("dashboard has no content manager")
	ErrUnknownAction     = errors.New("unknown dashboard action")
)

// View is the visible sub-view of a dashboard.
type View int

const (
	Summary View = iota
	CreateForm
	ContentManager
)

func (v View) String() string {
	switch v {
	case Summary:
		return "summary"
	case CreateForm:
		return "create-form"
	case ContentManager:
		return "content-manager"
	default:
		return "unknown"
	}
}

// Action is a user trigger posted by a dashboard.
type Action string

const (
	ActionCreate Action = "create"
	ActionSelect Action = "select"
	ActionBack   Action = "back"
)

// Switcher is the local view state of one dashboard.
//
//	Summary --OpenCreateForm--> CreateForm --CourseCreated|Back--> Summary
//	Summary --SelectCourse----> ContentManager --Back----------> Summary
type Switcher struct {
	mu             sync.Mutex
	view           View
	courseID       string
	contentManager bool
}

// NewSwitcher returns a Switcher on Summary. contentManager enables SelectCourse.
func NewSwitcher(contentManager bool) *Switcher {
	return &Switcher{contentManager: contentManager}
}

// Current returns the visible view and, for ContentManager, the selected course ID.
func (s *Switcher) Current() (View, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view, s.courseID
}

func (s *Switcher) OpenCreateForm() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view != Summary {
		return ErrInvalidTransition
	}
	s.view = CreateForm
	return nil
}

// CourseCreated closes the create form after a successful submit.
func (s *Switcher) CourseCreated() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view != CreateForm {
		return ErrInvalidTransition
	}
	s.view = Summary
	return nil
}

func (s *Switcher) SelectCourse(courseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.contentManager {
		return ErrNoContentManager
	}
	if s.view != Summary || courseID == "" {
		return ErrInvalidTransition
	}
	s.view = ContentManager
	s.courseID = courseID
	return nil
}

// Back returns to Summary from CreateForm or ContentManager.
func (s *Switcher) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view == Summary {
		return ErrInvalidTransition
	}
	s.view = Summary
	s.courseID = ""
	return nil
}

// Reset forces Summary; used when the dashboard is left (login/logout).
func (s *Switcher) Reset() {
	s.mu.Lock()
	s.view = Summary
	s.courseID = ""
	s.mu.Unlock()
}

// Apply dispatches a posted action.
func (s *Switcher) Apply(action Action, courseID string) error {
	switch action {
	case ActionCreate:
		return s.OpenCreateForm()
	case ActionSelect:
		return s.SelectCourse(courseID)
	case ActionBack:
		return s.Back()
	default:
		return ErrUnknownAction
	}
}
