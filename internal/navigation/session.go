package navigation

import "github.com/google/uuid"

// Session is the view state that decides whether navigation input is accepted. The host owns it
// and checks AllowsNavigation before handing events to an Adapter. It serializes to JSON so a
// host can persist or log it.
type Session struct {
	ID            string `json:"id"`
	IntroVisible  bool   `json:"introVisible"`
	Transitioning bool   `json:"transitioning"`
	ModalOpen     bool   `json:"modalOpen"`
	ModalProject  string `json:"modalProject,omitempty"`
}

// NewSession returns a session that starts on the intro card.
func NewSession() Session {
	return Session{ID: uuid.NewString(), IntroVisible: true}
}

// AllowsNavigation reports whether input handlers may run. Closing the gate never interrupts
// Tick; the camera keeps homing in on the last target.
func (s Session) AllowsNavigation() bool {
	return !s.IntroVisible && !s.ModalOpen
}

// DismissIntro hides the intro card.
func (s Session) DismissIntro() Session {
	s.IntroVisible = false
	return s
}

// OpenModal records that the detail view for projectID is showing.
func (s Session) OpenModal(projectID string) Session {
	s.ModalOpen = true
	s.ModalProject = projectID
	return s
}

// CloseModal hides the detail view.
func (s Session) CloseModal() Session {
	s.ModalOpen = false
	s.ModalProject = ""
	return s
}

// SetTransitioning records whether the camera is between walls.
func (s Session) SetTransitioning(on bool) Session {
	s.Transitioning = on
	return s
}
