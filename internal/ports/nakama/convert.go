package nakama

import (
	"time"

	"frontier/internal/domain"
)

// cardView is the wire shape of one card.
type cardView struct {
	Suit string `json:"suit"`
	Rank int    `json:"rank"`
	Name string `json:"name"`
}

// sessionView is the wire shape of a session returned to clients.
type sessionView struct {
	SessionID    string     `json:"session_id"`
	ActionID     string     `json:"action_id,omitempty"`
	JobID        string     `json:"job_id,omitempty"`
	Mode         string     `json:"mode"`
	RelevantSuit string     `json:"relevant_suit"`
	Hand         []cardView `json:"hand"`
	Stopped      bool       `json:"stopped"`
	Status       string     `json:"status"`
	StartedAt    string     `json:"started_at"`
	ExpiresAt    string     `json:"expires_at"`
}

func toCardViews(cards []domain.Card) []cardView {
	views := make([]cardView, len(cards))
	for i, c := range cards {
		views[i] = cardView{Suit: c.Suit, Rank: c.Rank, Name: c.String()}
	}
	return views
}

func toSessionView(s *domain.Session) sessionView {
	view := sessionView{
		SessionID:    s.ID,
		ActionID:     s.ActionID,
		Mode:         string(s.Mode),
		RelevantSuit: s.RelevantSuit,
		Hand:         toCardViews(s.Hand),
		Stopped:      s.Stopped,
		Status:       string(s.Status),
		StartedAt:    s.StartedAt.UTC().Format(time.RFC3339),
		ExpiresAt:    s.ExpiresAt.UTC().Format(time.RFC3339),
	}
	if s.Job != nil {
		view.JobID = s.Job.JobID
	}
	return view
}
