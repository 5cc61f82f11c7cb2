package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type JobIndexedEvent struct {
	Type      string `json:"type"`
	JobID     string `json:"job_id"`
	Title     string `json:"title"`
	Timestamp string `json:"timestamp"`
}

type MatchComputedEvent struct {
	Type        string  `json:"type"`
	CandidateID string  `json:"candidate_id"`
	JobID       string  `json:"job_id"`
	Score       float64 `json:"score"`
	Timestamp   string  `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

// NotifyJobIndexed broadcasts that a posting entered or re-entered the
// index. Safe to call before SetDefaultHub; events are dropped until a hub
// is installed.
func NotifyJobIndexed(jobID uuid.UUID, title string) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	evt := JobIndexedEvent{
		Type:      "job_indexed",
		JobID:     jobID.String(),
		Title:     title,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}

// NotifyMatchComputed broadcasts a freshly scored candidate and job pair.
func NotifyMatchComputed(candidateID, jobID uuid.UUID, score float64) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	evt := MatchComputedEvent{
		Type:        "match_computed",
		CandidateID: candidateID.String(),
		JobID:       jobID.String(),
		Score:       score,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}
