package domain

import (
	"time"

	"github.com/google/uuid"
)

// VideoStatus is a step of the per-video engagement workflow.
type VideoStatus string

// Workflow steps, in order.
const (
	VideoStatusBriefingSent VideoStatus = "briefing_sent"
	VideoStatusVideoPosted  VideoStatus = "video_posted"
	VideoStatusSentToGroup  VideoStatus = "sent_to_group"
	VideoStatusEngaged      VideoStatus = "engaged"
)

var videoWorkflow = []VideoStatus{
	VideoStatusBriefingSent,
	VideoStatusVideoPosted,
	VideoStatusSentToGroup,
	VideoStatusEngaged,
}

// Video is one promotional video owned by a package or post
type Video struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	PackageID   uuid.UUID   `json:"package_id" db:"package_id"`
	VideoNumber int         `json:"video_number" db:"video_number"`
	Status      VideoStatus `json:"status" db:"status"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

// Valid reports whether s is a workflow step.
func (s VideoStatus) Valid() bool {
	return s.position() >= 0
}

// IsTerminal reports whether no further step follows s.
func (s VideoStatus) IsTerminal() bool {
	return s == VideoStatusEngaged
}

// Next returns the single step allowed after s. ok is false for the terminal
// step and for unknown values.
func (s VideoStatus) Next() (next VideoStatus, ok bool) {
	i := s.position()
	if i < 0 || s.IsTerminal() {
		return "", false
	}
	return videoWorkflow[i+1], true
}

func (s VideoStatus) position() int {
	for i, step := range videoWorkflow {
		if step == s {
			return i
		}
	}
	return -1
}

// CanAdvanceFrom reports whether role may move a video out of status.
// Admins drive the whole workflow; video managers only hand a posted video
// over to the group.
func CanAdvanceFrom(role Role, status VideoStatus) bool {
	switch role {
	case RoleAdmin:
		return true
	case RoleVideoManager:
		return status == VideoStatusVideoPosted
	}
	return false
}

// AllEngaged reports whether every video finished the workflow. An empty list
// is never considered finished.
func AllEngaged(videos []*Video) bool {
	if len(videos) == 0 {
		return false
	}
	for _, v := range videos {
		if v.Status != VideoStatusEngaged {
			return false
		}
	}
	return true
}

// AdvanceVideoRequest asks for the next workflow step of a video.
type AdvanceVideoRequest struct {
	Status VideoStatus `json:"status" validate:"required"`
}
