package handler

import (
	"net/http"

	"github.com/ritmodivulga/promo-engine/internal/domain"
	"github.com/ritmodivulga/promo-engine/internal/service"
	"github.com/ritmodivulga/promo-engine/pkg/response"
)

type VideoHandler struct {
	workflow *service.WorkflowService
}

func NewVideoHandler(workflow *service.WorkflowService) *VideoHandler {
	return &VideoHandler{workflow: workflow}
}

// Advance moves a video to the requested workflow step.
func (h *VideoHandler) Advance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "videoId")
	if !ok {
		return
	}
	var req domain.AdvanceVideoRequest
	if !decode(w, r, &req) {
		return
	}

	video, err := h.workflow.AdvanceVideo(r.Context(), actor(r), id, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.Success(w, video)
}
