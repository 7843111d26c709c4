package http

import (
	"net/http"

	"facilitydesk/internal/adapter/middleware"
	"facilitydesk/internal/usecase/workflow"

	"github.com/labstack/echo/v4"
)

type WorkflowHandler struct{ wf *workflow.Usecase }

func NewWorkflowHandler(wf *workflow.Usecase) *WorkflowHandler {
	return &WorkflowHandler{wf: wf}
}

type assignReq struct {
	TechnicianID string `json:"technician_id" validate:"required,hex32"`
}

func (h *WorkflowHandler) Assign(c echo.Context) error {
	var req assignReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	res, err := h.wf.Assign(c.Request().Context(), c.Param("complaint_id"), req.TechnicianID, middleware.Principal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *WorkflowHandler) StartWork(c echo.Context) error {
	res, err := h.wf.StartWork(c.Request().Context(), c.Param("complaint_id"), middleware.Principal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

type submitResolutionReq struct {
	Note string `json:"note" form:"note"`
}

func (h *WorkflowHandler) SubmitResolution(c echo.Context) error {
	var req submitResolutionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	attachment, err := readFormImage(c, "attachment")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	res, err := h.wf.SubmitResolution(c.Request().Context(), workflow.SubmitResolutionInput{
		ComplaintID: c.Param("complaint_id"),
		Note:        req.Note,
		Attachment:  attachment,
	}, middleware.Principal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *WorkflowHandler) Approve(c echo.Context) error {
	res, err := h.wf.Approve(c.Request().Context(), c.Param("resolution_id"), middleware.Principal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

type rejectReq struct {
	RejectedNote string `json:"rejected_note"`
}

func (h *WorkflowHandler) Reject(c echo.Context) error {
	var req rejectReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	res, err := h.wf.Reject(c.Request().Context(), c.Param("resolution_id"), req.RejectedNote, middleware.Principal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *WorkflowHandler) Reopen(c echo.Context) error {
	res, err := h.wf.Reopen(c.Request().Context(), c.Param("complaint_id"), middleware.Principal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
