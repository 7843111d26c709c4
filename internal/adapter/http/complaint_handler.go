package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"facilitydesk/internal/adapter/middleware"
	"facilitydesk/internal/domain/complaint"
	"facilitydesk/internal/usecase/query"
	"facilitydesk/internal/usecase/workflow"

	"github.com/labstack/echo/v4"
)

// Submitted images are capped; anything larger is a validation failure, not
// an upload-dependency one.
const maxImageBytes = 5 << 20

type ComplaintHandler struct {
	wf *workflow.Usecase
	q  *query.Usecase
}

func NewComplaintHandler(wf *workflow.Usecase, q *query.Usecase) *ComplaintHandler {
	return &ComplaintHandler{wf: wf, q: q}
}

type submitComplaintReq struct {
	Category    string `json:"category" form:"category"`
	Description string `json:"description" form:"description"`
	Location    string `json:"location" form:"location"`
}

func (h *ComplaintHandler) Submit(c echo.Context) error {
	var req submitComplaintReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	img, err := readFormImage(c, "image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	res, err := h.wf.Submit(c.Request().Context(), workflow.SubmitInput{
		Category:    complaint.Category(req.Category),
		Description: req.Description,
		LocationRef: req.Location,
		Image:       img,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *ComplaintHandler) List(c echo.Context) error {
	in := query.ListInput{
		Status:   complaint.Status(c.QueryParam("status")),
		Search:   strings.TrimSpace(c.QueryParam("search")),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "limit", 10),
	}
	if s, e := c.QueryParam("startDate"), c.QueryParam("endDate"); s != "" && e != "" {
		start, err1 := time.Parse("2006-01-02", s)
		end, err2 := time.Parse("2006-01-02", e)
		if err1 != nil || err2 != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "dates must be formatted 2006-01-02"})
		}
		in.StartDate, in.EndDate = start, end
	}

	page, err := h.q.ListComplaints(c.Request().Context(), in, middleware.Principal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *ComplaintHandler) Get(c echo.Context) error {
	out, err := h.q.GetComplaint(c.Request().Context(), c.Param("complaint_id"), middleware.Principal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ComplaintHandler) ListTechnicians(c echo.Context) error {
	out, err := h.q.ListTechnicians(c.Request().Context(), c.QueryParam("sector"), middleware.Principal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"technicians": out})
}

func (h *ComplaintHandler) DashboardOverview(c echo.Context) error {
	out, err := h.q.DashboardOverview(c.Request().Context(), middleware.Principal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// readFormImage pulls an optional multipart file; absent files are fine.
func readFormImage(c echo.Context, field string) (*workflow.ImageUpload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	if fh.Size > maxImageBytes {
		return nil, errors.New("image exceeds the 5MB limit")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes))
	if err != nil {
		return nil, err
	}
	return &workflow.ImageUpload{Filename: fh.Filename, Data: data}, nil
}

func queryInt(c echo.Context, key string, def int) int {
	v := c.QueryParam(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
