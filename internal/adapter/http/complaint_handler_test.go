package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"facilitydesk/internal/adapter/middleware"
	complaintDomain "facilitydesk/internal/domain/complaint"
	"facilitydesk/internal/domain/uow"
	"facilitydesk/internal/domain/user"
	"facilitydesk/internal/testutil/complaintmock"
	"facilitydesk/internal/testutil/resolutionmock"
	"facilitydesk/internal/testutil/usermock"
	"facilitydesk/internal/testutil/uowmock"
	"facilitydesk/internal/testutil/workflowmock"
	"facilitydesk/internal/usecase/query"
	"facilitydesk/internal/usecase/workflow"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

type handlerDeps struct {
	complaints  *complaintmock.Repo
	resolutions *resolutionmock.Repo
	users       *usermock.Repo
	pub         *workflowmock.Publisher
}

// newHandlers wires both handlers over mock repositories. The UoW hands the
// given complaint to every locked callback.
func newHandlers(c *complaintDomain.Complaint) (*ComplaintHandler, *WorkflowHandler, *handlerDeps) {
	d := &handlerDeps{
		complaints:  &complaintmock.Repo{},
		resolutions: &resolutionmock.Repo{},
		users:       &usermock.Repo{},
		pub:         &workflowmock.Publisher{},
	}
	repos := uow.Repos{Complaints: d.complaints, Resolutions: d.resolutions, Users: d.users}
	tx := &uowmock.UoW{
		WithinTxFn: func(ctx context.Context, fn func(r uow.Repos) error) error {
			return fn(repos)
		},
		WithinComplaintTxFn: func(ctx context.Context, complaintID string, fn func(r uow.Repos, cc *complaintDomain.Complaint) error) error {
			if c == nil || c.ComplaintID != complaintID {
				return complaintDomain.ErrNotFound
			}
			return fn(repos, c)
		},
	}
	wf := workflow.NewUsecase(tx, d.complaints, d.users, &workflowmock.Guard{}, &workflowmock.Uploader{}, d.pub, 0)
	q := query.NewUsecase(d.complaints, d.resolutions, d.users)
	return NewComplaintHandler(wf, q), NewWorkflowHandler(wf), d
}

func doJSON(e *echo.Echo, method, path string, body io.Reader, principal *user.User, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for i := 0; i+1 < len(params); i += 2 {
		c.SetParamNames(params[i])
		c.SetParamValues(params[i+1])
	}
	if principal != nil {
		middleware.SetPrincipal(c, principal)
	}
	return c, rec
}

var (
	testAdmin = &user.User{UserID: "admin0000000000000000000000000001", Role: user.RoleSectorAdmin, Sector: "IT", IsActive: true}
	testSuper = &user.User{UserID: "super0000000000000000000000000001", Role: user.RoleSuperAdmin, IsActive: true}
)

// ---- Submit ----

func TestSubmitComplaint_Created(t *testing.T) {
	e := newEchoWithValidator()
	h, _, d := newHandlers(nil)

	var created *complaintDomain.Complaint
	d.complaints.CreateFn = func(ctx context.Context, c *complaintDomain.Complaint) error {
		created = c
		return nil
	}

	body := map[string]any{
		"category":    "IT Support",
		"description": "screen stays black",
		"location":    "bldg-2-301",
	}
	c, rec := doJSON(e, stdhttp.MethodPost, "/api/complaints", mustJSON(body), nil)

	require.NoError(t, h.Submit(c))
	require.Equal(t, stdhttp.StatusCreated, rec.Code)
	require.NotNil(t, created)
	assert.Equal(t, complaintDomain.SectorIT, created.Sector)

	var res workflow.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, created.ComplaintID, res.Complaint.ComplaintID)
	assert.Equal(t, complaintDomain.StatusPending, res.Complaint.Status)
}

func TestSubmitComplaint_UnknownCategory(t *testing.T) {
	e := newEchoWithValidator()
	h, _, _ := newHandlers(nil)

	body := map[string]any{"category": "Plumbing", "description": "x", "location": "loc"}
	c, rec := doJSON(e, stdhttp.MethodPost, "/api/complaints", mustJSON(body), nil)

	require.NoError(t, h.Submit(c))
	assert.Equal(t, stdhttp.StatusBadRequest, rec.Code)
}

func TestSubmitComplaint_DuplicateIs429(t *testing.T) {
	e := newEchoWithValidator()
	h, _, d := newHandlers(nil)
	d.complaints.CountRecentFn = func(ctx context.Context, loc string, s complaintDomain.Sector, since time.Time) (int64, error) {
		return 1, nil
	}

	body := map[string]any{"category": "Electrical", "description": "x", "location": "loc"}
	c, rec := doJSON(e, stdhttp.MethodPost, "/api/complaints", mustJSON(body), nil)

	require.NoError(t, h.Submit(c))
	assert.Equal(t, stdhttp.StatusTooManyRequests, rec.Code)
}

// ---- List / Get ----

func TestListComplaints_Unauthenticated(t *testing.T) {
	e := newEchoWithValidator()
	h, _, _ := newHandlers(nil)

	c, rec := doJSON(e, stdhttp.MethodGet, "/api/complaints", nil, nil)

	require.NoError(t, h.List(c))
	assert.Equal(t, stdhttp.StatusUnauthorized, rec.Code)
}

func TestListComplaints_PassesFilters(t *testing.T) {
	e := newEchoWithValidator()
	h, _, d := newHandlers(nil)

	var got complaintDomain.Filter
	d.complaints.ListFn = func(ctx context.Context, f complaintDomain.Filter) (*complaintDomain.Page, error) {
		got = f
		return &complaintDomain.Page{Page: f.Page, PageSize: f.PageSize}, nil
	}

	c, rec := doJSON(e, stdhttp.MethodGet, "/api/complaints?status=Pending&search=door&page=2&limit=5", nil, testAdmin)

	require.NoError(t, h.List(c))
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.Equal(t, complaintDomain.StatusPending, got.Status)
	assert.Equal(t, "door", got.Search)
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, 5, got.PageSize)
	assert.Equal(t, complaintDomain.SectorIT, got.Sector)
}

func TestListComplaints_BadDates(t *testing.T) {
	e := newEchoWithValidator()
	h, _, _ := newHandlers(nil)

	c, rec := doJSON(e, stdhttp.MethodGet, "/api/complaints?startDate=yesterday&endDate=2026-01-02", nil, testSuper)

	require.NoError(t, h.List(c))
	assert.Equal(t, stdhttp.StatusBadRequest, rec.Code)
}

func TestGetComplaint_NotFound(t *testing.T) {
	e := newEchoWithValidator()
	h, _, _ := newHandlers(nil)

	c, rec := doJSON(e, stdhttp.MethodGet, "/api/complaints/eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee", nil, testSuper,
		"complaint_id", "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee")

	require.NoError(t, h.Get(c))
	assert.Equal(t, stdhttp.StatusNotFound, rec.Code)
}

func TestDashboardOverview_ForbiddenForTechnician(t *testing.T) {
	e := newEchoWithValidator()
	h, _, _ := newHandlers(nil)

	tech := &user.User{UserID: "tech00000000000000000000000000001", Role: user.RoleTechnician, Sector: "IT", IsActive: true}
	c, rec := doJSON(e, stdhttp.MethodGet, "/api/dashboard/overview", nil, tech)

	require.NoError(t, h.DashboardOverview(c))
	assert.Equal(t, stdhttp.StatusForbidden, rec.Code)
}
