package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"testing"
	"time"

	complaintDomain "facilitydesk/internal/domain/complaint"
	"facilitydesk/internal/domain/event"
	resolutionDomain "facilitydesk/internal/domain/resolution"
	"facilitydesk/internal/domain/user"
	"facilitydesk/internal/usecase/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTech = &user.User{UserID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Role: user.RoleTechnician, Sector: "IT", IsActive: true}

func pendingITComplaint() *complaintDomain.Complaint {
	return &complaintDomain.Complaint{
		ID:           1,
		ComplaintID:  "c0000000000000000000000000000001",
		HumanID:      "C1736123456789",
		Category:     complaintDomain.CategoryITSupport,
		Sector:       complaintDomain.SectorIT,
		Description:  "no network",
		LocationRef:  "bldg-2-301",
		Status:       complaintDomain.StatusPending,
		AssignStatus: complaintDomain.Unassigned,
	}
}

func TestAssign_Success(t *testing.T) {
	e := newEchoWithValidator()
	cp := pendingITComplaint()
	_, h, d := newHandlers(cp)
	d.users.GetByUserIDFn = func(ctx context.Context, id string) (*user.User, error) {
		return testTech, nil
	}

	body := map[string]any{"technician_id": testTech.UserID}
	c, rec := doJSON(e, stdhttp.MethodPost, "/api/complaints/"+cp.ComplaintID+"/assign", mustJSON(body), testAdmin,
		"complaint_id", cp.ComplaintID)

	require.NoError(t, h.Assign(c))
	require.Equal(t, stdhttp.StatusOK, rec.Code)

	var res workflow.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, complaintDomain.StatusInProgress, res.Complaint.Status)
	assert.Equal(t, testTech.UserID, res.Complaint.AssignedWorkerID)

	evs := d.pub.Published()
	require.Len(t, evs, 1)
	assert.Equal(t, event.ActionAssignComplaint, evs[0].Action)
}

func TestAssign_ValidationDetails(t *testing.T) {
	e := newEchoWithValidator()
	_, h, _ := newHandlers(nil)

	tests := []struct {
		name string
		body map[string]any
		msg  string
	}{
		{"missing technician_id", map[string]any{}, "is required"},
		{"not hex32", map[string]any{"technician_id": "SHOUTING-ID"}, "32-char lowercase hex"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := doJSON(e, stdhttp.MethodPost, "/api/complaints/x/assign", mustJSON(tt.body), testAdmin,
				"complaint_id", "c0000000000000000000000000000001")

			require.NoError(t, h.Assign(c))
			require.Equal(t, stdhttp.StatusUnprocessableEntity, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.True(t, containsFieldMsg(resp.Details, "TechnicianID", tt.msg), "details: %+v", resp.Details)
		})
	}
}

func TestStartWork_ForbiddenForOtherTechnician(t *testing.T) {
	e := newEchoWithValidator()
	cp := pendingITComplaint()
	now := time.Now().UTC()
	cp.Status = complaintDomain.StatusInProgress
	cp.AssignStatus = complaintDomain.Assigned
	cp.AssignedWorkerID = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	cp.AssignedByID = testAdmin.UserID
	cp.AssignedAt = &now
	_, h, _ := newHandlers(cp)

	c, rec := doJSON(e, stdhttp.MethodPost, "/api/complaints/"+cp.ComplaintID+"/start", nil, testTech,
		"complaint_id", cp.ComplaintID)

	require.NoError(t, h.StartWork(c))
	assert.Equal(t, stdhttp.StatusForbidden, rec.Code)
}

func TestApprove_ConflictWhenNotUnderReview(t *testing.T) {
	e := newEchoWithValidator()
	cp := pendingITComplaint()
	cp.Status = complaintDomain.StatusInProgress
	cp.ResolutionID = "d0000000000000000000000000000001"
	_, h, d := newHandlers(cp)
	d.resolutions.GetByResolutionIDFn = func(ctx context.Context, id string) (*resolutionDomain.Resolution, error) {
		return &resolutionDomain.Resolution{
			ResolutionID: cp.ResolutionID,
			ComplaintID:  cp.ComplaintID,
			Status:       resolutionDomain.StatusInProgress,
		}, nil
	}

	c, rec := doJSON(e, stdhttp.MethodPost, "/api/resolutions/"+cp.ResolutionID+"/approve", nil, testAdmin,
		"resolution_id", cp.ResolutionID)

	require.NoError(t, h.Approve(c))
	assert.Equal(t, stdhttp.StatusConflict, rec.Code)
}

func TestApprove_ForbiddenForTechnician(t *testing.T) {
	e := newEchoWithValidator()
	_, h, _ := newHandlers(nil)

	c, rec := doJSON(e, stdhttp.MethodPost, "/api/resolutions/x/approve", nil, testTech,
		"resolution_id", "d0000000000000000000000000000001")

	require.NoError(t, h.Approve(c))
	assert.Equal(t, stdhttp.StatusForbidden, rec.Code)
}

func TestReject_NoteRequired(t *testing.T) {
	e := newEchoWithValidator()
	_, h, _ := newHandlers(nil)

	c, rec := doJSON(e, stdhttp.MethodPost, "/api/resolutions/x/reject", mustJSON(map[string]any{}), testAdmin,
		"resolution_id", "d0000000000000000000000000000001")

	require.NoError(t, h.Reject(c))
	assert.Equal(t, stdhttp.StatusBadRequest, rec.Code)
}

func TestReopen_NotFound(t *testing.T) {
	e := newEchoWithValidator()
	_, h, _ := newHandlers(nil)

	c, rec := doJSON(e, stdhttp.MethodPost, "/api/complaints/x/reopen", nil, testAdmin,
		"complaint_id", "c0000000000000000000000000000009")

	require.NoError(t, h.Reopen(c))
	assert.Equal(t, stdhttp.StatusNotFound, rec.Code)
}
