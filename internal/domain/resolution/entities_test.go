package resolution

import "testing"

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPending, StatusInProgress},
		{StatusInProgress, StatusUnderReview},
		{StatusUnderReview, StatusUnderReview},
		{StatusUnderReview, StatusApproved},
		{StatusUnderReview, StatusRejected},
		{StatusRejected, StatusUnderReview},
		{StatusApproved, StatusUnderReview},
	}
	for _, tr := range allowed {
		if !CanTransition(tr.from, tr.to) {
			t.Errorf("expected %s -> %s to be allowed", tr.from, tr.to)
		}
	}

	denied := []struct{ from, to Status }{
		{StatusPending, StatusUnderReview},
		{StatusPending, StatusApproved},
		{StatusInProgress, StatusApproved},
		{StatusInProgress, StatusRejected},
		{StatusApproved, StatusRejected},
		{StatusRejected, StatusApproved},
	}
	for _, tr := range denied {
		if CanTransition(tr.from, tr.to) {
			t.Errorf("expected %s -> %s to be rejected", tr.from, tr.to)
		}
	}
}

func TestTerminal(t *testing.T) {
	if !StatusApproved.Terminal() || !StatusRejected.Terminal() {
		t.Error("approved and rejected are terminal")
	}
	if StatusPending.Terminal() || StatusInProgress.Terminal() || StatusUnderReview.Terminal() {
		t.Error("pending, in_progress and under_review are not terminal")
	}
}
