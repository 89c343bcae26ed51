package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/localnerve/notary-records/internal/models"
	"github.com/localnerve/notary-records/internal/repository"
	"github.com/localnerve/notary-records/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssignment(customerID uint64, extra map[string]any) map[string]any {
	a := map[string]any{
		"customerId":         customerID,
		"fileNumber":         "ESC-100",
		"dueDate":            "2026-11-20",
		"contactName":        "Pat Signer",
		"contactPhoneNumber": "555-0142",
		"contactEmail":       "pat@example.com",
		"meetingAddress":     "1 Main St, Oakland CA",
		"rate":               "125.50",
		"type":               "refinance",
		"status":             "open",
	}
	for k, v := range extra {
		a[k] = v
	}
	return map[string]any{"assignment": a}
}

func ids(body map[string]any) []uint64 {
	list, _ := body["assignments"].([]any)
	out := make([]uint64, 0, len(list))
	for _, item := range list {
		out = append(out, uint64(item.(map[string]any)["id"].(float64)))
	}
	return out
}

func TestAddAssignment(t *testing.T) {
	f := newFixture(t)
	_, token := f.employee()
	notary, _ := f.notary()
	c := f.customer("orders@example.com")

	t.Run("lists missing fields", func(t *testing.T) {
		body := f.expect(f.do(http.MethodPost, "/assignment/add", map[string]any{"assignment": map[string]any{"notes": "gate code 12"}}, token), http.StatusBadRequest)
		assert.ElementsMatch(t, []string{
			"customerId", "fileNumber", "dueDate", "contactName", "contactPhoneNumber",
			"contactEmail", "meetingAddress", "rate", "type", "status",
		}, fields(body))
	})

	t.Run("negative rate", func(t *testing.T) {
		body := f.expect(f.do(http.MethodPost, "/assignment/add", newAssignment(c.ID, map[string]any{"rate": -5}), token), http.StatusBadRequest)
		assert.Equal(t, []string{"rate"}, fields(body))
	})

	t.Run("unknown customer", func(t *testing.T) {
		f.expect(f.do(http.MethodPost, "/assignment/add", newAssignment(9999, nil), token), http.StatusNotFound)
	})

	t.Run("unknown notary", func(t *testing.T) {
		employee, _ := f.employee()
		body := f.expect(f.do(http.MethodPost, "/assignment/add", newAssignment(c.ID, map[string]any{"notaryId": employee.ID}), token), http.StatusBadRequest)
		assert.Equal(t, "Notary not found", body["message"])
		assert.Equal(t, []string{"notaryId"}, fields(body))
	})

	t.Run("open", func(t *testing.T) {
		body := f.expect(f.do(http.MethodPost, "/assignment/add", newAssignment(c.ID, nil), token), http.StatusCreated)
		assert.Equal(t, "Assignment created successfully", body["message"])
		a := body["assignment"].(map[string]any)
		assert.Equal(t, "125.5", a["rate"])
		assert.Nil(t, a["notary"])
		customer := a["customer"].(map[string]any)
		assert.EqualValues(t, c.ID, customer["customerId"])
		assert.Equal(t, "orders@example.com", customer["email"])
	})

	t.Run("assigned", func(t *testing.T) {
		body := f.expect(f.do(http.MethodPost, "/assignment/add", newAssignment(c.ID, map[string]any{"notaryId": notary.ID, "fileNumber": "ESC-101"}), token), http.StatusCreated)
		n := body["assignment"].(map[string]any)["notary"].(map[string]any)
		assert.EqualValues(t, notary.ID, n["id"])
		assert.Equal(t, notary.Email, n["email"])
		_, leaked := n["password"]
		assert.False(t, leaked)
	})
}

func TestAssignmentAccess(t *testing.T) {
	f := newFixture(t)
	c := f.customer("access@example.com")
	a := f.assignment(c.ID, nil, "F-1")

	_, pending := f.user(models.RoleFlags{IsNotary: true})
	body := f.expect(f.do(http.MethodGet, "/assignment/all", nil, pending), http.StatusForbidden)
	assert.Equal(t, "Not Authorized", body["message"])
	f.expect(f.do(http.MethodPut, "/assignment/update", map[string]any{"assignment": map[string]any{
		"assignmentId": a.ID, "customerId": c.ID,
	}}, pending), http.StatusForbidden)

	_, revoked := f.user(models.RoleFlags{IsEmployee: true})
	f.expect(f.do(http.MethodGet, "/assignment/all", nil, revoked), http.StatusForbidden)

	_, notaryToken := f.notary()
	f.expect(f.do(http.MethodPost, "/assignment/add", newAssignment(c.ID, nil), notaryToken), http.StatusForbidden)
}

func TestNotarySeesOpenAndOwnAssignments(t *testing.T) {
	f := newFixture(t)
	me, token := f.notary()
	other, _ := f.notary()
	c := f.customer("visible@example.com")

	open := f.assignment(c.ID, nil, "F-open")
	mine := f.assignment(c.ID, testutil.Ptr(me.ID), "F-mine")
	theirs := f.assignment(c.ID, testutil.Ptr(other.ID), "F-theirs")

	body := f.expect(f.do(http.MethodGet, "/assignment/all", nil, token), http.StatusOK)
	assert.Equal(t, []uint64{open.ID, mine.ID}, ids(body))

	f.expect(f.do(http.MethodGet, "/assignment?assignmentId="+itoa(mine.ID)+"&customerId="+itoa(c.ID), nil, token), http.StatusOK)
	f.expect(f.do(http.MethodGet, "/assignment?assignmentId="+itoa(theirs.ID)+"&customerId="+itoa(c.ID), nil, token), http.StatusNotFound)

	body = f.expect(f.do(http.MethodGet, "/assignment?assignmentId="+itoa(mine.ID), nil, token), http.StatusBadRequest)
	assert.Equal(t, []string{"customerId"}, fields(body))

	_, employeeToken := f.employee()
	body = f.expect(f.do(http.MethodGet, "/assignment/all", nil, employeeToken), http.StatusOK)
	assert.Len(t, ids(body), 3)
}

func TestNotaryAcceptsAssignment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	me, token := f.notary()
	_, otherToken := f.notary()
	c := f.customer("accept@example.com")
	a := f.assignment(c.ID, nil, "F-accept")

	f.expect(f.do(http.MethodPut, "/assignment/update", map[string]any{"assignment": map[string]any{
		"assignmentId": a.ID, "customerId": c.ID, "status": "accepted", "fileNumber": "HIJACK", "rate": "999",
	}}, token), http.StatusOK)

	got, err := f.store.Assignments.FindOne(ctx, repository.Predicate{"id": a.ID})
	require.NoError(t, err)
	require.NotNil(t, got.UserID)
	assert.Equal(t, me.ID, *got.UserID)
	assert.Equal(t, "accepted", got.Status)
	assert.Equal(t, "F-accept", got.FileNumber, "notaries cannot change the file number")
	assert.Equal(t, "150", got.Rate.String())

	// taken work is invisible to everyone else
	f.expect(f.do(http.MethodPut, "/assignment/update", map[string]any{"assignment": map[string]any{
		"assignmentId": a.ID, "customerId": c.ID, "status": "accepted",
	}}, otherToken), http.StatusNotFound)

	// the holder may still move it along
	f.expect(f.do(http.MethodPut, "/assignment/update", map[string]any{"assignment": map[string]any{
		"assignmentId": a.ID, "customerId": c.ID, "status": "signed",
	}}, token), http.StatusOK)
	got, err = f.store.Assignments.FindOne(ctx, repository.Predicate{"id": a.ID})
	require.NoError(t, err)
	assert.Equal(t, "signed", got.Status)

	// the owning customer scopes the lookup
	other := f.customer("elsewhere@example.com")
	f.expect(f.do(http.MethodPut, "/assignment/update", map[string]any{"assignment": map[string]any{
		"assignmentId": a.ID, "customerId": other.ID, "status": "void",
	}}, token), http.StatusNotFound)
}

func TestEmployeeReassignsAssignment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, token := f.employee()
	first, _ := f.notary()
	second, _ := f.notary()
	c := f.customer("reassign@example.com")
	a := f.assignment(c.ID, testutil.Ptr(first.ID), "F-re")

	update := func(extra map[string]any) map[string]any {
		body := map[string]any{"assignmentId": a.ID, "customerId": c.ID}
		for k, v := range extra {
			body[k] = v
		}
		return map[string]any{"assignment": body}
	}

	f.expect(f.do(http.MethodPut, "/assignment/update", update(map[string]any{"notaryId": second.ID, "notes": "rescheduled"}), token), http.StatusOK)
	got, err := f.store.Assignments.FindOne(ctx, repository.Predicate{"id": a.ID})
	require.NoError(t, err)
	require.NotNil(t, got.UserID)
	assert.Equal(t, second.ID, *got.UserID)
	require.NotNil(t, got.Notes)
	assert.Equal(t, "rescheduled", *got.Notes)
	assert.Equal(t, "F-re", got.FileNumber)

	f.expect(f.do(http.MethodPut, "/assignment/update", update(map[string]any{"notaryId": nil, "notes": nil}), token), http.StatusOK)
	got, err = f.store.Assignments.FindOne(ctx, repository.Predicate{"id": a.ID})
	require.NoError(t, err)
	assert.Nil(t, got.UserID)
	assert.Nil(t, got.Notes)

	body := f.expect(f.do(http.MethodPut, "/assignment/update", update(map[string]any{"notaryId": 9999}), token), http.StatusBadRequest)
	assert.Equal(t, []string{"notaryId"}, fields(body))

	body = f.expect(f.do(http.MethodPut, "/assignment/update", update(map[string]any{"status": nil, "rate": -1}), token), http.StatusBadRequest)
	assert.ElementsMatch(t, []string{"status", "rate"}, fields(body))
}

func TestAssignmentFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, token := f.employee()
	c := f.customer("filters@example.com")
	other := f.customer("filters-other@example.com")

	a := f.assignment(c.ID, nil, "F-1")
	f.assignment(c.ID, nil, "F-2")
	b := f.assignment(other.ID, nil, "F-3")
	_, err := f.store.Assignments.Update(ctx, map[string]any{"status": "closed"}, repository.Predicate{"id": b.ID})
	require.NoError(t, err)

	body := f.expect(f.do(http.MethodGet, "/assignment/all?customerId="+itoa(c.ID), nil, token), http.StatusOK)
	assert.Len(t, ids(body), 2)

	body = f.expect(f.do(http.MethodGet, "/assignment/all?status=closed", nil, token), http.StatusOK)
	assert.Equal(t, []uint64{b.ID}, ids(body))

	body = f.expect(f.do(http.MethodGet, "/assignment/all?status=open&customerId="+itoa(c.ID), nil, token), http.StatusOK)
	assert.Contains(t, ids(body), a.ID)

	f.expect(f.do(http.MethodGet, "/assignment/all?customerId=abc", nil, token), http.StatusBadRequest)
}
