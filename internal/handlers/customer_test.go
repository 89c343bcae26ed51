package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/localnerve/notary-records/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRoutesAreEmployeeOnly(t *testing.T) {
	f := newFixture(t)
	_, token := f.notary()

	routes := []struct{ method, target string }{
		{http.MethodPost, "/customer/add"},
		{http.MethodPut, "/customer/update"},
		{http.MethodGet, "/customer/profile?customerId=1"},
		{http.MethodGet, "/customer/all"},
		{http.MethodPost, "/customer/contact/add"},
		{http.MethodGet, "/customer/contact/all?customerId=1"},
		{http.MethodDelete, "/customer/contact/delete"},
	}
	for _, r := range routes {
		t.Run(r.method+" "+r.target, func(t *testing.T) {
			body := f.expect(f.do(r.method, r.target, map[string]any{}, token), http.StatusForbidden)
			assert.Equal(t, "Not Authorized", body["message"])
		})
	}
}

func TestAddCustomer(t *testing.T) {
	f := newFixture(t)
	_, token := f.employee()

	body := f.expect(f.do(http.MethodPost, "/customer/add", map[string]any{"customer": map[string]any{"name": "Acme"}}, token), http.StatusBadRequest)
	assert.ElementsMatch(t, []string{"phoneNumber", "email", "customerType"}, fields(body))

	payload := map[string]any{"customer": map[string]any{
		"name": "Acme", "phoneNumber": "555-0110", "email": "acme@example.com", "customerType": "title", "notes": "VIP",
	}}
	body = f.expect(f.do(http.MethodPost, "/customer/add", payload, token), http.StatusCreated)
	customer := body["customer"].(map[string]any)
	assert.Equal(t, "Acme", customer["name"])
	assert.Equal(t, "VIP", customer["notes"])

	body = f.expect(f.do(http.MethodPost, "/customer/add", payload, token), http.StatusConflict)
	assert.Equal(t, "Customer email address already in use.", body["message"])
}

func TestUpdateCustomerOmitVersusNull(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, token := f.employee()
	c := f.customer("omit@example.com")

	_, err := f.store.Customers.Update(ctx, map[string]any{"notes": "keep me"}, repository.Predicate{"id": c.ID})
	require.NoError(t, err)

	body := f.expect(f.do(http.MethodPut, "/customer/update", map[string]any{"customer": map[string]any{
		"customerId": c.ID, "name": "Acme Escrow",
	}}, token), http.StatusOK)
	assert.Equal(t, "Customer update successful", body["message"])

	got, err := f.store.Customers.FindOne(ctx, repository.Predicate{"id": c.ID})
	require.NoError(t, err)
	assert.Equal(t, "Acme Escrow", got.Name)
	require.NotNil(t, got.Notes, "omitted notes are kept")
	assert.Equal(t, "keep me", *got.Notes)

	f.expect(f.do(http.MethodPut, "/customer/update", map[string]any{"customer": map[string]any{
		"customerId": c.ID, "notes": nil,
	}}, token), http.StatusOK)

	got, err = f.store.Customers.FindOne(ctx, repository.Predicate{"id": c.ID})
	require.NoError(t, err)
	assert.Nil(t, got.Notes, "null notes are cleared")
	assert.Equal(t, "Acme Escrow", got.Name)

	body = f.expect(f.do(http.MethodPut, "/customer/update", map[string]any{"customer": map[string]any{
		"customerId": c.ID, "email": nil, "name": "  ",
	}}, token), http.StatusBadRequest)
	assert.ElementsMatch(t, []string{"email", "name"}, fields(body))
}

func TestUpdateCustomerRequiresID(t *testing.T) {
	f := newFixture(t)
	_, token := f.employee()

	body := f.expect(f.do(http.MethodPut, "/customer/update", map[string]any{"customer": map[string]any{"name": "x"}}, token), http.StatusBadRequest)
	assert.Equal(t, []string{"customerId"}, fields(body))

	f.expect(f.do(http.MethodPut, "/customer/update", map[string]any{"customer": map[string]any{"customerId": 4242}}, token), http.StatusNotFound)
}

func TestCustomerProfileAndList(t *testing.T) {
	f := newFixture(t)
	_, token := f.employee()
	c := f.customer("profile@example.com")
	f.customer("second@example.com")
	f.assignment(c.ID, nil, "F-1")
	f.assignment(c.ID, nil, "F-2")

	f.expect(f.do(http.MethodPost, "/customer/contact/add", map[string]any{"contact": map[string]any{
		"customerId": c.ID, "name": "Sam", "email": "sam@example.com", "phoneNumber": "555-0120",
	}}, token), http.StatusCreated)

	body := f.expect(f.do(http.MethodGet, "/customer/profile?customerId="+itoa(c.ID), nil, token), http.StatusOK)
	assert.Equal(t, "Customer Found", body["message"])
	customer := body["customer"].(map[string]any)
	assert.Len(t, customer["contacts"], 1)
	assert.Len(t, customer["assignments"], 2, "a customer holds many assignments")

	f.expect(f.do(http.MethodGet, "/customer/profile", nil, token), http.StatusBadRequest)
	f.expect(f.do(http.MethodGet, "/customer/profile?customerId=9999", nil, token), http.StatusNotFound)

	body = f.expect(f.do(http.MethodGet, "/customer/all", nil, token), http.StatusOK)
	assert.Len(t, body["customers"], 2)
}

func TestContacts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, token := f.employee()
	c := f.customer("contacts@example.com")
	other := f.customer("other@example.com")

	body := f.expect(f.do(http.MethodPost, "/customer/contact/add", map[string]any{"contact": map[string]any{}}, token), http.StatusBadRequest)
	assert.ElementsMatch(t, []string{"customerId", "name", "email", "phoneNumber"}, fields(body))

	f.expect(f.do(http.MethodPost, "/customer/contact/add", map[string]any{"contact": map[string]any{
		"customerId": 9999, "name": "Nobody", "email": "nobody@example.com", "phoneNumber": "555",
	}}, token), http.StatusNotFound)

	body = f.expect(f.do(http.MethodPost, "/customer/contact/add", map[string]any{"contact": map[string]any{
		"customerId": c.ID, "name": "Sam", "email": "sam@example.com", "phoneNumber": "555-0120",
	}}, token), http.StatusCreated)
	contactID := uint64(body["contact"].(map[string]any)["id"].(float64))

	body = f.expect(f.do(http.MethodPost, "/customer/contact/add", map[string]any{"contact": map[string]any{
		"customerId": other.ID, "name": "Sam Two", "email": "sam@example.com", "phoneNumber": "555-0121",
	}}, token), http.StatusConflict)
	assert.Equal(t, []string{"email"}, fields(body))

	f.expect(f.do(http.MethodPut, "/customer/contact/update", map[string]any{"contact": map[string]any{
		"contactId": contactID, "customerId": c.ID, "phoneNumber": "555-9999",
	}}, token), http.StatusOK)
	got, err := f.store.Contacts.FindOne(ctx, repository.Predicate{"id": contactID})
	require.NoError(t, err)
	assert.Equal(t, "555-9999", got.PhoneNumber)
	assert.Equal(t, "Sam", got.Name)

	// scoped to the owning customer
	f.expect(f.do(http.MethodGet, "/customer/contact?contactId="+itoa(contactID)+"&customerId="+itoa(other.ID), nil, token), http.StatusNotFound)
	body = f.expect(f.do(http.MethodGet, "/customer/contact?contactId="+itoa(contactID)+"&customerId="+itoa(c.ID), nil, token), http.StatusOK)
	assert.Equal(t, "Sam", body["contact"].(map[string]any)["name"])

	body = f.expect(f.do(http.MethodGet, "/customer/contact/all?customerId="+itoa(c.ID), nil, token), http.StatusOK)
	assert.Len(t, body["contacts"], 1)

	del := map[string]any{"contact": map[string]any{"contactId": contactID, "customerId": c.ID}}
	body = f.expect(f.do(http.MethodDelete, "/customer/contact/delete", del, token), http.StatusOK)
	assert.Equal(t, "Contact removed successfully", body["message"])

	body = f.expect(f.do(http.MethodDelete, "/customer/contact/delete", del, token), http.StatusOK)
	assert.Equal(t, "No contact found to delete", body["message"])
	assert.EqualValues(t, 0, body["deleted"])
}
