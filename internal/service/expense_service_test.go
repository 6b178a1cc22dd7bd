package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"admedia-backoffice/internal/model"
)

func TestCreateExpense(t *testing.T) {
	t.Parallel()

	t.Run("applies defaults", func(t *testing.T) {
		store := newFakeExpenseStore()
		svc := NewExpenseService(store, newFakePartyStore(), NewAuditService(&fakeAuditStore{}))

		expense, err := svc.Create(context.Background(), model.CreateExpenseRequest{
			Description: "Studio rental",
			AmountCents: 150000,
			Currency:    "eur",
		}, model.AuditActor{UserID: "u1"})
		require.NoError(t, err)
		require.Equal(t, model.ExpensePending, expense.Status)
		require.Equal(t, "EUR", expense.Currency)
		require.False(t, expense.ExpenseDate.IsZero())
		require.Equal(t, "u1", expense.CreatedBy)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		svc := NewExpenseService(newFakeExpenseStore(), newFakePartyStore(), NewAuditService(&fakeAuditStore{}))

		_, err := svc.Create(context.Background(), model.CreateExpenseRequest{
			AmountCents: 100,
		}, model.AuditActor{})
		require.Error(t, err, "description is mandatory")

		_, err = svc.Create(context.Background(), model.CreateExpenseRequest{
			Description: "x", AmountCents: 0,
		}, model.AuditActor{})
		require.Error(t, err, "amount must be positive")

		_, err = svc.Create(context.Background(), model.CreateExpenseRequest{
			Description: "x", AmountCents: 100, Status: "rejected",
		}, model.AuditActor{})
		require.Error(t, err, "status outside the enum")
	})

	t.Run("validates the provider reference", func(t *testing.T) {
		provider := model.Party{ID: "p1", Kind: model.PartyProvider, Name: "PrintCo", Active: true}
		svc := NewExpenseService(newFakeExpenseStore(), newFakePartyStore(provider, testClient("c1", "Acme")),
			NewAuditService(&fakeAuditStore{}))

		known := "p1"
		expense, err := svc.Create(context.Background(), model.CreateExpenseRequest{
			Description: "Print run", AmountCents: 9900, ProviderID: &known,
		}, model.AuditActor{})
		require.NoError(t, err)
		require.NotNil(t, expense.ProviderID)
		require.Equal(t, "p1", *expense.ProviderID)

		unknown := "no-such-party"
		_, err = svc.Create(context.Background(), model.CreateExpenseRequest{
			Description: "Print run", AmountCents: 9900, ProviderID: &unknown,
		}, model.AuditActor{})
		requireBadRequest(t, err)

		clientID := "c1"
		_, err = svc.Create(context.Background(), model.CreateExpenseRequest{
			Description: "Print run", AmountCents: 9900, ProviderID: &clientID,
		}, model.AuditActor{})
		requireBadRequest(t, err)

		blank := "   "
		expense, err = svc.Create(context.Background(), model.CreateExpenseRequest{
			Description: "Print run", AmountCents: 9900, ProviderID: &blank,
		}, model.AuditActor{})
		require.NoError(t, err)
		require.Nil(t, expense.ProviderID)
	})
}

func TestUpdateExpense(t *testing.T) {
	t.Parallel()

	store := newFakeExpenseStore()
	provider := model.Party{ID: "p1", Kind: model.PartyProvider, Name: "PrintCo", Active: true}
	svc := NewExpenseService(store, newFakePartyStore(provider), NewAuditService(&fakeAuditStore{}))

	expense, err := svc.Create(context.Background(), model.CreateExpenseRequest{
		Description: "Studio rental",
		AmountCents: 150000,
		ExpenseDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}, model.AuditActor{})
	require.NoError(t, err)

	paid := model.ExpensePaid
	invoice := "INV-2026-0042"
	updated, err := svc.Update(context.Background(), expense.ID, model.ExpensePatch{
		Status:        &paid,
		InvoiceNumber: &invoice,
	}, model.AuditActor{})
	require.NoError(t, err)
	require.Equal(t, model.ExpensePaid, updated.Status)
	require.Equal(t, "INV-2026-0042", updated.InvoiceNumber)
	require.Equal(t, "Studio rental", updated.Description)

	bad := model.ExpenseStatus("refunded")
	_, err = svc.Update(context.Background(), expense.ID, model.ExpensePatch{Status: &bad}, model.AuditActor{})
	require.Error(t, err)

	// A patch may set or clear the provider, but never point at a party
	// the directory does not know.
	known := "p1"
	updated, err = svc.Update(context.Background(), expense.ID, model.ExpensePatch{ProviderID: &known}, model.AuditActor{})
	require.NoError(t, err)
	require.NotNil(t, updated.ProviderID)

	ghost := "no-such-party"
	_, err = svc.Update(context.Background(), expense.ID, model.ExpensePatch{ProviderID: &ghost}, model.AuditActor{})
	requireBadRequest(t, err)

	cleared := ""
	updated, err = svc.Update(context.Background(), expense.ID, model.ExpensePatch{ProviderID: &cleared}, model.AuditActor{})
	require.NoError(t, err)
	require.Nil(t, updated.ProviderID)

	// Currency keeps its stored value unless the patch names a real one.
	blankCurrency := "  "
	_, err = svc.Update(context.Background(), expense.ID, model.ExpensePatch{Currency: &blankCurrency}, model.AuditActor{})
	requireBadRequest(t, err)

	eur := "eur"
	updated, err = svc.Update(context.Background(), expense.ID, model.ExpensePatch{Currency: &eur}, model.AuditActor{})
	require.NoError(t, err)
	require.Equal(t, "EUR", updated.Currency)

	_, err = svc.Update(context.Background(), "missing", model.ExpensePatch{}, model.AuditActor{})
	require.True(t, errors.Is(err, model.ErrExpenseNotFound))
}

func TestDeleteExpense(t *testing.T) {
	t.Parallel()

	store := newFakeExpenseStore()
	audit := &fakeAuditStore{}
	svc := NewExpenseService(store, newFakePartyStore(), NewAuditService(audit))

	expense, err := svc.Create(context.Background(), model.CreateExpenseRequest{
		Description: "Courier",
		AmountCents: 2500,
	}, model.AuditActor{})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), expense.ID, model.AuditActor{}))

	_, err = svc.Get(context.Background(), expense.ID)
	require.True(t, errors.Is(err, model.ErrExpenseNotFound))

	require.True(t, errors.Is(svc.Delete(context.Background(), "missing", model.AuditActor{}), model.ErrExpenseNotFound))
}

func TestQueryExpensesValidatesStatusFilter(t *testing.T) {
	t.Parallel()

	svc := NewExpenseService(newFakeExpenseStore(), newFakePartyStore(), NewAuditService(&fakeAuditStore{}))

	_, _, err := svc.Query(context.Background(), model.ExpenseQuery{Status: "bogus"})
	require.Error(t, err)

	_, _, err = svc.Query(context.Background(), model.ExpenseQuery{Status: "approved"})
	require.NoError(t, err)
}
