package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"admedia-backoffice/internal/model"
)

func TestPartyServiceIsKindScoped(t *testing.T) {
	t.Parallel()

	parties := newFakePartyStore()
	audit := NewAuditService(&fakeAuditStore{})
	clients := NewPartyService(model.PartyClient, parties, audit)
	providers := NewPartyService(model.PartyProvider, parties, audit)

	client, err := clients.Create(context.Background(), model.CreatePartyRequest{Name: "Acme"}, model.AuditActor{})
	require.NoError(t, err)
	require.Equal(t, model.PartyClient, client.Kind)

	// The same name is fine in the other directory.
	provider, err := providers.Create(context.Background(), model.CreatePartyRequest{Name: "Acme"}, model.AuditActor{})
	require.NoError(t, err)
	require.Equal(t, model.PartyProvider, provider.Kind)

	// But a provider id does not resolve through the client service.
	_, err = clients.Get(context.Background(), provider.ID)
	require.True(t, errors.Is(err, model.ErrPartyNotFound))

	listed, err := clients.List(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
}

func TestCreateParty(t *testing.T) {
	t.Parallel()

	parties := newFakePartyStore()
	svc := NewPartyService(model.PartyClient, parties, NewAuditService(&fakeAuditStore{}))

	_, err := svc.Create(context.Background(), model.CreatePartyRequest{Name: "  "}, model.AuditActor{})
	require.Error(t, err, "name is mandatory")

	created, err := svc.Create(context.Background(), model.CreatePartyRequest{
		Name:  " Acme ",
		TaxID: "B-12345678",
		Email: "billing@acme.example",
	}, model.AuditActor{})
	require.NoError(t, err)
	require.Equal(t, "Acme", created.Name)
	require.True(t, created.Active)

	_, err = svc.Create(context.Background(), model.CreatePartyRequest{Name: "acme"}, model.AuditActor{})
	require.Error(t, err, "duplicate name within the directory")
}

func TestUpdateParty(t *testing.T) {
	t.Parallel()

	parties := newFakePartyStore()
	svc := NewPartyService(model.PartyProvider, parties, NewAuditService(&fakeAuditStore{}))

	created, err := svc.Create(context.Background(), model.CreatePartyRequest{Name: "PrintCo"}, model.AuditActor{})
	require.NoError(t, err)

	inactive := false
	phone := "+34 600 000 000"
	updated, err := svc.Update(context.Background(), created.ID, model.PartyPatch{
		Active: &inactive,
		Phone:  &phone,
	}, model.AuditActor{})
	require.NoError(t, err)
	require.False(t, updated.Active)
	require.Equal(t, "+34 600 000 000", updated.Phone)
	require.Equal(t, "PrintCo", updated.Name)

	blank := "  "
	_, err = svc.Update(context.Background(), created.ID, model.PartyPatch{Name: &blank}, model.AuditActor{})
	require.Error(t, err)
}
