package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"admedia-backoffice/internal/model"
	"admedia-backoffice/pkg/apierror"
)

// requireBadRequest asserts that an error is reported to clients as a 400.
func requireBadRequest(t *testing.T, err error) {
	t.Helper()

	var apiErr *apierror.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadRequest, apiErr.HTTPStatus)
}

// fakeUserStore is an in-memory UserStore used across the service tests.
type fakeUserStore struct {
	mu           sync.Mutex
	users        map[string]model.User
	lastLoginErr error
}

func newFakeUserStore(users ...model.User) *fakeUserStore {
	store := &fakeUserStore{users: map[string]model.User{}}
	for _, u := range users {
		store.users[u.ID] = u
	}
	return store
}

func (f *fakeUserStore) FindByID(_ context.Context, id string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (f *fakeUserStore) List(_ context.Context) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]model.User, 0, len(f.users))
	for _, user := range f.users {
		out = append(out, user)
	}
	return out, nil
}

func (f *fakeUserStore) Create(_ context.Context, u model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return model.ErrUserAlreadyExists
		}
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserStore) Update(_ context.Context, u model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[u.ID]; !ok {
		return model.ErrUserNotFound
	}
	for _, existing := range f.users {
		if existing.ID != u.ID && strings.EqualFold(existing.Email, u.Email) {
			return model.ErrUserAlreadyExists
		}
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, userID string, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[userID]
	if !ok {
		return model.ErrUserNotFound
	}
	user.PasswordHash = &passwordHash
	f.users[userID] = user
	return nil
}

func (f *fakeUserStore) UpdateLastLogin(_ context.Context, userID string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.lastLoginErr != nil {
		return f.lastLoginErr
	}
	user, ok := f.users[userID]
	if !ok {
		return model.ErrUserNotFound
	}
	user.LastLoginAt = &at
	f.users[userID] = user
	return nil
}

func (f *fakeUserStore) UpdateAvatar(_ context.Context, userID string, avatar string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[userID]
	if !ok {
		return model.ErrUserNotFound
	}
	user.Avatar = avatar
	f.users[userID] = user
	return nil
}

func (f *fakeUserStore) Count(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.users), nil
}

// fakeAuditStore records entries in memory.
type fakeAuditStore struct {
	mu      sync.Mutex
	entries []model.AuditEntry
}

func (f *fakeAuditStore) Log(_ context.Context, entry model.AuditEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeAuditStore) Query(_ context.Context, _ model.AuditQuery) ([]model.AuditEntry, model.Meta, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]model.AuditEntry, len(f.entries))
	copy(out, f.entries)
	return out, model.Meta{Page: 1, Limit: len(out), Total: len(out), TotalPages: 1}, nil
}

func (f *fakeAuditStore) byStatus(status string) []model.AuditEntry {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []model.AuditEntry
	for _, entry := range f.entries {
		if entry.Status == status {
			out = append(out, entry)
		}
	}
	return out
}

// fakePartyStore backs the party and order tests.
type fakePartyStore struct {
	mu      sync.Mutex
	parties map[string]model.Party
}

func newFakePartyStore(parties ...model.Party) *fakePartyStore {
	store := &fakePartyStore{parties: map[string]model.Party{}}
	for _, p := range parties {
		store.parties[p.ID] = p
	}
	return store
}

func (f *fakePartyStore) FindByID(_ context.Context, kind model.PartyKind, id string) (model.Party, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	party, ok := f.parties[id]
	if !ok || party.Kind != kind {
		return model.Party{}, model.ErrPartyNotFound
	}
	return party, nil
}

func (f *fakePartyStore) List(_ context.Context, kind model.PartyKind) ([]model.Party, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []model.Party
	for _, party := range f.parties {
		if party.Kind == kind {
			out = append(out, party)
		}
	}
	return out, nil
}

func (f *fakePartyStore) Create(_ context.Context, p model.Party) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.parties {
		if existing.Kind == p.Kind && strings.EqualFold(existing.Name, p.Name) {
			return model.ErrPartyExists
		}
	}
	f.parties[p.ID] = p
	return nil
}

func (f *fakePartyStore) Update(_ context.Context, p model.Party) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.parties[p.ID]; !ok {
		return model.ErrPartyNotFound
	}
	f.parties[p.ID] = p
	return nil
}

// fakeExpenseStore backs the expense service tests.
type fakeExpenseStore struct {
	mu       sync.Mutex
	expenses map[string]model.Expense
}

func newFakeExpenseStore() *fakeExpenseStore {
	return &fakeExpenseStore{expenses: map[string]model.Expense{}}
}

func (f *fakeExpenseStore) FindByID(_ context.Context, id string) (model.Expense, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	expense, ok := f.expenses[id]
	if !ok {
		return model.Expense{}, model.ErrExpenseNotFound
	}
	return expense, nil
}

func (f *fakeExpenseStore) Create(_ context.Context, e model.Expense) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.expenses[e.ID] = e
	return nil
}

func (f *fakeExpenseStore) Update(_ context.Context, e model.Expense) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.expenses[e.ID]; !ok {
		return model.ErrExpenseNotFound
	}
	f.expenses[e.ID] = e
	return nil
}

func (f *fakeExpenseStore) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.expenses[id]; !ok {
		return model.ErrExpenseNotFound
	}
	delete(f.expenses, id)
	return nil
}

func (f *fakeExpenseStore) Query(_ context.Context, _ model.ExpenseQuery) ([]model.Expense, model.Meta, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]model.Expense, 0, len(f.expenses))
	for _, expense := range f.expenses {
		out = append(out, expense)
	}
	return out, model.Meta{Page: 1, Limit: 50, Total: len(out), TotalPages: 1}, nil
}

// fakeOrderStore backs the order service tests.
type fakeOrderStore struct {
	mu     sync.Mutex
	orders map[string]model.AdOrder
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: map[string]model.AdOrder{}}
}

func (f *fakeOrderStore) FindByID(_ context.Context, id string) (model.AdOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	order, ok := f.orders[id]
	if !ok {
		return model.AdOrder{}, model.ErrOrderNotFound
	}
	return order, nil
}

func (f *fakeOrderStore) Create(_ context.Context, o model.AdOrder) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.orders[o.ID] = o
	return nil
}

func (f *fakeOrderStore) Update(_ context.Context, o model.AdOrder) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.orders[o.ID]; !ok {
		return model.ErrOrderNotFound
	}
	f.orders[o.ID] = o
	return nil
}

func (f *fakeOrderStore) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.orders[id]; !ok {
		return model.ErrOrderNotFound
	}
	delete(f.orders, id)
	return nil
}

func (f *fakeOrderStore) Query(_ context.Context, _ model.AdOrderQuery) ([]model.AdOrder, model.Meta, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]model.AdOrder, 0, len(f.orders))
	for _, order := range f.orders {
		out = append(out, order)
	}
	return out, model.Meta{Page: 1, Limit: 50, Total: len(out), TotalPages: 1}, nil
}
