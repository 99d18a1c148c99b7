package authx

import (
	"context"
	"fmt"

	"github.com/filesmanager/filesmanager/internal/meta"
)

// mockUsersStore is an in-memory UsersStore that enforces email uniqueness
// the way a unique index would.
type mockUsersStore struct {
	users  map[string]User
	nextID int
	err    error
}

func newMockUsersStore() *mockUsersStore {
	return &mockUsersStore{users: map[string]User{}}
}

func (m *mockUsersStore) Create(_ context.Context, user User) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return "", &meta.ErrConflict{Type: "User", ID: user.Email}
		}
	}
	m.nextID++
	user.ID = fmt.Sprintf("%024x", m.nextID)
	m.users[user.ID] = user
	return user.ID, nil
}

func (m *mockUsersStore) Get(_ context.Context, id string) (User, error) {
	if m.err != nil {
		return User{}, m.err
	}
	user, ok := m.users[id]
	if !ok {
		return User{}, &meta.ErrNotFound{Type: "User", ID: id}
	}
	return user, nil
}

func (m *mockUsersStore) GetByEmail(
	_ context.Context,
	email string,
) (User, error) {
	if m.err != nil {
		return User{}, m.err
	}
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return User{}, &meta.ErrNotFound{Type: "User", ID: email}
}

func (m *mockUsersStore) Count(context.Context) (int64, error) {
	return int64(len(m.users)), m.err
}

type enqueued struct {
	queueName string
	payload   interface{}
}

type mockDispatcher struct {
	calls []enqueued
	err   error
}

func (m *mockDispatcher) Enqueue(
	_ context.Context,
	queueName string,
	payload interface{},
) error {
	m.calls = append(m.calls, enqueued{queueName: queueName, payload: payload})
	return m.err
}

func (m *mockDispatcher) Close(context.Context) error {
	return nil
}
