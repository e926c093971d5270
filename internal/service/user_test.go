package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/coursekeep/coursekeep/internal/auth"
	"github.com/coursekeep/coursekeep/internal/metrics"
	"github.com/coursekeep/coursekeep/internal/model"
	"github.com/coursekeep/coursekeep/internal/repository"
	"github.com/coursekeep/coursekeep/internal/service/mocks"
)

func newUserService(t *testing.T) (*UserService, *mocks.MockUserStore, *mocks.MockPasswordHasher, *metrics.InMemoryRecorder) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := mocks.NewMockUserStore(ctrl)
	hasher := mocks.NewMockPasswordHasher(ctrl)
	recorder := metrics.NewInMemory()
	return NewUserService(store, hasher, recorder), store, hasher, recorder
}

func TestUserService_Register_StoresHash(t *testing.T) {
	svc, store, hasher, recorder := newUserService(t)

	hasher.EXPECT().Hash("x").Return("$argon2id$hashed", nil)
	store.EXPECT().
		CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *model.User) error {
			assert.Equal(t, "$argon2id$hashed", u.PasswordHash, "plaintext must never be persisted")
			u.ID = 1
			return nil
		})

	user, err := svc.Register(context.Background(), RegisterInput{
		FirstName:    "A",
		LastName:     "B",
		EmailAddress: "a@b.com",
		Password:     "x",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, uint64(1), recorder.Snapshot().UsersCreated)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	svc, store, hasher, recorder := newUserService(t)

	hasher.EXPECT().Hash(gomock.Any()).Return("hash", nil)
	store.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(repository.ErrEmailExists)

	_, err := svc.Register(context.Background(), RegisterInput{EmailAddress: "a@b.com", Password: "x"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.Equal(t, uint64(0), recorder.Snapshot().UsersCreated)
}

func TestUserService_Register_HashFailure(t *testing.T) {
	svc, _, hasher, _ := newUserService(t)

	hasher.EXPECT().Hash(gomock.Any()).Return("", errors.New("too long"))

	_, err := svc.Register(context.Background(), RegisterInput{Password: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too long")
}

func TestUserService_Register_PasswordTooLong(t *testing.T) {
	svc, _, hasher, recorder := newUserService(t)

	hasher.EXPECT().Hash(gomock.Any()).Return("", fmt.Errorf("bcrypt hash: %w", auth.ErrPasswordTooLong))

	_, err := svc.Register(context.Background(), RegisterInput{EmailAddress: "a@b.com", Password: "x"})
	assert.ErrorIs(t, err, ErrPasswordTooLong)
	assert.Equal(t, uint64(0), recorder.Snapshot().UsersCreated)
}

func TestUserService_ListSelf(t *testing.T) {
	svc, store, _, _ := newUserService(t)
	me := &model.User{ID: 3}

	store.EXPECT().
		FindUsers(gomock.Any(), repository.UserFilter{ID: 3}).
		Return([]*model.User{{ID: 3, FirstName: "A", LastName: "B", EmailAddress: "a@b.com", PasswordHash: "h"}}, nil)

	profiles, err := svc.ListSelf(context.Background(), me)
	require.NoError(t, err)
	assert.Equal(t, []model.UserProfile{{ID: 3, FirstName: "A", LastName: "B", EmailAddress: "a@b.com"}}, profiles)
}
