package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/coursekeep/coursekeep/internal/auth"
	"github.com/coursekeep/coursekeep/internal/metrics"
	"github.com/coursekeep/coursekeep/internal/model"
	"github.com/coursekeep/coursekeep/internal/repository"
	"github.com/coursekeep/coursekeep/internal/service"
	"github.com/coursekeep/coursekeep/internal/service/mocks"
)

func newUserHandler(t *testing.T) (*UserHandler, *mocks.MockUserStore, *mocks.MockPasswordHasher) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := mocks.NewMockUserStore(ctrl)
	hasher := mocks.NewMockPasswordHasher(ctrl)
	svc := service.NewUserService(store, hasher, metrics.NewNoop())
	return NewUserHandler(svc, discardLogger()), store, hasher
}

const validSignup = `{"firstName":"A","lastName":"B","emailAddress":"a@b.com","password":"x"}`

func TestUserHandler_Create(t *testing.T) {
	h, store, hasher := newUserHandler(t)

	hasher.EXPECT().Hash("x").Return("hashed", nil)
	store.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *model.User) error {
		u.ID = 1
		return nil
	})

	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(validSignup)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Empty(t, rec.Body.String())
}

func TestUserHandler_Create_DuplicateEmail(t *testing.T) {
	h, store, hasher := newUserHandler(t)

	hasher.EXPECT().Hash(gomock.Any()).Return("hashed", nil)
	store.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(repository.ErrEmailExists)

	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(validSignup)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"errors":["Email address already in use."]}`, rec.Body.String())
}

func TestUserHandler_Create_StoreFailure(t *testing.T) {
	h, store, hasher := newUserHandler(t)

	hasher.EXPECT().Hash(gomock.Any()).Return("hashed", nil)
	store.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(errors.New("pq: connection reset"))

	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(validSignup)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}

func TestUserHandler_Create_PasswordTooLong(t *testing.T) {
	h, _, hasher := newUserHandler(t)

	hasher.EXPECT().Hash(gomock.Any()).Return("", auth.ErrPasswordTooLong)

	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(validSignup)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"errors":["Please provide a password of at most 72 bytes for \"password\""]}`, rec.Body.String())
}

func TestUserHandler_ListSelf(t *testing.T) {
	h, store, _ := newUserHandler(t)
	me := &model.User{ID: 4, FirstName: "A", LastName: "B", EmailAddress: "a@b.com", PasswordHash: "secret-hash"}

	store.EXPECT().FindUsers(gomock.Any(), repository.UserFilter{ID: 4}).Return([]*model.User{me}, nil)

	req := withIdentity(httptest.NewRequest(http.MethodGet, "/users", nil), me)
	rec := httptest.NewRecorder()
	h.ListSelf(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user":[{"id":4,"firstName":"A","lastName":"B","emailAddress":"a@b.com"}]}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "secret-hash")
}
