package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountdto "github.com/perkloop/perkloop/internal/application/account/dto"
	accountUsecases "github.com/perkloop/perkloop/internal/application/account/usecases"
	"github.com/perkloop/perkloop/internal/interfaces/http/handlers/testutil"
	"github.com/perkloop/perkloop/internal/shared/errors"
)

type mockRegisterUC struct {
	result  *accountdto.AuthResultDTO
	err     error
	lastCmd accountUsecases.RegisterCommand
}

func (m *mockRegisterUC) Execute(_ context.Context, cmd accountUsecases.RegisterCommand) (*accountdto.AuthResultDTO, error) {
	m.lastCmd = cmd
	return m.result, m.err
}

type mockLoginUC struct {
	result *accountdto.AuthResultDTO
	err    error
}

func (m *mockLoginUC) Execute(_ context.Context, _ accountUsecases.LoginCommand) (*accountdto.AuthResultDTO, error) {
	return m.result, m.err
}

type mockGetMeUC struct {
	lastUserID string
}

func (m *mockGetMeUC) Execute(_ context.Context, userID string) (*accountdto.UserDTO, error) {
	m.lastUserID = userID
	return &accountdto.UserDTO{ID: userID, Role: "user"}, nil
}

func TestAccountHandler_Register(t *testing.T) {
	uc := &mockRegisterUC{result: &accountdto.AuthResultDTO{AccessToken: "tok", TokenType: "Bearer"}}
	handler := NewAccountHandler(uc, nil, nil, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/register", RegisterRequest{
		Email:    "hana@example.com",
		Password: "correct-horse",
	})
	handler.Register(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "hana@example.com", uc.lastCmd.Email)
}

func TestAccountHandler_Register_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"bad email", RegisterRequest{Email: "not-an-email", Password: "correct-horse"}},
		{"short password", RegisterRequest{Email: "hana@example.com", Password: "short"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAccountHandler(&mockRegisterUC{}, nil, nil, testutil.NewMockLogger())
			c, w := testutil.NewTestContext(http.MethodPost, "/auth/register", tt.req)
			handler.Register(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp testutil.APIResponse
			require.NoError(t, testutil.ParseResponse(w, &resp))
			assert.Equal(t, string(errors.ErrorTypeValidation), resp.Error.Type)
		})
	}
}

func TestAccountHandler_Register_DuplicateEmail(t *testing.T) {
	uc := &mockRegisterUC{err: errors.NewConflictError("email already registered")}
	handler := NewAccountHandler(uc, nil, nil, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/register", RegisterRequest{
		Email:    "hana@example.com",
		Password: "correct-horse",
	})
	handler.Register(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAccountHandler_Login_BadCredentials(t *testing.T) {
	uc := &mockLoginUC{err: errors.NewUnauthorizedError("invalid email or password")}
	handler := NewAccountHandler(nil, uc, nil, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/login", LoginRequest{
		Email:    "hana@example.com",
		Password: "wrong",
	})
	handler.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAccountHandler_Me(t *testing.T) {
	uc := &mockGetMeUC{}
	handler := NewAccountHandler(nil, nil, uc, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/users/me", nil)
	testutil.SetAuthContext(c, testUserID, "user")
	handler.Me(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, testUserID, uc.lastUserID)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var user accountdto.UserDTO
	require.NoError(t, json.Unmarshal(resp.Data, &user))
	assert.Equal(t, testUserID, user.ID)
}
