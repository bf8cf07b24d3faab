package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/wrecklessracks/racks/internal/domain"
)

func TestHandleCreateAccount(t *testing.T) {
	InitValidator()

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(*MockAccountService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success",
			body: CreateAccountRequest{AccountID: "alice"},
			setupMock: func(m *MockAccountService) {
				m.On("Register", mock.Anything, "alice", int64(10_000)).
					Return(&domain.Account{ID: "alice", Balance: 10_000}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"balance":10000`,
		},
		{
			name: "Duplicate",
			body: CreateAccountRequest{AccountID: "alice"},
			setupMock: func(m *MockAccountService) {
				m.On("Register", mock.Anything, "alice", int64(10_000)).
					Return(nil, fmt.Errorf("failed to register account: %w", domain.ErrAccountExists))
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   ErrMsgAccountExistsError,
		},
		{
			name:           "Too long",
			body:           CreateAccountRequest{AccountID: string(make([]byte, 65))},
			setupMock:      func(m *MockAccountService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequestSummary,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &MockAccountService{}
			tt.setupMock(m)

			w := serve(t, http.MethodPost, "/accounts", "/accounts", tt.body, HandleCreateAccount(m, 10_000))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			m.AssertExpectations(t)
		})
	}
}

func TestHandleGetAccount(t *testing.T) {
	InitValidator()

	t.Run("found", func(t *testing.T) {
		m := &MockAccountService{}
		m.On("Get", mock.Anything, "alice").Return(&domain.Account{
			ID:                "alice",
			Balance:           900,
			CumulativeWagered: 100,
			Bonus:             domain.BonusState{FreeSpinsRemaining: 3},
		}, nil)

		w := serve(t, http.MethodGet, "/accounts/{id}", "/accounts/alice", nil, HandleGetAccount(m))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t,
			`{"account_id":"alice","balance":900,"cumulative_wagered":100,"free_spins_remaining":3}`,
			w.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		m := &MockAccountService{}
		m.On("Get", mock.Anything, "ghost").Return(nil, domain.ErrAccountNotFound)

		w := serve(t, http.MethodGet, "/accounts/{id}", "/accounts/ghost", nil, HandleGetAccount(m))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid id never reaches the service", func(t *testing.T) {
		m := &MockAccountService{}

		w := serve(t, http.MethodGet, "/accounts/{id}", "/accounts/a%20b", nil, HandleGetAccount(m))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		m.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}
