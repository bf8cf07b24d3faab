package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/wrecklessracks/racks/internal/domain"
)

func TestHandleGetTournaments(t *testing.T) {
	m := &MockTournamentService{}
	m.On("Tournaments").Return([]domain.Tournament{{ID: "blackjack-blitz", Name: "Blackjack Blitz", EntryFee: 250}})

	w := serve(t, http.MethodGet, "/tournaments", "/tournaments", nil, HandleGetTournaments(m))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"entry_fee":250`)
}

func TestHandleJoinTournament(t *testing.T) {
	InitValidator()

	tests := []struct {
		name         string
		join         *domain.TournamentJoin
		err          error
		expectedCode int
		expectedBody string
	}{
		{
			name: "joined",
			join: &domain.TournamentJoin{
				AccountID:  "alice",
				Tournament: "blackjack-blitz",
				Entry:      domain.TournamentEntry{TournamentID: "blackjack-blitz", Run: "2026-10-19", EntryFee: 250},
				NewBalance: 750,
			},
			expectedCode: http.StatusOK,
			expectedBody: `"new_balance":750`,
		},
		{name: "insufficient funds", err: domain.ErrInsufficientFunds, expectedCode: http.StatusBadRequest, expectedBody: ErrMsgInsufficientFundsErr},
		{name: "already entered", err: domain.ErrAlreadyEntered, expectedCode: http.StatusConflict, expectedBody: ErrMsgAlreadyEnteredError},
		{name: "unknown tournament", err: domain.ErrTournamentNotFound, expectedCode: http.StatusNotFound, expectedBody: ErrMsgTournamentNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &MockTournamentService{}
			if tt.err != nil {
				m.On("Join", mock.Anything, "alice", "blackjack-blitz").Return(nil, tt.err)
			} else {
				m.On("Join", mock.Anything, "alice", "blackjack-blitz").Return(tt.join, nil)
			}

			w := serve(t, http.MethodPost, "/tournaments/{id}/join", "/tournaments/blackjack-blitz/join",
				AccountRequest{AccountID: "alice"}, HandleJoinTournament(m))

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			m.AssertExpectations(t)
		})
	}
}

func TestHandleJoinTournament_InvalidBody(t *testing.T) {
	InitValidator()
	m := &MockTournamentService{}

	w := serve(t, http.MethodPost, "/tournaments/{id}/join", "/tournaments/blackjack-blitz/join", `{}`, HandleJoinTournament(m))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "account_id")
	m.AssertNotCalled(t, "Join", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleGetPrizes(t *testing.T) {
	t.Run("known tournament", func(t *testing.T) {
		m := &MockTournamentService{}
		m.On("Prizes", "blackjack-blitz").Return([]domain.Prize{{Place: "1st", FromPlace: 1, ToPlace: 1, Amount: 5000}}, nil)

		w := serve(t, http.MethodGet, "/tournaments/{id}/prizes", "/tournaments/blackjack-blitz/prizes", nil, HandleGetPrizes(m))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"place":"1st"`)
	})

	t.Run("unknown tournament", func(t *testing.T) {
		m := &MockTournamentService{}
		m.On("Prizes", "poker-night").Return(nil, domain.ErrTournamentNotFound)

		w := serve(t, http.MethodGet, "/tournaments/{id}/prizes", "/tournaments/poker-night/prizes", nil, HandleGetPrizes(m))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleGetEntries(t *testing.T) {
	InitValidator()
	m := &MockTournamentService{}
	m.On("Entries", mock.Anything, "alice").Return([]domain.TournamentEntry{{TournamentID: "high-roller", Run: "2026-10", Score: 1200}}, nil)

	w := serve(t, http.MethodGet, "/accounts/{id}/tournaments", "/accounts/alice/tournaments", nil, HandleGetEntries(m))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"score":1200`)
	m.AssertExpectations(t)
}
