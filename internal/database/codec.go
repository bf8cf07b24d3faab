package database

import (
	"encoding/json"
	"fmt"

	"github.com/wrecklessracks/racks/internal/domain"
)

// AccountState is the JSON-encoded part of an account row
type AccountState struct {
	Stats       []byte
	Challenges  []byte
	Bonus       []byte
	Tournaments []byte
}

// EncodeAccountState serializes the nested account fields for storage
func EncodeAccountState(acct *domain.Account) (AccountState, error) {
	var st AccountState
	var err error
	if st.Stats, err = json.Marshal(acct.Stats); err != nil {
		return st, fmt.Errorf("%s: stats: %w", ErrMsgFailedToEncodeState, err)
	}
	if st.Challenges, err = json.Marshal(acct.Challenges); err != nil {
		return st, fmt.Errorf("%s: challenges: %w", ErrMsgFailedToEncodeState, err)
	}
	if st.Bonus, err = json.Marshal(acct.Bonus); err != nil {
		return st, fmt.Errorf("%s: bonus: %w", ErrMsgFailedToEncodeState, err)
	}
	if st.Tournaments, err = json.Marshal(acct.Tournaments); err != nil {
		return st, fmt.Errorf("%s: tournaments: %w", ErrMsgFailedToEncodeState, err)
	}
	return st, nil
}

// DecodeAccountState fills the nested account fields. Empty columns leave defaults.
func DecodeAccountState(acct *domain.Account, st AccountState) error {
	if err := unmarshalColumn(st.Stats, &acct.Stats); err != nil {
		return fmt.Errorf("%s: stats: %w", ErrMsgFailedToDecodeState, err)
	}
	if err := unmarshalColumn(st.Challenges, &acct.Challenges); err != nil {
		return fmt.Errorf("%s: challenges: %w", ErrMsgFailedToDecodeState, err)
	}
	if err := unmarshalColumn(st.Bonus, &acct.Bonus); err != nil {
		return fmt.Errorf("%s: bonus: %w", ErrMsgFailedToDecodeState, err)
	}
	if err := unmarshalColumn(st.Tournaments, &acct.Tournaments); err != nil {
		return fmt.Errorf("%s: tournaments: %w", ErrMsgFailedToDecodeState, err)
	}
	acct.EnsureMaps()
	return nil
}

func unmarshalColumn(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
