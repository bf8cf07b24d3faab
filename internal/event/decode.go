package event

import "encoding/json"

// DecodePayload returns the payload as T. Events published in-process already carry T;
// events read back from the dead-letter file or Kafka carry generic JSON and are
// converted through a marshal round trip.
func DecodePayload[T any](payload interface{}) (T, error) {
	if v, ok := payload.(T); ok {
		return v, nil
	}
	var out T
	data, err := json.Marshal(payload)
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(data, &out)
	return out, err
}
