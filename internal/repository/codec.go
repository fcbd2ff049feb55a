package repository

import (
	"encoding/json"
	"fmt"
)

// EncodeWorkouts renders the collection the way it is kept on disk: a pretty-printed JSON array.
// A nil collection is written as [].
func EncodeWorkouts(items []json.RawMessage) ([]byte, error) {
	if items == nil {
		items = []json.RawMessage{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// DecodeWorkouts splits a stored JSON array into its elements without interpreting them.
// Anything that is not an array is reported as ErrCorrupt.
func DecodeWorkouts(data []byte) ([]json.RawMessage, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if items == nil {
		items = []json.RawMessage{}
	}
	return items, nil
}
