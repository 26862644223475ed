package tasks

import (
	"encoding/json"
	"fmt"

	"taskpad/internal/service"
)

// Encode serializes a task list as a JSON array of {"id","text"} objects.
// A nil list encodes as "[]".
func Encode(list []service.Task) (string, error) {
	if list == nil {
		list = []service.Task{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("failed to encode tasks: %w", err)
	}
	return string(data), nil
}

// Decode parses a JSON array of task objects.
// Objects written without an id decode with an empty ID.
func Decode(s string) ([]service.Task, error) {
	var list []service.Task
	if err := json.Unmarshal([]byte(s), &list); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	return list, nil
}
