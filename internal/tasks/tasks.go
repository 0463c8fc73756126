// Package tasks defines the asynq task types and payloads shared by the
// scheduler and the worker.
package tasks

import "encoding/json"

// Task type constants.
const (
	TypeTagCloudRefresh = "tagcloud:refresh" // periodic tag cloud recomputation
)

// TagCloudRefreshPayload carries no data today; it exists so the payload
// can grow (e.g. a forced full rebuild flag) without changing task types.
type TagCloudRefreshPayload struct{}

// NewTagCloudRefreshTask builds the payload for a tag cloud refresh task.
func NewTagCloudRefreshTask() ([]byte, error) {
	return json.Marshal(TagCloudRefreshPayload{})
}
