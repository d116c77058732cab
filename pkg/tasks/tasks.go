package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	TypeFetchChannel     = "channel:fetch"
	TypeFetchAllChannels = "channels:fetchall"
)

// FetchChannelTaskPayload identifies one registered channel plus its
// placement, so the worker can splice the result into the snapshot.
type FetchChannelTaskPayload struct {
	Handle   string
	Name     string
	Feed     string
	Category string
}

func NewFetchChannelTask(handle, name, feed, category string) (*asynq.Task, error) {
	payload, err := json.Marshal(FetchChannelTaskPayload{
		Handle:   handle,
		Name:     name,
		Feed:     feed,
		Category: category,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeFetchChannel, payload), nil
}

func NewFetchAllChannelsTask() (*asynq.Task, error) {
	return asynq.NewTask(TypeFetchAllChannels, nil), nil
}
