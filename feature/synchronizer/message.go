package synchronizer

import (
	"context"
	"fmt"
)

// Message is a control message sent by a client.
type Message string

const (
	MessageSkipWaiting     Message = "skipWaiting"
	MessageDownloadOffline Message = "downloadOffline"
)

// MessageResult reports the effect of a handled message.
type MessageResult struct {
	Message    Message           `json:"message"`
	Activation *ActivationResult `json:"activation,omitempty"`
	Downloaded int               `json:"downloaded"`
}

// HandleMessage dispatches a control message. skipWaiting activates an
// installed candidate immediately; downloadOffline runs DownloadOffline.
func (s *Synchronizer) HandleMessage(ctx context.Context, msg Message) (*MessageResult, error) {
	result := &MessageResult{Message: msg}

	switch msg {
	case MessageSkipWaiting:
		s.life.SkipWaiting()
		if s.life.State() != StateInstalled {
			return result, nil
		}
		activation, err := s.Activate(ctx)
		result.Activation = activation
		return result, err
	case MessageDownloadOffline:
		n, err := s.DownloadOffline(ctx)
		result.Downloaded = n
		return result, err
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessage, msg)
	}
}
