package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client *pubsub.Client
}

// EventType represents the type of event/message sent via pubsub. Each
// event type maps to a topic of the same name.
type EventType string

const (
	EventMatchRecorded  EventType = "match-recorded"
	EventVideoUploaded  EventType = "video-uploaded"
	EventInvitationSent EventType = "invitation-sent"
)
