package models

import "time"

// Channel is one of the independent announcement tracks of an event.
type Channel string

const (
	ChannelGeneric      Channel = "generic"
	ChannelMessagingApp Channel = "messaging-app"
	ChannelPhotoApp     Channel = "photo-app"
)

// Channels lists every channel in scan order.
var Channels = []Channel{ChannelGeneric, ChannelMessagingApp, ChannelPhotoApp}

// Valid reports whether c names a known channel.
func (c Channel) Valid() bool {
	switch c {
	case ChannelGeneric, ChannelMessagingApp, ChannelPhotoApp:
		return true
	}
	return false
}

// AnnouncedField is the event document field holding this channel's flag.
func (c Channel) AnnouncedField() string {
	switch c {
	case ChannelGeneric:
		return "genericAnnounced"
	case ChannelMessagingApp:
		return "messagingAppAnnounced"
	case ChannelPhotoApp:
		return "photoAppAnnounced"
	}
	return ""
}

// ReminderRecord is the persisted proof that a member was reminded to announce
// an event on a channel. Day is CreatedAt's calendar date in the scheduler zone.
type ReminderRecord struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"userId" json:"userId"`
	Channel   Channel   `bson:"channel" json:"channel"`
	EventID   string    `bson:"eventId" json:"eventId"`
	Title     string    `bson:"title" json:"title"`
	Body      string    `bson:"body" json:"body"`
	Day       string    `bson:"day" json:"day"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
