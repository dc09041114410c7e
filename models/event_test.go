package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvent_Announced(t *testing.T) {
	e := Event{MessagingAppAnnounced: true}

	assert.False(t, e.Announced(ChannelGeneric))
	assert.True(t, e.Announced(ChannelMessagingApp))
	assert.False(t, e.Announced(ChannelPhotoApp))
	assert.True(t, e.Announced(Channel("fax")))
	assert.False(t, e.FullyAnnounced())

	e.GenericAnnounced, e.PhotoAppAnnounced = true, true
	assert.True(t, e.FullyAnnounced())
}

func TestEvent_IsLead(t *testing.T) {
	e := Event{CaptainID: "a", CoCaptainID: "b"}

	assert.True(t, e.IsLead("a"))
	assert.True(t, e.IsLead("b"))
	assert.False(t, e.IsLead("c"))
	assert.False(t, e.IsLead(""))
	assert.False(t, Event{}.IsLead(""))
}

func TestChannel_AnnouncedField(t *testing.T) {
	for _, ch := range Channels {
		assert.True(t, ch.Valid())
		assert.NotEmpty(t, ch.AnnouncedField())
	}
	assert.False(t, Channel("fax").Valid())
	assert.Empty(t, Channel("fax").AnnouncedField())
}
