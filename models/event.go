package models

// EventDateLayout is the calendar-date format events are stored with.
const EventDateLayout = "2006-01-02"

// Event is a club event with its announcement bookkeeping.
// Date carries no time component and may be empty while the event is unscheduled.
type Event struct {
	ID                    string `bson:"id" json:"id"`
	Title                 string `bson:"title" json:"title"`
	Date                  string `bson:"date,omitempty" json:"date,omitempty"`
	CaptainID             string `bson:"captainId,omitempty" json:"captainId,omitempty"`
	CoCaptainID           string `bson:"coCaptainId,omitempty" json:"coCaptainId,omitempty"`
	GenericAnnounced      bool   `bson:"genericAnnounced" json:"genericAnnounced"`
	MessagingAppAnnounced bool   `bson:"messagingAppAnnounced" json:"messagingAppAnnounced"`
	PhotoAppAnnounced     bool   `bson:"photoAppAnnounced" json:"photoAppAnnounced"`
}

// Announced reports the flag for one channel. Unknown channels read as announced
// so nothing is ever dispatched for them.
func (e Event) Announced(ch Channel) bool {
	switch ch {
	case ChannelGeneric:
		return e.GenericAnnounced
	case ChannelMessagingApp:
		return e.MessagingAppAnnounced
	case ChannelPhotoApp:
		return e.PhotoAppAnnounced
	}
	return true
}

// FullyAnnounced is true once every channel flag is set.
func (e Event) FullyAnnounced() bool {
	for _, ch := range Channels {
		if !e.Announced(ch) {
			return false
		}
	}
	return true
}

// IsLead reports whether memberID is the captain or co-captain.
func (e Event) IsLead(memberID string) bool {
	if memberID == "" {
		return false
	}
	return e.CaptainID == memberID || e.CoCaptainID == memberID
}
