package reminder

import (
	"fmt"

	"itufk/models"
)

func reminderText(ev models.Event, ch models.Channel, daysRemaining int) (title, body string) {
	name := ev.Title
	if name == "" {
		name = "An upcoming event"
	}
	title = "Announcement reminder"
	body = fmt.Sprintf("%s is in %d day%s and has not been announced %s yet.",
		name, daysRemaining, plural(daysRemaining), channelPhrase(ch))
	return title, body
}

func channelPhrase(ch models.Channel) string {
	switch ch {
	case models.ChannelMessagingApp:
		return "on the messaging app"
	case models.ChannelPhotoApp:
		return "on the photo app"
	default:
		return "to the club"
	}
}

// plural returns "s" if n is not 1, otherwise returns an empty string.
func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
