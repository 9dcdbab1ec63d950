package models

import "time"

const InterviewStatusScheduled = "Scheduled"

// MeetingPlatform is a provider a client may pick when scheduling an interview.
type MeetingPlatform string

const (
	PlatformZoom           MeetingPlatform = "Zoom"
	PlatformGoogleMeet     MeetingPlatform = "Google Meet"
	PlatformMicrosoftTeams MeetingPlatform = "Microsoft Teams"
)

var platformDomains = map[MeetingPlatform]string{
	PlatformZoom:           "zoom.us",
	PlatformGoogleMeet:     "meet.google.com",
	PlatformMicrosoftTeams: "teams.microsoft.com",
}

// Domain returns the fragment a meeting link for p must contain.
func (p MeetingPlatform) Domain() (string, bool) {
	d, ok := platformDomains[p]
	return d, ok
}

// MeetingPlatforms lists the supported providers in a stable order.
func MeetingPlatforms() []MeetingPlatform {
	return []MeetingPlatform{PlatformZoom, PlatformGoogleMeet, PlatformMicrosoftTeams}
}

type Interview struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	ApplicationID  uint64    `gorm:"uniqueIndex;not null" json:"application_id"`
	DateTime       time.Time `gorm:"not null" json:"date_time"`
	LinkOrLocation string    `gorm:"type:varchar(500);not null" json:"link_or_location"`
	Status         string    `gorm:"type:varchar(50);not null;default:'Scheduled'" json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	Application Application `gorm:"foreignKey:ApplicationID" json:"-"`
}
