package core

// DeviceType indicates the kind of Spotify Connect endpoint.
type DeviceType string

const (
	DeviceTypeSpeaker  DeviceType = "speaker"
	DeviceTypeComputer DeviceType = "computer"
	DeviceTypePhone    DeviceType = "phone"
	DeviceTypeTV       DeviceType = "tv"
	DeviceTypeUnknown  DeviceType = "unknown"
)

// Device represents a playback device as last reported by Spotify.
// The zero Device (empty ID) means "no device".
type Device struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Type     DeviceType `json:"type"`
	IsActive bool       `json:"is_active"`
}

// IsZero reports whether d is the empty "no device" value.
func (d Device) IsZero() bool {
	return d.ID == ""
}
