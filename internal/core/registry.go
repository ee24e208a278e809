package core

import (
	"context"
	"fmt"

	errs "github.com/tessro/termspot/internal/errors"
)

// DeviceRegistry holds the last discovered device list and the device
// control commands target.
type DeviceRegistry struct {
	devices []Device
	active  Device
}

// NewRegistry creates an empty registry with no active device.
func NewRegistry() *DeviceRegistry {
	return &DeviceRegistry{}
}

// Devices returns the device list from the last refresh.
func (r *DeviceRegistry) Devices() []Device {
	return r.devices
}

// Active returns the active device, or the zero Device if none.
func (r *DeviceRegistry) Active() Device {
	return r.active
}

// SetActive replaces the active device without contacting Spotify.
func (r *DeviceRegistry) SetActive(d Device) {
	r.active = d
}

// Refresh replaces the device list and picks the active device: the first
// device reported active with a non-empty ID. Returns the new active device.
func (r *DeviceRegistry) Refresh(devices []Device) Device {
	r.devices = append([]Device(nil), devices...)
	r.active = FirstActive(devices)
	return r.active
}

// FirstActive returns the first device marked active that has an ID.
func FirstActive(devices []Device) Device {
	for _, d := range devices {
		if d.IsActive && d.ID != "" {
			return d
		}
	}
	return Device{}
}

// SelectDevice returns the device whose display name is name, marked active.
// When several devices share a name the first one wins.
func SelectDevice(devices []Device, name string) (Device, error) {
	if len(devices) == 0 {
		return Device{}, errs.ErrNoDevices
	}
	for _, d := range devices {
		if d.Name == name {
			d.IsActive = true
			return d, nil
		}
	}
	return Device{}, fmt.Errorf("%w: %s", errs.ErrDeviceNotFound, name)
}

// Activate transfers playback to d. The active device only changes if the
// transfer succeeds.
func (r *DeviceRegistry) Activate(ctx context.Context, t Transferer, d Device) error {
	if err := t.Transfer(ctx, d.ID); err != nil {
		return err
	}
	d.IsActive = true
	r.active = d
	return nil
}
