// Package app provides application lifecycle management, session state,
// and events.
package app

import (
	"fmt"
	"log"
	"sync"

	mmimage "measuremate/internal/image"
	"measuremate/internal/measure"
	"measuremate/internal/project"
	"measuremate/internal/units"
)

// EventType identifies different application events.
type EventType int

const (
	EventImageLoaded EventType = iota
	EventSessionLoaded
	EventSessionSaved
	EventCalibrationChanged
	EventMeasurementsChanged
	EventDisplayUnitChanged
	EventModeChanged
	EventZoomChanged
	EventSettingsChanged
	EventModified
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds the application state: the loaded image, the measurement
// session, settings, and the event bus connecting the UI panels.
type State struct {
	mu sync.RWMutex

	Session  *measure.Session
	Image    *mmimage.Layer
	Settings *Settings

	SessionPath string
	Modified    bool

	listeners map[EventType][]EventListener
}

// NewState creates a new application state with a fresh session.
func NewState(settings *Settings) *State {
	if settings == nil {
		settings = DefaultSettings()
	}
	s := &State{
		Session:   measure.NewSession(),
		Settings:  settings,
		listeners: make(map[EventType][]EventListener),
	}
	s.Session.View.SetZoomBounds(settings.MinZoom, settings.MaxZoom)
	return s
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetModified marks the session as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	s.Modified = modified
	s.mu.Unlock()
	s.Emit(EventModified, modified)
}

// LoadImage loads an image, resets the session to an uncalibrated state,
// and emits EventImageLoaded.
func (s *State) LoadImage(path string) error {
	layer, err := mmimage.Load(path)
	if err != nil {
		return err
	}
	log.Printf("Loaded image %s (%dx%d)", path, layer.Width(), layer.Height())

	s.mu.Lock()
	s.Image = layer
	s.Session = measure.NewSession()
	s.Session.View.SetZoomBounds(s.Settings.MinZoom, s.Settings.MaxZoom)
	s.SessionPath = ""
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventImageLoaded, layer)
	return nil
}

// ReloadImage re-decodes the current image in place, keeping the
// calibration and measurements. Used when the file changes on disk.
func (s *State) ReloadImage() error {
	s.mu.RLock()
	current := s.Image
	s.mu.RUnlock()
	if current == nil {
		return fmt.Errorf("no image loaded")
	}

	layer, err := mmimage.Load(current.Path)
	if err != nil {
		return err
	}
	log.Printf("Reloaded image %s", current.Path)

	s.mu.Lock()
	s.Image = layer
	s.mu.Unlock()

	s.Emit(EventImageLoaded, layer)
	return nil
}

// LoadSession restores a saved session file along with its image.
func (s *State) LoadSession(path string) error {
	f, err := project.Load(path)
	if err != nil {
		return err
	}

	var layer *mmimage.Layer
	if imagePath := f.GetImagePath(path); imagePath != "" {
		layer, err = mmimage.Load(imagePath)
		if err != nil {
			return fmt.Errorf("session image: %w", err)
		}
	}

	session := f.Restore()
	session.View.SetZoomBounds(s.Settings.MinZoom, s.Settings.MaxZoom)
	log.Printf("Loaded session %s (%d measurements)", path, session.Log.Len())

	s.mu.Lock()
	s.Image = layer
	s.Session = session
	s.SessionPath = path
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventSessionLoaded, f)
	if layer != nil {
		s.Emit(EventImageLoaded, layer)
	}
	s.Emit(EventCalibrationChanged, session.Calibration)
	s.Emit(EventMeasurementsChanged, nil)
	return nil
}

// SaveSession snapshots the current session to path.
func (s *State) SaveSession(path, name string) error {
	s.mu.RLock()
	session := s.Session
	image := s.Image
	s.mu.RUnlock()

	f := project.FromSession(name, session)
	if image != nil {
		f.SetImagePath(path, image.Path)
	}
	if err := f.Save(path); err != nil {
		return err
	}
	log.Printf("Saved session %s (%d measurements)", path, session.Log.Len())

	s.mu.Lock()
	s.SessionPath = path
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventSessionSaved, path)
	return nil
}

// SetDisplayUnit switches the unit used to present measured distances.
// Recorded measurements are re-derived, never snapshotted.
func (s *State) SetDisplayUnit(u units.Unit) {
	s.mu.Lock()
	s.Session.DisplayUnit = u
	s.mu.Unlock()
	s.Emit(EventDisplayUnitChanged, u)
	s.Emit(EventMeasurementsChanged, nil)
}
