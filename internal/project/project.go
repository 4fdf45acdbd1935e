// Package project provides session file handling and persistence.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"measuremate/internal/measure"
	"measuremate/internal/units"
)

// Extension is the session file extension.
const Extension = ".mmproj"

// File represents a measurement session file (.mmproj). It captures the
// image reference, the calibration, and every recorded measurement so a
// session can be resumed later.
type File struct {
	Version  int       `json:"version"`
	Name     string    `json:"name"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`

	// Image path (relative to session file when possible)
	ImagePath string `json:"image,omitempty"`

	DisplayUnit  units.Unit             `json:"display_unit"`
	Calibration  *measure.Calibration   `json:"calibration,omitempty"`
	Measurements []*measure.Measurement `json:"measurements,omitempty"`
}

// New creates a new session file.
func New(name string) *File {
	now := time.Now()
	return &File{
		Version:     1,
		Name:        name,
		Created:     now,
		Modified:    now,
		DisplayUnit: units.Meter,
	}
}

// FromSession snapshots a measurement session into a File.
func FromSession(name string, s *measure.Session) *File {
	f := New(name)
	f.DisplayUnit = s.DisplayUnit
	f.Calibration = s.Calibration
	f.Measurements = s.Log.Items()
	return f
}

// Restore rebuilds a measurement session from the file contents.
func (f *File) Restore() *measure.Session {
	s := measure.NewSession()
	s.DisplayUnit = f.DisplayUnit
	s.Calibration = f.Calibration
	for _, m := range f.Measurements {
		s.Log.Append(m)
	}
	if s.Calibrated() {
		s.SetMode(measure.ModeMeasure)
	}
	return s
}

// Load loads a session from a .mmproj file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("invalid session file: %w", err)
	}
	return &f, nil
}

// Save saves the session to a file.
func (f *File) Save(path string) error {
	f.Modified = time.Now()

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SetImagePath stores the image path relative to the session file when
// possible, so the pair can be moved together.
func (f *File) SetImagePath(sessionPath, imagePath string) {
	rel, err := filepath.Rel(filepath.Dir(sessionPath), imagePath)
	if err != nil {
		f.ImagePath = imagePath
	} else {
		f.ImagePath = rel
	}
	f.Modified = time.Now()
}

// GetImagePath returns the absolute path to the session image.
func (f *File) GetImagePath(sessionPath string) string {
	if f.ImagePath == "" {
		return ""
	}
	if filepath.IsAbs(f.ImagePath) {
		return f.ImagePath
	}
	return filepath.Join(filepath.Dir(sessionPath), f.ImagePath)
}
