// Package config reads and writes time-window sets as YAML, so a window
// configuration can be shared between machines or seeded from a dotfile.
package config

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	yaml "go.yaml.in/yaml/v3"

	"github.com/timeblock-app/timeblock/internal/models"
)

type windowFile struct {
	Windows []windowDef `yaml:"windows"`
}

type windowDef struct {
	ID       string                `yaml:"id"`
	Name     string                `yaml:"name"`
	Priority int                   `yaml:"priority"`
	Schedule map[string][]rangeDef `yaml:"schedule"`
}

type rangeDef struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

var dayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

var canonicalDay = [7]string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

// LoadWindows reads a YAML window set. Unknown fields are rejected so typos
// surface instead of silently producing empty windows.
func LoadWindows(path string) ([]models.TimeWindow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read window config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var file windowFile
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parse window config: %w", err)
	}

	var windows []models.TimeWindow
	for _, def := range file.Windows {
		if def.ID == "" {
			return nil, fmt.Errorf("window %q is missing an id", def.Name)
		}
		w := models.TimeWindow{
			ID:       def.ID,
			Name:     def.Name,
			Priority: def.Priority,
			Schedule: make(map[time.Weekday][]models.TimeRange),
		}
		for dayName, ranges := range def.Schedule {
			day, ok := dayNames[strings.ToLower(dayName)]
			if !ok {
				return nil, fmt.Errorf("window %q: unknown weekday %q", def.ID, dayName)
			}
			for _, r := range ranges {
				w.Schedule[day] = append(w.Schedule[day], models.TimeRange{Start: r.Start, End: r.End})
			}
		}
		windows = append(windows, w)
	}
	return windows, nil
}

// SaveWindows writes a window set as YAML with deterministic day ordering.
func SaveWindows(path string, windows []models.TimeWindow) error {
	var file windowFile
	for _, w := range windows {
		def := windowDef{
			ID:       w.ID,
			Name:     w.Name,
			Priority: w.Priority,
			Schedule: make(map[string][]rangeDef),
		}
		days := make([]time.Weekday, 0, len(w.Schedule))
		for day := range w.Schedule {
			days = append(days, day)
		}
		sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
		for _, day := range days {
			for _, r := range w.Schedule[day] {
				name := canonicalDay[int(day)]
				def.Schedule[name] = append(def.Schedule[name], rangeDef{Start: r.Start, End: r.End})
			}
		}
		file.Windows = append(file.Windows, def)
	}

	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("serialize window config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write window config: %w", err)
	}
	return nil
}
