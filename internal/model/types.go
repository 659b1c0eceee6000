package model

import "time"

// AllEnvironmentsKey is the reserved key of the synthetic "all" environment.
// The catalog API never sends it; the client prepends it.
const AllEnvironmentsKey = "all"

// Frequency describes how often a plant needs water.
type Frequency struct {
	Times       int    `json:"times" yaml:"times"`
	RepeatEvery string `json:"repeat_every" yaml:"repeat_every"` // day, week
}

// Plant represents a catalog plant as served by the plants API.
type Plant struct {
	ID           int64     `json:"id" yaml:"id"`
	Name         string    `json:"name" yaml:"name"`
	About        string    `json:"about" yaml:"about"`
	WaterTips    string    `json:"water_tips" yaml:"water_tips"`
	Photo        string    `json:"photo" yaml:"photo"` // URI
	Environments []string  `json:"environments" yaml:"environments"`
	Frequency    Frequency `json:"frequency" yaml:"frequency"`
}

// HasEnvironment reports whether the plant belongs to the given environment key.
func (p Plant) HasEnvironment(key string) bool {
	for _, env := range p.Environments {
		if env == key {
			return true
		}
	}
	return false
}

// Environment is a placement tag used to filter plants (indoor, outdoor, ...).
type Environment struct {
	Key   string `json:"key" yaml:"key"`
	Title string `json:"title" yaml:"title"`
}

// AllEnvironments returns the synthetic environment that matches every plant.
func AllEnvironments() Environment {
	return Environment{Key: AllEnvironmentsKey, Title: "Todos"}
}

// SavedPlant is a plant the user scheduled a watering reminder for.
type SavedPlant struct {
	Plant
	NotifyAt time.Time `json:"dateTimeNotification"`
	SavedAt  time.Time `json:"-"`
}
