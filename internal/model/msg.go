package model

// Bubble Tea message types

// ErrorMsg represents an error message.
type ErrorMsg struct {
	Err error
}

// EnvironmentsLoadedMsg is sent when the environment tabs are fetched.
// The synthetic "all" environment is already first.
type EnvironmentsLoadedMsg struct {
	Environments []Environment
}

// MyPlantsLoadedMsg is sent when saved plants are loaded from the store.
type MyPlantsLoadedMsg struct {
	Plants []SavedPlant
}

// PlantSavedMsg is sent when a plant reminder is successfully saved.
type PlantSavedMsg struct {
	Plant  SavedPlant
	Before *SavedPlant // previous reminder for the same plant, if any
}

// PlantRemovedMsg is sent when a plant is removed from my plants.
type PlantRemovedMsg struct {
	ID      int64
	Removed SavedPlant
}

// FormCancelledMsg is sent when a form is cancelled.
type FormCancelledMsg struct{}

// Screen represents different app screens.
type Screen int

const (
	ScreenPlantSelect Screen = iota
	ScreenMyPlants
	ScreenPlantSave
	ScreenConfirmation
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNav Mode = iota
	ModeInsert
)
