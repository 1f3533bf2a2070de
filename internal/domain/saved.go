package domain

import "time"

// SavedPlant is a user-scoped bookmark of a catalog plant. The pair
// (UserID, PlantID) is unique: a user saves a given plant at most once,
// enforced by the store's constraint on the saved_plants table.
type SavedPlant struct {
	ID      int64
	PlantID int64
	UserID  UserID
	SavedAt time.Time
	Plant   *Plant // joined catalog record, with its category when present
}
