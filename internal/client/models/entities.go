package models

import (
	"fmt"
	"time"
)

// Team is a constructor entry.
type Team struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	FullName  string `json:"fullName,omitempty"`
	Base      string `json:"base,omitempty"`
	Principal string `json:"principal,omitempty"`
	Color     string `json:"color,omitempty"`
	LogoURL   string `json:"logoUrl,omitempty"`
}

// Driver is one driver profile, linked to a team.
type Driver struct {
	ID        string `json:"id"`
	Number    int    `json:"number"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Country   string `json:"country,omitempty"`
	TeamID    string `json:"teamId,omitempty"`
	PhotoURL  string `json:"photoUrl,omitempty"`
}

// Race is one round of a season's calendar.
type Race struct {
	ID      string    `json:"id"`
	Season  int       `json:"season"`
	Round   int       `json:"round"`
	Name    string    `json:"name"`
	Circuit string    `json:"circuit,omitempty"`
	Country string    `json:"country,omitempty"`
	Starts  time.Time `json:"starts"`
	HasSprint bool    `json:"hasSprint,omitempty"`
}

// Result is one classified finishing position of a session.
type Result struct {
	ID       string `json:"id"`
	RaceID   string `json:"raceId"`
	Session  string `json:"session"`
	Position int    `json:"position"`
	DriverID string `json:"driverId"`
	Points   int    `json:"points,omitempty"`
	Note     string `json:"note,omitempty"`
}

// Bet is one prediction-game entry. Its identity is the composite of user,
// race, session and season, so a user has at most one bet per session.
type Bet struct {
	ID      string   `json:"id"`
	UserID  string   `json:"userId"`
	RaceID  string   `json:"raceId"`
	Session string   `json:"session"`
	Season  int      `json:"season"`
	Picks   []string `json:"picks"`
	Placed  time.Time `json:"placed"`
}

// BetID builds the composite key a bet is stored under.
func BetID(userID, raceID, session string, season int) string {
	return fmt.Sprintf("%s:%s:%s:%d", userID, raceID, session, season)
}

// User is a CMS account. PasswordHash is a bcrypt hash; plaintext is never
// stored.
type User struct {
	ID           string    `json:"id"`
	Login        string    `json:"login"`
	DisplayName  string    `json:"displayName,omitempty"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"passwordHash,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Setting is one persisted configuration value under a fixed name.
type Setting struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// Fixed setting names consumed by the replication engine.
const (
	SettingDBEndpoint    = "sync_db_endpoint"
	SettingFilesEndpoint = "sync_files_endpoint"
	SettingAPIKey        = "sync_api_key"
)

// SyncConfig is the process-wide remote configuration: the two bridge
// endpoints and the shared secret appended to every request.
type SyncConfig struct {
	DBEndpoint    string `json:"dbEndpoint"`
	FilesEndpoint string `json:"filesEndpoint"`
	APIKey        string `json:"apiKey"`
}
