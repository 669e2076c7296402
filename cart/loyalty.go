package cart

import (
	"encoding/json"
	"log"
	"os"
	"sync"
)

// Loyalty levels, in ascending spend order
const (
	LevelBronze   = "Bronze"
	LevelSilver   = "Silver"
	LevelGold     = "Gold"
	LevelPlatinum = "Platinum"
)

func levelFor(points int) string {
	switch {
	case points >= 10000:
		return LevelPlatinum
	case points >= 5000:
		return LevelGold
	case points >= 2000:
		return LevelSilver
	default:
		return LevelBronze
	}
}

type loyaltyState struct {
	Points     int     `json:"points"`
	Level      string  `json:"level"`
	TotalSpent float64 `json:"totalSpent"`
}

// Loyalty is the kiosk-local points balance. One point per ₹10 spent.
type Loyalty struct {
	mu    sync.Mutex
	path  string
	state loyaltyState
}

// LoadLoyalty opens the balance persisted at path; missing or corrupt
// data starts a fresh Bronze balance.
func LoadLoyalty(path string) *Loyalty {
	l := &Loyalty{path: path, state: loyaltyState{Level: LevelBronze}}
	if path == "" {
		return l
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return l
	}
	if err := json.Unmarshal(data, &l.state); err != nil {
		l.state = loyaltyState{Level: LevelBronze}
	}
	return l
}

func (l *Loyalty) save() {
	if l.path == "" {
		return
	}
	data, err := json.MarshalIndent(l.state, "", "  ")
	if err != nil {
		log.Printf("loyalty: marshal: %v", err)
		return
	}
	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		log.Printf("loyalty: save: %v", err)
	}
}

// AddPoints credits points earned on a completed order
func (l *Loyalty) AddPoints(points int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.Points += points
	l.state.TotalSpent += float64(points) * 10
	l.state.Level = levelFor(l.state.Points)
	l.save()
}

// Redeem deducts points if the balance allows it
func (l *Loyalty) Redeem(points int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state.Points < points {
		return false
	}
	l.state.Points -= points
	l.state.Level = levelFor(l.state.Points)
	l.save()
	return true
}

// Reset zeroes the balance
func (l *Loyalty) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = loyaltyState{Level: LevelBronze}
	l.save()
}

func (l *Loyalty) Points() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Points
}

func (l *Loyalty) Level() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Level
}

func (l *Loyalty) TotalSpent() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.TotalSpent
}
