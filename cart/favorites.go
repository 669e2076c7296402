package cart

import (
	"encoding/json"
	"log"
	"os"
	"sort"
	"sync"
)

// Favorites is the kiosk-local set of starred menu item ids
type Favorites struct {
	mu   sync.Mutex
	path string
	ids  map[string]bool
}

// LoadFavorites opens the set persisted at path
func LoadFavorites(path string) *Favorites {
	f := &Favorites{path: path, ids: make(map[string]bool)}
	if path == "" {
		return f
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return f
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return f
	}
	for _, id := range ids {
		f.ids[id] = true
	}
	return f
}

func (f *Favorites) save() {
	if f.path == "" {
		return
	}
	data, err := json.MarshalIndent(f.list(), "", "  ")
	if err != nil {
		log.Printf("favorites: marshal: %v", err)
		return
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		log.Printf("favorites: save: %v", err)
	}
}

// Toggle flips an item's favorite state and reports the new state
func (f *Favorites) Toggle(itemID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ids[itemID] {
		delete(f.ids, itemID)
		f.save()
		return false
	}
	f.ids[itemID] = true
	f.save()
	return true
}

// Has reports whether an item is starred
func (f *Favorites) Has(itemID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ids[itemID]
}

// List returns the starred item ids in stable order
func (f *Favorites) List() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.list()
}

func (f *Favorites) list() []string {
	out := make([]string, 0, len(f.ids))
	for id := range f.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
