package cart

import (
	"path/filepath"
	"testing"
)

func TestLoyaltyLevels(t *testing.T) {
	tests := []struct {
		points int
		want   string
	}{
		{0, LevelBronze},
		{1999, LevelBronze},
		{2000, LevelSilver},
		{4999, LevelSilver},
		{5000, LevelGold},
		{9999, LevelGold},
		{10000, LevelPlatinum},
	}
	for _, tt := range tests {
		if got := levelFor(tt.points); got != tt.want {
			t.Errorf("levelFor(%d) = %q, want %q", tt.points, got, tt.want)
		}
	}
}

func TestLoyaltyEarnAndRedeem(t *testing.T) {
	l := LoadLoyalty("")

	l.AddPoints(2500)
	if l.Level() != LevelSilver {
		t.Errorf("level = %q, want Silver", l.Level())
	}
	if l.TotalSpent() != 25000 {
		t.Errorf("totalSpent = %v, want 25000 (one point per ₹10)", l.TotalSpent())
	}

	if !l.Redeem(1000) {
		t.Fatal("redeem within balance refused")
	}
	if l.Points() != 1500 || l.Level() != LevelBronze {
		t.Errorf("after redeem: %d points at %q, want 1500 Bronze", l.Points(), l.Level())
	}
	if l.Redeem(9999) {
		t.Error("redeem above balance allowed")
	}
}

func TestLoyaltyPersistsAcrossLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loyalty.json")

	l := LoadLoyalty(path)
	l.AddPoints(5200)

	reloaded := LoadLoyalty(path)
	if reloaded.Points() != 5200 || reloaded.Level() != LevelGold {
		t.Errorf("reloaded %d points at %q, want 5200 Gold", reloaded.Points(), reloaded.Level())
	}

	reloaded.Reset()
	if got := LoadLoyalty(path); got.Points() != 0 || got.Level() != LevelBronze {
		t.Error("reset was not persisted")
	}
}

func TestFavorites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.json")

	f := LoadFavorites(path)
	if !f.Toggle("m1") {
		t.Error("first toggle should star the item")
	}
	f.Toggle("m2")
	if f.Toggle("m1") {
		t.Error("second toggle should unstar the item")
	}

	reloaded := LoadFavorites(path)
	if reloaded.Has("m1") {
		t.Error("unstarred item survived reload")
	}
	if !reloaded.Has("m2") {
		t.Error("starred item lost on reload")
	}
	if got := reloaded.List(); len(got) != 1 || got[0] != "m2" {
		t.Errorf("list = %v, want [m2]", got)
	}
}
