package systems

import (
	"testing"

	"github.com/decker502/wavewizard/pkg/components"
	"github.com/decker502/wavewizard/pkg/ecs"
	"github.com/decker502/wavewizard/pkg/event"
)

func TestAddExperienceMultipleLevelUps(t *testing.T) {
	w := newTestWorld(t, testProfile(), nil)
	levelUps := countEvents(w.dispatcher, event.LevelUp)

	// 50 + 62 升两级，余 10
	gained := w.progression.AddExperience(w.player, 122)

	prog, _ := ecs.GetComponent[*components.ProgressionComponent](w.em, w.player)
	if gained != 2 || prog.Level != 3 || prog.Experience != 10 {
		t.Errorf("gained=%d level=%d exp=%d, want 2/3/10", gained, prog.Level, prog.Experience)
	}
	if prog.ExperienceToNext != w.balance.Progression.ExperienceToNext(3) {
		t.Errorf("experience to next = %d", prog.ExperienceToNext)
	}
	if *levelUps != 2 {
		t.Errorf("level up events = %d, want 2", *levelUps)
	}

	h := healthOf(t, w.em, w.player)
	wantMax := w.balance.Player.MaxHealth + 2*w.balance.Progression.LevelUpHealthBonus
	if h.MaxHealth != wantMax {
		t.Errorf("max health = %.1f, want %.1f", h.MaxHealth, wantMax)
	}
}

func TestAddExperienceCapsAtMaxLevel(t *testing.T) {
	w := newTestWorld(t, testProfile(), nil)
	w.progression.balance.MaxLevel = 3

	w.progression.AddExperience(w.player, 100000)

	prog, _ := ecs.GetComponent[*components.ProgressionComponent](w.em, w.player)
	if prog.Level != 3 {
		t.Errorf("level = %d, want capped at 3", prog.Level)
	}
	if prog.Experience != prog.ExperienceToNext {
		t.Errorf("experience = %d, want clamped to %d", prog.Experience, prog.ExperienceToNext)
	}
	if w.progression.AddExperience(w.player, 500) != 0 {
		t.Error("no level ups past the cap")
	}
}

func TestAddCoinsIgnoresNonPositive(t *testing.T) {
	w := newTestWorld(t, testProfile(), nil)
	w.progression.AddCoins(w.player, 3)
	w.progression.AddCoins(w.player, 0)
	w.progression.AddCoins(w.player, -2)

	prog, _ := ecs.GetComponent[*components.ProgressionComponent](w.em, w.player)
	if prog.Coins != 3 {
		t.Errorf("coins = %d, want 3", prog.Coins)
	}
}
