package run

import (
	"testing"

	"github.com/decker502/wavewizard/pkg/config"
	"github.com/decker502/wavewizard/pkg/entities"
	"github.com/decker502/wavewizard/pkg/event"
)

func TestSpritesOrderAndKinds(t *testing.T) {
	r := New(Options{Tier: config.TierEasy, Seed: 3})
	em := r.EntityManager()

	tpl := config.DefaultEnemyTemplate()
	alive := entities.NewHostileEntity(em, config.HostileStrong, 0, tpl, 5, 5)
	r.Tracker().Add(alive)
	dead := entities.NewHostileEntity(em, config.HostileWeak, 0, tpl, 6, 6)
	r.Tracker().Add(dead)
	r.Combat().ApplyDamage(r.Player(), dead, 1e6, false)
	entities.NewCoinEntity(em, 7, 7, 1)

	sprites := r.Sprites()
	var kinds []SpriteKind
	for _, s := range sprites {
		kinds = append(kinds, s.Kind)
	}
	if len(kinds) < 4 {
		t.Fatalf("expected at least 4 sprites, got %v", kinds)
	}
	if kinds[len(kinds)-1] != SpritePlayer {
		t.Errorf("player should be drawn last, got %v", kinds)
	}
	if kinds[0] != SpriteCoin {
		t.Errorf("coins should be drawn first, got %v", kinds)
	}

	foundStrong := false
	for _, s := range sprites {
		if s.Kind == SpriteHostile && s.Tier == config.HostileStrong {
			foundStrong = true
		}
		if s.Kind == SpriteCorpse && s.HealthRatio != 0 {
			t.Errorf("corpse health ratio = %f, want 0", s.HealthRatio)
		}
	}
	if !foundStrong {
		t.Error("living strong hostile not reported")
	}
}

func TestMessageLogCapacityAndExpiry(t *testing.T) {
	d := event.NewDispatcher()
	log := NewMessageLog(d)
	defer log.Close()

	for i := 0; i < messageLogCapacity+2; i++ {
		d.Emit(event.Message, string(rune('a'+i)))
	}
	d.Emit(event.Message, "")

	lines := log.Lines()
	if len(lines) != messageLogCapacity {
		t.Fatalf("got %d lines, want %d", len(lines), messageLogCapacity)
	}
	if lines[0].Text != "c" {
		t.Errorf("oldest kept line = %q, want c", lines[0].Text)
	}

	log.Update(messageLifetime / 2)
	d.Emit(event.Message, "fresh")
	log.Update(messageLifetime / 2)

	lines = log.Lines()
	if len(lines) != 1 || lines[0].Text != "fresh" {
		t.Fatalf("expected only the fresh line to survive, got %+v", lines)
	}
	if lines[0].Alpha() != 1 {
		t.Errorf("fresh line alpha = %f, want 1", lines[0].Alpha())
	}
}
