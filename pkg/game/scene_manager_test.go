package game

import (
	"testing"

	"github.com/decker502/wavewizard/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	updateCalled bool
	drawCalled   bool
	closed       int
	deltaTime    float64
}

func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

func (m *MockScene) Close() {
	m.closed++
}

func TestSceneManagerUpdate(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	deltaTime := 0.016
	sm.Update(deltaTime)

	if !mockScene.updateCalled {
		t.Error("Scene's Update method was not called")
	}
	if mockScene.deltaTime != deltaTime {
		t.Errorf("Expected deltaTime %.3f, got %.3f", deltaTime, mockScene.deltaTime)
	}
}

// 没有场景时 Update/Draw 不应 panic
func TestSceneManagerNoScene(t *testing.T) {
	sm := NewSceneManager()
	sm.Update(0.016)
	sm.Draw(nil)
	sm.Shutdown()
}

func TestSceneManagerDraw(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	sm.Draw(nil)
	if !mockScene.drawCalled {
		t.Error("Scene's Draw method was not called")
	}
}

// 切换场景时关闭旧场景，重复切换到同一场景不关闭
func TestSceneManagerSwitchClosesPrevious(t *testing.T) {
	sm := NewSceneManager()
	scene1 := &MockScene{}
	scene2 := &MockScene{}

	sm.SwitchTo(scene1)
	sm.SwitchTo(scene1)
	if scene1.closed != 0 {
		t.Errorf("re-selecting the same scene closed it %d times", scene1.closed)
	}

	sm.SwitchTo(scene2)
	sm.Update(0.016)
	if scene1.closed != 1 {
		t.Errorf("scene1 closed %d times, want 1", scene1.closed)
	}
	if scene1.updateCalled || !scene2.updateCalled {
		t.Error("only the active scene should be updated")
	}

	sm.Shutdown()
	if scene2.closed != 1 || sm.GetCurrentScene() != nil {
		t.Error("Shutdown should close and clear the active scene")
	}
}

func TestSceneManagerFactories(t *testing.T) {
	sm := NewSceneManager()

	// 未设置工厂时是空操作
	sm.StartBattle(config.TierHard, 1)
	sm.ShowMenu()
	if sm.GetCurrentScene() != nil {
		t.Fatal("scene set without factories")
	}

	var gotTier config.DifficultyTier
	var gotMap int
	battle := &MockScene{}
	menu := &MockScene{}
	sm.SetBattleFactory(func(tier config.DifficultyTier, mapIndex int) Scene {
		gotTier, gotMap = tier, mapIndex
		return battle
	})
	sm.SetMenuFactory(func() Scene { return menu })

	sm.ShowMenu()
	sm.StartBattle(config.TierHard, 1)
	if sm.GetCurrentScene() != battle || gotTier != config.TierHard || gotMap != 1 {
		t.Errorf("battle factory not used: tier=%s map=%d", gotTier, gotMap)
	}
	if menu.closed != 1 {
		t.Error("menu should be closed when the battle starts")
	}
}
