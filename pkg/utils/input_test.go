package utils

import (
	"slices"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestActionsForKeys(t *testing.T) {
	tests := []struct {
		name string
		keys []ebiten.Key
		want []Action
	}{
		{"none", nil, nil},
		{"arrow left", []ebiten.Key{ebiten.KeyArrowLeft}, []Action{ActionMoveLeft}},
		{"wasd right", []ebiten.Key{ebiten.KeyD}, []Action{ActionMoveRight}},
		{"space and enter collapse", []ebiten.Key{ebiten.KeySpace, ebiten.KeyEnter}, []Action{ActionDrop}},
		{"unbound ignored", []ebiten.Key{ebiten.KeyQ, ebiten.KeyR}, []Action{ActionRestart}},
		{"order kept", []ebiten.Key{ebiten.KeyM, ebiten.KeyA}, []Action{ActionToggleMute, ActionMoveLeft}},
		{"fullscreen", []ebiten.Key{ebiten.KeyF11}, []Action{ActionToggleFullscreen}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ActionsForKeys(tt.keys, DefaultKeyBindings)
			if !slices.Equal(got, tt.want) {
				t.Errorf("ActionsForKeys() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPointerTrackerObserve(t *testing.T) {
	var pt PointerTracker

	first := pt.observe(100, 200, false)
	if !first.Moved || !first.HasPointer {
		t.Errorf("first sample should count as a move, got %+v", first)
	}

	same := pt.observe(100, 200, true)
	if same.Moved {
		t.Error("unchanged position should not be a move")
	}
	if !same.JustPressed {
		t.Error("JustPressed should be forwarded")
	}

	if moved := pt.observe(101, 200, false); !moved.Moved {
		t.Error("changed position should be a move")
	}

	pt.Reset()
	if again := pt.observe(101, 200, false); !again.Moved {
		t.Error("after Reset the next sample should be a move")
	}
}

func TestInsideRect(t *testing.T) {
	tests := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{479, 719, true},
		{480, 10, false},
		{10, 720, false},
		{-1, 10, false},
	}
	for _, tt := range tests {
		if got := InsideRect(tt.x, tt.y, 0, 0, 480, 720); got != tt.want {
			t.Errorf("InsideRect(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestActionString(t *testing.T) {
	if ActionDrop.String() != "drop" || ActionNone.String() != "none" {
		t.Errorf("unexpected names: %s, %s", ActionDrop, ActionNone)
	}
}

func TestDefaultKeyBindingsDebugAndVolume(t *testing.T) {
	tests := []struct {
		key  ebiten.Key
		want Action
	}{
		{ebiten.KeyMinus, ActionVolumeDown},
		{ebiten.KeyEqual, ActionVolumeUp},
		{ebiten.KeyPeriod, ActionStepTick},
		{ebiten.KeyP, ActionResumeFrames},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			if got := DefaultKeyBindings[tt.key]; got != tt.want {
				t.Errorf("binding for %v = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}
