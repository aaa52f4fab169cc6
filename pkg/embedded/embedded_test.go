package embedded

import (
	"errors"
	"testing"
	"testing/fstest"
)

// resetEmbedded 重置包状态，避免测试之间相互影响
func resetEmbedded(t *testing.T) {
	t.Helper()
	dataFS = nil
	initialized = false
	t.Cleanup(func() {
		dataFS = nil
		initialized = false
	})
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	resetEmbedded(t)

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(fstest.MapFS{})

	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}

	Init(nil)
	if IsInitialized() {
		t.Error("Init(nil) should leave the package uninitialized")
	}
}

// TestReadFileNotInitialized 测试未初始化时调用 ReadFile
func TestReadFileNotInitialized(t *testing.T) {
	resetEmbedded(t)

	_, err := ReadFile("data/fruit_tiers.yaml")
	if !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Expected ErrNotInitialized, got %v", err)
	}
}

func TestReadFile(t *testing.T) {
	resetEmbedded(t)
	Init(fstest.MapFS{
		"data/fruit_tiers.yaml": {Data: []byte("tiers: []\n")},
	})

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{name: "plain path", path: "data/fruit_tiers.yaml", want: "tiers: []\n"},
		{name: "dot prefix", path: "./data/fruit_tiers.yaml", want: "tiers: []\n"},
		{name: "windows separators", path: `data\fruit_tiers.yaml`, want: "tiers: []\n"},
		{name: "windows dot prefix", path: `.\data\fruit_tiers.yaml`, want: "tiers: []\n"},
		{name: "missing file", path: "data/missing.yaml", wantErr: true},
		{name: "wrong prefix", path: "assets/fruit.png", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadFile(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ReadFile(%q) expected error", tt.path)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadFile(%q) error: %v", tt.path, err)
			}
			if string(data) != tt.want {
				t.Errorf("ReadFile(%q) = %q, want %q", tt.path, data, tt.want)
			}
		})
	}
}

func TestExistsAndGlob(t *testing.T) {
	resetEmbedded(t)
	Init(fstest.MapFS{
		"data/a.yaml": {Data: []byte("a")},
		"data/b.yaml": {Data: []byte("b")},
	})

	if !Exists("data/a.yaml") {
		t.Error("data/a.yaml should exist")
	}
	if !Exists(`data\b.yaml`) {
		t.Error(`data\b.yaml should resolve to data/b.yaml`)
	}
	if Exists("data/c.yaml") {
		t.Error("data/c.yaml should not exist")
	}

	matches, err := Glob("data/*.yaml")
	if err != nil {
		t.Fatalf("Glob error: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("Glob matched %d files, want 2", len(matches))
	}
}
