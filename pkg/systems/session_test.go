package systems

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/matheo-lm/xs-arcade/pkg/components"
	"github.com/matheo-lm/xs-arcade/pkg/config"
	"gopkg.in/yaml.v3"
)

func newTestSession(t *testing.T) (*Session, *recordingAudio, *recordingListener) {
	t.Helper()
	audio := &recordingAudio{}
	listener := &recordingListener{}
	session, err := NewSession(Options{
		Tiers:          loadTestTiers(t),
		Tuning:         config.DefaultPhysicsTuning(),
		DropCooldownMs: 520,
		BoardWidth:     480,
		BoardHeight:    720,
		Random:         fixedRandom(0.5),
		Audio:          audio,
		Listener:       listener,
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return session, audio, listener
}

func TestSession_Snapshot(t *testing.T) {
	session, _, _ := newTestSession(t)

	snap := session.Snapshot()
	if snap.CoordinateSystem != CoordinateSystemNote {
		t.Errorf("coordinate note = %q", snap.CoordinateSystem)
	}
	if snap.Mode != components.RunModePlaying || snap.EndReason != components.EndReasonNone {
		t.Errorf("mode=%v reason=%q", snap.Mode, snap.EndReason)
	}
	if snap.NextTier != "lemon" {
		t.Errorf("next tier = %q, want lemon", snap.NextTier)
	}
	if snap.Launcher.X != 240 || snap.Launcher.Y != 98-32 {
		t.Errorf("launcher = (%v, %v), want (240, 66)", snap.Launcher.X, snap.Launcher.Y)
	}
	if snap.Launcher.CooldownMsRemaining != 0 || snap.Launcher.CooldownRatio != 1 || snap.Launcher.QueuedDrop {
		t.Errorf("launcher cooldown = %+v", snap.Launcher)
	}
	if snap.Overflow.LineY != 98 || snap.Overflow.SpawnExemptTicks != 18 {
		t.Errorf("overflow = %+v", snap.Overflow)
	}
	if len(snap.Bodies) != 0 {
		t.Errorf("bodies = %d, want 0", len(snap.Bodies))
	}

	session.RequestDrop()
	session.RequestDrop()
	snap = session.Snapshot()
	if len(snap.Bodies) != 1 || snap.Drops != 1 {
		t.Fatalf("bodies=%d drops=%d, want 1 and 1", len(snap.Bodies), snap.Drops)
	}
	body := snap.Bodies[0]
	if body.Tier != "lemon" || body.TierIndex != 1 || body.Radius != 23 || body.Y != 68 {
		t.Errorf("body = %+v", body)
	}
	if snap.Launcher.CooldownMsRemaining != 520 || !snap.Launcher.QueuedDrop {
		t.Errorf("launcher after drop = %+v", snap.Launcher)
	}
}

func TestSession_SnapshotEncoding(t *testing.T) {
	session, _, _ := newTestSession(t)
	session.RequestDrop()
	session.AdvanceBy(100)

	out, err := yaml.Marshal(session.Snapshot())
	if err != nil {
		t.Fatalf("yaml.Marshal: %v", err)
	}
	for _, want := range []string{"mode: playing", "nextTier: lemon", "tier: lemon", "lineY: 98"} {
		if !strings.Contains(string(out), want) {
			t.Errorf("yaml snapshot missing %q:\n%s", want, out)
		}
	}

	js, err := json.Marshal(session.Snapshot())
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	if !strings.Contains(string(js), `"mode":"playing"`) {
		t.Errorf("json snapshot missing mode: %s", js)
	}
}

func TestSession_Commands(t *testing.T) {
	session, audio, listener := newTestSession(t)

	session.SetHorizontalTarget(100)
	session.NudgeTarget(26)
	if x := session.Snapshot().Launcher.X; x != 126 {
		t.Errorf("launcher x = %v, want 126", x)
	}

	session.SetMuted(true)
	if !audio.muted || !session.Muted() || !session.Snapshot().Muted {
		t.Error("SetMuted(true) should reach the audio sink")
	}

	if got := session.RequestDrop(); got != DropResultDropped {
		t.Fatalf("RequestDrop = %v", got)
	}
	session.AdvanceBy(200)
	if session.Snapshot().Tick != 12 {
		t.Errorf("tick = %d, want 12", session.Snapshot().Tick)
	}

	// 外部步进模式下按帧推进暂停
	if !session.Stepping() {
		t.Error("AdvanceBy should enter stepping mode")
	}
	now := time.Unix(5000, 0)
	session.Frame(now)
	if got := session.Frame(now.Add(50 * time.Millisecond)); got != 0 {
		t.Errorf("Frame after AdvanceBy = %d, want 0", got)
	}

	session.ResumeFrames()
	if session.Stepping() {
		t.Error("ResumeFrames should leave stepping mode")
	}
	resumed := now.Add(time.Second)
	if got := session.Frame(resumed); got != 0 {
		t.Errorf("first Frame after resume = %d, want 0", got)
	}
	if got := session.Frame(resumed.Add(40 * time.Millisecond)); got != 2 {
		t.Errorf("Frame after resume = %d, want 2", got)
	}

	session.Reset()
	snap := session.Snapshot()
	if snap.Tick != 0 || len(snap.Bodies) != 0 || snap.Score != 0 {
		t.Errorf("after reset: %+v", snap)
	}
	if len(listener.scores) == 0 || listener.scores[len(listener.scores)-1] != 0 {
		t.Errorf("reset should report score 0, got %v", listener.scores)
	}
}
