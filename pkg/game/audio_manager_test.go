package game

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/decker502/fruitcut/pkg/types"
)

func TestSynthesizeToneLength(t *testing.T) {
	for id, spec := range toneTable {
		data := synthesizeTone(spec, AudioSampleRate)
		wantSamples := int(float64(AudioSampleRate) * spec.DurationMs / 1000)
		if len(data) != wantSamples*4 {
			t.Errorf("%s: got %d bytes, want %d", id, len(data), wantSamples*4)
		}
	}
}

func TestSynthesizeToneStereoAndFadeOut(t *testing.T) {
	data := synthesizeTone(toneTable[SoundSlice], AudioSampleRate)

	for i := 0; i+4 <= len(data); i += 4 {
		l := binary.LittleEndian.Uint16(data[i:])
		r := binary.LittleEndian.Uint16(data[i+2:])
		if l != r {
			t.Fatalf("frame %d: left %d != right %d", i/4, l, r)
		}
	}

	last := int16(binary.LittleEndian.Uint16(data[len(data)-4:]))
	if last > 200 || last < -200 {
		t.Errorf("last sample should fade to near zero, got %d", last)
	}
}

func TestSynthesizeToneDeterministic(t *testing.T) {
	a := synthesizeTone(toneTable[SoundBomb], AudioSampleRate)
	b := synthesizeTone(toneTable[SoundBomb], AudioSampleRate)
	if !bytes.Equal(a, b) {
		t.Error("same spec should synthesize identical data")
	}
}

func TestSynthesizeToneZeroDuration(t *testing.T) {
	if data := synthesizeTone(toneSpec{StartHz: 440, EndHz: 440}, AudioSampleRate); data != nil {
		t.Errorf("zero duration should produce nil, got %d bytes", len(data))
	}
}

// TestAudioManagerWithoutContext 没有音频上下文时所有播放调用都安全返回 false
func TestAudioManagerWithoutContext(t *testing.T) {
	am := NewAudioManager(nil, nil)

	if am.PlaySound(SoundSlice) {
		t.Error("PlaySound without context should return false")
	}
	if am.PlayCut(types.FruitBomb) {
		t.Error("PlayCut without context should return false")
	}
	if got := am.GetSoundVolume(); got != 0.8 {
		t.Errorf("default volume: got %v, want 0.8", got)
	}
}

func TestAudioManagerRespectsSettings(t *testing.T) {
	sm, _ := NewSettingsManager(nil)
	am := NewAudioManager(nil, sm)

	am.SetSoundVolume(0.25)
	if got := sm.GetSettings().SoundVolume; got != 0.25 {
		t.Errorf("settings volume: got %v, want 0.25", got)
	}

	sm.SetSoundEnabled(false)
	if am.soundEnabled() {
		t.Error("soundEnabled should follow settings")
	}
}
