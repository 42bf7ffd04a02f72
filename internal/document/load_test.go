package document

import (
	"path/filepath"
	"strings"
	"testing"
)

const yamlStoryboard = `
id: sb_demo
name: Demo
fps: 30
width: 800
height: 600
objects:
  - id: obj_a
    frames: {start: 1, end: 60}
    actions:
      - id: act_a
        curve:
          easing: easeInOut
          ramp: {from: 0, to: 1}
        transition:
          type: rotation
`

func TestLoadYAML(t *testing.T) {
	sb, err := Load([]byte(yamlStoryboard))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sb.ID != "sb_demo" || sb.FPS != 30 {
		t.Errorf("loaded %+v, want sb_demo at 30 fps", sb)
	}
	if len(sb.Objects) != 1 || len(sb.Objects[0].Actions) != 1 {
		t.Fatalf("object/action counts wrong: %+v", sb.Objects)
	}

	act := sb.Objects[0].Actions[0]
	if act.Curve.Easing != "easeInOut" || act.Curve.Ramp == nil {
		t.Errorf("curve spec = %+v", act.Curve)
	}
	if act.Transition == nil || act.Transition.Type != "rotation" {
		t.Errorf("transition spec = %+v", act.Transition)
	}
}

func TestLoadJSON(t *testing.T) {
	data := []byte(`{"id":"sb_j","name":"J","objects":[{"id":"obj_a","frames":{"start":1,"end":10}}]}`)
	sb, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sb.ID != "sb_j" {
		t.Errorf("ID = %q, want sb_j", sb.ID)
	}
	if sb.FPS != 24 {
		t.Errorf("FPS = %d, want the default 24", sb.FPS)
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	if _, err := Load([]byte("{not json")); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestLoadRejectsUnknownEasing(t *testing.T) {
	data := strings.Replace(yamlStoryboard, "easeInOut", "wobble", 1)
	_, err := Load([]byte(data))
	if err == nil {
		t.Fatal("expected error for an unknown easing name")
	}
	if !strings.Contains(err.Error(), "wobble") || !strings.Contains(err.Error(), "easeInOut") {
		t.Errorf("error should name the bad easing and list known ones, got: %v", err)
	}
}

func TestWriteAndLoadFile(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"sb.json", "sb.yaml"} {
		path := filepath.Join(dir, name)
		if err := WriteFile(NewSampleStoryboard(), path); err != nil {
			t.Fatalf("WriteFile(%s): %v", name, err)
		}

		sb, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile(%s): %v", name, err)
		}
		if sb.ID != "sb_sample" {
			t.Errorf("%s: ID = %q, want sb_sample", name, sb.ID)
		}
		if len(sb.Objects) != 3 {
			t.Errorf("%s: got %d objects, want 3", name, len(sb.Objects))
		}
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
