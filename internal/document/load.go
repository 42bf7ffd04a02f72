package document

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/framecraft/framecraft/internal/curve"
)

// Load parses a storyboard from JSON or YAML. JSON is detected by a leading
// '{'; everything else is treated as YAML, which storyboard files on disk
// usually are.
func Load(data []byte) (*Storyboard, error) {
	var sb Storyboard

	trimmed := strings.TrimLeft(string(data), " \t\r\n")
	if strings.HasPrefix(trimmed, "{") {
		if err := json.Unmarshal(data, &sb); err != nil {
			return nil, fmt.Errorf("parse storyboard JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &sb); err != nil {
			return nil, fmt.Errorf("parse storyboard YAML: %w", err)
		}
	}

	return finish(&sb)
}

// LoadFile reads and parses a storyboard file by extension (.json, .yaml,
// .yml).
func LoadFile(path string) (*Storyboard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read storyboard: %w", err)
	}

	var sb Storyboard
	switch filepath.Ext(path) {
	case ".json":
		if err := json.Unmarshal(data, &sb); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &sb); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return Load(data)
	}

	return finish(&sb)
}

// finish applies defaults and rejects easing names the curve layer does not
// register, so a typo surfaces at load time instead of deep inside a build.
func finish(sb *Storyboard) (*Storyboard, error) {
	if sb.FPS <= 0 {
		sb.FPS = 24
	}

	for i, obj := range sb.Objects {
		for j, act := range obj.Actions {
			if act.Curve.Easing == "" {
				continue
			}
			if _, err := curve.EasingByName(act.Curve.Easing); err != nil {
				return nil, fmt.Errorf("object %d action %d: %w (known easings: %s)",
					i, j, err, strings.Join(curve.EasingNames(), ", "))
			}
		}
	}

	return sb, nil
}

// WriteFile serializes a storyboard to path, choosing the format by
// extension. Used by the offline resolver to normalize authored files.
func WriteFile(sb *Storyboard, path string) error {
	var data []byte
	var err error

	switch filepath.Ext(path) {
	case ".json":
		data, err = json.MarshalIndent(sb, "", "  ")
	default:
		data, err = yaml.Marshal(sb)
	}
	if err != nil {
		return fmt.Errorf("marshal storyboard: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}
