package typeid

import (
	"strings"
	"testing"
)

func TestNewIDsCarryPrefix(t *testing.T) {
	tests := []struct {
		id     string
		prefix string
	}{
		{NewUserID(), PrefixUser},
		{NewStoryboardID(), PrefixStoryboard},
		{NewSnapshotID(), PrefixSnapshot},
		{NewObjectID(), PrefixObject},
		{NewActionID(), PrefixAction},
	}

	for _, tt := range tests {
		if !strings.HasPrefix(tt.id, tt.prefix+"_") {
			t.Errorf("id %q does not carry prefix %q", tt.id, tt.prefix)
		}
		if err := Validate(tt.id, tt.prefix); err != nil {
			t.Errorf("Validate(%q, %q): %v", tt.id, tt.prefix, err)
		}
	}
}

func TestValidateRejectsWrongPrefix(t *testing.T) {
	id := NewUserID()
	if err := Validate(id, PrefixStoryboard); err == nil {
		t.Errorf("Validate(%q, sb) should fail", id)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	if err := Validate("not a typeid", PrefixUser); err == nil {
		t.Error("expected error for malformed id")
	}
}
