package typeid

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixUser       = "user"
	PrefixStoryboard = "sb"
	PrefixSnapshot   = "snap"
	PrefixObject     = "obj"
	PrefixAction     = "act"
)

func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

func NewUserID() string       { return New(PrefixUser) }
func NewStoryboardID() string { return New(PrefixStoryboard) }
func NewSnapshotID() string   { return New(PrefixSnapshot) }
func NewObjectID() string     { return New(PrefixObject) }
func NewActionID() string     { return New(PrefixAction) }

func Validate(id, expectedPrefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid typeid %q: %w", id, err)
	}
	if parsed.Prefix() != expectedPrefix {
		return fmt.Errorf("expected prefix %q but got %q in id %q", expectedPrefix, parsed.Prefix(), id)
	}
	return nil
}
