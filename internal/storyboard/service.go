// Package storyboard stores authored storyboards and runs the server-side
// resolution pass over them.
package storyboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/framecraft/framecraft/internal/db"
	"github.com/framecraft/framecraft/internal/document"
	"github.com/framecraft/framecraft/internal/engine"
	"github.com/framecraft/framecraft/internal/timeline"
	"github.com/framecraft/framecraft/internal/typeid"
)

var (
	ErrNotFound  = errors.New("storyboard not found")
	ErrForbidden = errors.New("forbidden")
)

type Service struct {
	queries *db.Queries
}

func NewService(queries *db.Queries) *Service {
	return &Service{queries: queries}
}

type Storyboard struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	OwnerID   string `json:"ownerId"`
	FPS       int    `json:"fps"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func (s *Service) Create(ctx context.Context, name, ownerID string) (*Storyboard, error) {
	storyboardID := typeid.NewStoryboardID()

	dbSB, err := s.queries.CreateStoryboard(ctx, db.CreateStoryboardParams{
		ID:      storyboardID,
		Name:    name,
		OwnerID: ownerID,
		FPS:     24,
		Width:   1280,
		Height:  720,
	})
	if err != nil {
		return nil, fmt.Errorf("create storyboard: %w", err)
	}

	// Seed an empty document snapshot.
	doc := &document.Storyboard{
		ID:     storyboardID,
		Name:   name,
		FPS:    24,
		Width:  1280,
		Height: 720,
	}
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal empty document: %w", err)
	}

	_, err = s.queries.CreateSnapshot(ctx, db.CreateSnapshotParams{
		ID:           typeid.NewSnapshotID(),
		StoryboardID: storyboardID,
		Version:      1,
		Document:     docJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("create initial snapshot: %w", err)
	}

	return dbStoryboardToStoryboard(dbSB), nil
}

func (s *Service) Get(ctx context.Context, storyboardID, userID string) (*Storyboard, error) {
	dbSB, err := s.getOwned(ctx, storyboardID, userID)
	if err != nil {
		return nil, err
	}
	return dbStoryboardToStoryboard(dbSB), nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Storyboard, error) {
	dbSBs, err := s.queries.ListStoryboardsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list storyboards: %w", err)
	}

	out := make([]Storyboard, len(dbSBs))
	for i, sb := range dbSBs {
		out[i] = *dbStoryboardToStoryboard(sb)
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, storyboardID, userID string) error {
	if _, err := s.getOwned(ctx, storyboardID, userID); err != nil {
		return err
	}
	return s.queries.DeleteStoryboard(ctx, storyboardID)
}

func (s *Service) GetLatestSnapshot(ctx context.Context, storyboardID, userID string) (json.RawMessage, error) {
	if _, err := s.getOwned(ctx, storyboardID, userID); err != nil {
		return nil, err
	}

	snap, err := s.queries.GetLatestSnapshot(ctx, storyboardID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}

	return snap.Document, nil
}

func (s *Service) SaveSnapshot(ctx context.Context, storyboardID, userID string, doc *document.Storyboard) error {
	if _, err := s.getOwned(ctx, storyboardID, userID); err != nil {
		return err
	}

	docJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	nextVersion := int32(1)
	current, err := s.queries.GetLatestSnapshot(ctx, storyboardID)
	if err == nil {
		nextVersion = current.Version + 1
	}

	_, err = s.queries.CreateSnapshot(ctx, db.CreateSnapshotParams{
		ID:           typeid.NewSnapshotID(),
		StoryboardID: storyboardID,
		Version:      nextVersion,
		Document:     docJSON,
	})
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}

	return nil
}

// ResolvedObject is one object's resolved frame range and those of its
// actions, in declaration order.
type ResolvedObject struct {
	ID      string              `json:"id"`
	Frames  timeline.FrameRange `json:"frames"`
	Actions []ResolvedAction    `json:"actions,omitempty"`
}

type ResolvedAction struct {
	ID     string              `json:"id"`
	Frames timeline.FrameRange `json:"frames"`
}

// Diagnostic is a structured, author-facing warning.
type Diagnostic struct {
	Type    string      `json:"type"`
	Message string      `json:"message"`
	Detail  interface{} `json:"detail,omitempty"`
}

// ResolveResult is the output of a server-side resolution pass.
type ResolveResult struct {
	StoryboardID string               `json:"storyboardId"`
	FPS          int                  `json:"fps"`
	FrameSpan    *timeline.FrameRange `json:"frameSpan,omitempty"`
	Objects      []ResolvedObject     `json:"objects"`
	Warnings     []Diagnostic         `json:"warnings"`
}

// Resolve loads the latest snapshot, runs the frame-range resolution pass,
// and reports every resolved range together with all accumulated warnings.
// Warnings never fail the call; the missing-range precondition does.
func (s *Service) Resolve(ctx context.Context, storyboardID, userID string) (*ResolveResult, error) {
	raw, err := s.GetLatestSnapshot(ctx, storyboardID, userID)
	if err != nil {
		return nil, err
	}

	doc, err := document.Load(raw)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	scene, err := engine.Build(doc)
	if err != nil {
		return nil, err
	}

	result := &ResolveResult{
		StoryboardID: storyboardID,
		FPS:          scene.FPS,
		Warnings:     Diagnostics(scene.Warnings),
	}
	if span, ok := scene.FrameSpan(); ok {
		result.FrameSpan = &span
	}

	for _, obj := range scene.Objects {
		ro := ResolvedObject{ID: obj.ID, Frames: *obj.FrameRange()}
		for _, act := range obj.Actions {
			ro.Actions = append(ro.Actions, ResolvedAction{ID: act.ID, Frames: *act.FrameRange()})
		}
		result.Objects = append(result.Objects, ro)
	}

	return result, nil
}

// Diagnostics converts core warnings to their wire form.
func Diagnostics(warnings []timeline.Warning) []Diagnostic {
	out := make([]Diagnostic, 0, len(warnings))
	for _, w := range warnings {
		d := Diagnostic{Message: w.Warning(), Detail: w}
		switch w.(type) {
		case timeline.OutOfParentRangeWarning:
			d.Type = "outOfParentRange"
		case engine.AnimationDomainWarning:
			d.Type = "animationDomain"
		default:
			d.Type = "warning"
		}
		out = append(out, d)
	}
	return out
}

func (s *Service) getOwned(ctx context.Context, storyboardID, userID string) (db.Storyboard, error) {
	dbSB, err := s.queries.GetStoryboard(ctx, storyboardID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return db.Storyboard{}, ErrNotFound
		}
		return db.Storyboard{}, fmt.Errorf("get storyboard: %w", err)
	}

	if dbSB.OwnerID != userID {
		return db.Storyboard{}, ErrForbidden
	}

	return dbSB, nil
}

func dbStoryboardToStoryboard(sb db.Storyboard) *Storyboard {
	return &Storyboard{
		ID:        sb.ID,
		Name:      sb.Name,
		OwnerID:   sb.OwnerID,
		FPS:       int(sb.FPS),
		Width:     int(sb.Width),
		Height:    int(sb.Height),
		CreatedAt: sb.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: sb.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
