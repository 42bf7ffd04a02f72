package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Queries is the typed query layer over the pool. Schema:
//
//	users(id, email, password_hash, handle, created_at)
//	storyboards(id, name, owner_id, fps, width, height, created_at, updated_at)
//	snapshots(id, storyboard_id, version, document, created_at)
type Queries struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Queries {
	return &Queries{pool: pool}
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Handle       string
	CreatedAt    time.Time
}

type Storyboard struct {
	ID        string
	Name      string
	OwnerID   string
	FPS       int32
	Width     int32
	Height    int32
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Snapshot struct {
	ID           string
	StoryboardID string
	Version      int32
	Document     []byte
	CreatedAt    time.Time
}

type CreateUserParams struct {
	ID           string
	Email        string
	PasswordHash string
	Handle       string
}

func (q *Queries) CreateUser(ctx context.Context, p CreateUserParams) (User, error) {
	row := q.pool.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash, handle)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, password_hash, handle, created_at`,
		p.ID, p.Email, p.PasswordHash, p.Handle)

	var u User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Handle, &u.CreatedAt)
	return u, err
}

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, handle, created_at
		FROM users WHERE email = $1`, email)

	var u User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Handle, &u.CreatedAt)
	return u, err
}

func (q *Queries) GetUserByID(ctx context.Context, id string) (User, error) {
	row := q.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, handle, created_at
		FROM users WHERE id = $1`, id)

	var u User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Handle, &u.CreatedAt)
	return u, err
}

type CreateStoryboardParams struct {
	ID      string
	Name    string
	OwnerID string
	FPS     int32
	Width   int32
	Height  int32
}

func (q *Queries) CreateStoryboard(ctx context.Context, p CreateStoryboardParams) (Storyboard, error) {
	row := q.pool.QueryRow(ctx, `
		INSERT INTO storyboards (id, name, owner_id, fps, width, height)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, owner_id, fps, width, height, created_at, updated_at`,
		p.ID, p.Name, p.OwnerID, p.FPS, p.Width, p.Height)

	var s Storyboard
	err := row.Scan(&s.ID, &s.Name, &s.OwnerID, &s.FPS, &s.Width, &s.Height, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (q *Queries) GetStoryboard(ctx context.Context, id string) (Storyboard, error) {
	row := q.pool.QueryRow(ctx, `
		SELECT id, name, owner_id, fps, width, height, created_at, updated_at
		FROM storyboards WHERE id = $1`, id)

	var s Storyboard
	err := row.Scan(&s.ID, &s.Name, &s.OwnerID, &s.FPS, &s.Width, &s.Height, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (q *Queries) ListStoryboardsForUser(ctx context.Context, ownerID string) ([]Storyboard, error) {
	rows, err := q.pool.Query(ctx, `
		SELECT id, name, owner_id, fps, width, height, created_at, updated_at
		FROM storyboards WHERE owner_id = $1
		ORDER BY updated_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Storyboard
	for rows.Next() {
		var s Storyboard
		if err := rows.Scan(&s.ID, &s.Name, &s.OwnerID, &s.FPS, &s.Width, &s.Height, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (q *Queries) DeleteStoryboard(ctx context.Context, id string) error {
	_, err := q.pool.Exec(ctx, `DELETE FROM storyboards WHERE id = $1`, id)
	return err
}

type CreateSnapshotParams struct {
	ID           string
	StoryboardID string
	Version      int32
	Document     []byte
}

func (q *Queries) CreateSnapshot(ctx context.Context, p CreateSnapshotParams) (Snapshot, error) {
	row := q.pool.QueryRow(ctx, `
		INSERT INTO snapshots (id, storyboard_id, version, document)
		VALUES ($1, $2, $3, $4)
		RETURNING id, storyboard_id, version, document, created_at`,
		p.ID, p.StoryboardID, p.Version, p.Document)

	var s Snapshot
	err := row.Scan(&s.ID, &s.StoryboardID, &s.Version, &s.Document, &s.CreatedAt)
	return s, err
}

func (q *Queries) GetLatestSnapshot(ctx context.Context, storyboardID string) (Snapshot, error) {
	row := q.pool.QueryRow(ctx, `
		SELECT id, storyboard_id, version, document, created_at
		FROM snapshots WHERE storyboard_id = $1
		ORDER BY version DESC LIMIT 1`, storyboardID)

	var s Snapshot
	err := row.Scan(&s.ID, &s.StoryboardID, &s.Version, &s.Document, &s.CreatedAt)
	return s, err
}
