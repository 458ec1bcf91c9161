package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/insightreel/internal/domain"
	"github.com/bnema/insightreel/internal/port"
)

const videoColumns = "id, title, original_filename, storage_path, status, full_transcript, words_json, owner_id, created_at"

func (s *Store) Save(ctx context.Context, v *domain.Video) error {
	wordsJSON, err := v.WordsJSON()
	if err != nil {
		return fmt.Errorf("encode words: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO videos (`+videoColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.Title, v.OriginalFilename, v.StoragePath, string(v.Status),
		v.FullTranscript, wordsJSON, v.OwnerID, formatTime(v.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert video: %w", err)
	}
	if v.Status == domain.VideoStatusCompleted {
		return s.indexTranscript(ctx, v)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*domain.Video, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+videoColumns+` FROM videos WHERE id = ?`, id)
	return scanVideo(row)
}

func (s *Store) GetOwned(ctx context.Context, id string, ownerID int64, admin bool) (*domain.Video, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+videoColumns+` FROM videos WHERE id = ? AND (owner_id = ? OR ?)`,
		id, ownerID, admin)
	return scanVideo(row)
}

func (s *Store) List(ctx context.Context, ownerID int64, admin bool) ([]*domain.Video, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+videoColumns+` FROM videos
		 WHERE owner_id = ? OR ?
		 ORDER BY created_at DESC`,
		ownerID, admin)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	defer rows.Close() //nolint:errcheck
	return scanVideos(rows)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM videos_fts WHERE video_id = ?`, id); err != nil {
		return fmt.Errorf("delete video index: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM videos WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete video: %w", err)
	}
	return nil
}

func (s *Store) UpdateResult(ctx context.Context, v *domain.Video) error {
	wordsJSON, err := v.WordsJSON()
	if err != nil {
		return fmt.Errorf("encode words: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE videos SET status = ?, full_transcript = ?, words_json = ?, title = ? WHERE id = ?`,
		string(v.Status), v.FullTranscript, wordsJSON, v.Title, v.ID)
	if err != nil {
		return fmt.Errorf("update video result: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	if v.Status == domain.VideoStatusCompleted {
		return s.indexTranscript(ctx, v)
	}
	return nil
}

// indexTranscript makes a completed transcript searchable. Only
// completed videos are indexed; failure and disabled explanations stay
// out of search results.
func (s *Store) indexTranscript(ctx context.Context, v *domain.Video) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM videos_fts WHERE video_id = ?`, v.ID); err != nil {
		return fmt.Errorf("reindex transcript: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO videos_fts (video_id, full_transcript) VALUES (?, ?)`,
		v.ID, v.FullTranscript); err != nil {
		return fmt.Errorf("index transcript: %w", err)
	}
	return nil
}

func (s *Store) SearchCompleted(ctx context.Context, query string, ownerID int64, admin bool) ([]*domain.Video, error) {
	match := ftsQuote(query)
	if match == "" {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT v.id, v.title, v.original_filename, v.storage_path, v.status,
		        v.full_transcript, v.words_json, v.owner_id, v.created_at
		 FROM videos_fts
		 JOIN videos v ON v.id = videos_fts.video_id
		 WHERE videos_fts MATCH ?
		   AND v.status = 'completed'
		   AND (v.owner_id = ? OR ?)
		 ORDER BY bm25(videos_fts)`,
		match, ownerID, admin)
	if err != nil {
		return nil, fmt.Errorf("search videos: %w", err)
	}
	defer rows.Close() //nolint:errcheck
	return scanVideos(rows)
}

// ftsQuote turns free-form user input into a safe FTS5 match
// expression: each term is double-quoted so query syntax characters
// are treated literally.
func ftsQuote(query string) string {
	fields := strings.Fields(query)
	quoted := make([]string, 0, len(fields))
	for _, f := range fields {
		quoted = append(quoted, `"`+strings.ReplaceAll(f, `"`, `""`)+`"`)
	}
	return strings.Join(quoted, " ")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVideo(row rowScanner) (*domain.Video, error) {
	var v domain.Video
	var status, wordsJSON, createdAt string
	err := row.Scan(&v.ID, &v.Title, &v.OriginalFilename, &v.StoragePath,
		&status, &v.FullTranscript, &wordsJSON, &v.OwnerID, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan video: %w", err)
	}
	v.Status = domain.VideoStatus(status)
	v.CreatedAt = parseTime(createdAt)
	words, err := domain.ParseWordsJSON(wordsJSON)
	if err != nil {
		return nil, fmt.Errorf("decode words for %s: %w", v.ID, err)
	}
	v.Words = words
	return &v, nil
}

func scanVideos(rows *sql.Rows) ([]*domain.Video, error) {
	var videos []*domain.Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

var _ port.VideoStore = (*Store)(nil)
