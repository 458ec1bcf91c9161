package domain

import (
	"encoding/json"
	"strings"
	"time"
)

type VideoStatus string

const (
	VideoStatusProcessing VideoStatus = "processing"
	VideoStatusCompleted  VideoStatus = "completed"
	VideoStatusFailed     VideoStatus = "failed"
	VideoStatusDisabled   VideoStatus = "disabled"
)

// WordTiming is a single transcript word with its offsets in seconds
// within the media. StartSec <= EndSec always holds for parser and
// engine output.
type WordTiming struct {
	Word     string  `json:"word"`
	StartSec float64 `json:"start"`
	EndSec   float64 `json:"end"`
}

// Video is one ingestion-and-transcription unit of work tied to one
// media origin. The origin is immutable after creation: reprocessing is
// not supported, only deletion and resubmission.
//
// FullTranscript is the authoritative display text when Status is
// completed. For failed and disabled videos it carries a human-readable
// explanation instead, so consumers must treat non-completed statuses
// as diagnostic text.
type Video struct {
	ID               string       `json:"id"`
	Title            string       `json:"title"`
	OriginalFilename string       `json:"original_filename"`
	StoragePath      string       `json:"storage_path"`
	Status           VideoStatus  `json:"status"`
	FullTranscript   string       `json:"full_transcript"`
	Words            []WordTiming `json:"transcript_words"`
	OwnerID          int64        `json:"owner"`
	CreatedAt        time.Time    `json:"created_at"`
}

func NewVideo(title, originalFilename, storagePath string, ownerID int64) *Video {
	return &Video{
		ID:               generateID(),
		Title:            title,
		OriginalFilename: originalFilename,
		StoragePath:      storagePath,
		Status:           VideoStatusProcessing,
		OwnerID:          ownerID,
		CreatedAt:        time.Now(),
	}
}

// IsRemoteURL reports whether the origin is an external URL rather than
// an object-storage key. Remote origins have no blob to delete and are
// played back directly from the source.
func (v *Video) IsRemoteURL() bool {
	return strings.HasPrefix(v.StoragePath, "http://") ||
		strings.HasPrefix(v.StoragePath, "https://")
}

func (v *Video) MarkCompleted(transcript string, words []WordTiming) {
	v.Status = VideoStatusCompleted
	v.FullTranscript = transcript
	v.Words = words
}

func (v *Video) MarkFailed(message string) {
	v.Status = VideoStatusFailed
	v.FullTranscript = message
	v.Words = nil
}

func (v *Video) MarkDisabled(message string) {
	v.Status = VideoStatusDisabled
	v.FullTranscript = message
	v.Words = nil
}

// IsTerminal reports whether the status machine has reached its final
// state. Terminal videos are never mutated again.
func (v *Video) IsTerminal() bool {
	return v.Status != VideoStatusProcessing
}

func (v *Video) WordsJSON() (string, error) {
	if len(v.Words) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(v.Words)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func ParseWordsJSON(raw string) ([]WordTiming, error) {
	if raw == "" || raw == "[]" {
		return nil, nil
	}
	var words []WordTiming
	if err := json.Unmarshal([]byte(raw), &words); err != nil {
		return nil, err
	}
	return words, nil
}
