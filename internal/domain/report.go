package domain

import (
	"encoding/json"
	"time"
)

// Envelope is the result of one invocation: a success report or a failure
type Envelope interface {
	Succeeded() bool
}

// TranscriptMetadata accompanies a successful transcript report
type TranscriptMetadata struct {
	ExtractedAt        time.Time `json:"extracted_at"`
	Duration           float64   `json:"duration"`
	WordCount          int       `json:"word_count"`
	AvailableLanguages []string  `json:"available_languages"`
	IsTranslatable     bool      `json:"is_translatable"`
	Errors             []string  `json:"errors"`
}

// SuccessReport is the envelope for a resolved video transcript
type SuccessReport struct {
	VideoID       string              `json:"video_id"`
	Language      string              `json:"language"`
	IsGenerated   bool                `json:"is_generated"`
	Transcript    []NormalizedSegment `json:"transcript"`
	RawTranscript []RawSegment        `json:"raw_transcript"`
	Metadata      TranscriptMetadata  `json:"metadata"`
}

func (r *SuccessReport) Succeeded() bool { return true }

// RawSegments returns the transcript as fetched, before normalization
func (r *SuccessReport) RawSegments() []RawSegment { return r.RawTranscript }

// ToSRT renders the raw transcript as an SRT document
func (r *SuccessReport) ToSRT() (string, error) { return RenderSRT(r.RawTranscript) }

func (r *SuccessReport) MarshalJSON() ([]byte, error) {
	type plain SuccessReport
	return json.Marshal(struct {
		Success bool `json:"success"`
		*plain
	}{true, (*plain)(r)})
}

// FailureReport is the envelope emitted whenever the pipeline fails
type FailureReport struct {
	VideoID   string `json:"video_id,omitempty"`
	Error     string `json:"error"`
	ErrorType Kind   `json:"error_type"`
}

func (r *FailureReport) Succeeded() bool { return false }

func (r *FailureReport) MarshalJSON() ([]byte, error) {
	type plain FailureReport
	return json.Marshal(struct {
		Success bool `json:"success"`
		*plain
	}{false, (*plain)(r)})
}

// SpeechSegment is one recognized segment in a speech report
type SpeechSegment struct {
	Text      string  `json:"text"`
	Start     float64 `json:"start"`
	Duration  float64 `json:"duration"`
	StartTime string  `json:"start_time"`
}

// SpeechMetadata accompanies a successful speech report
type SpeechMetadata struct {
	ProcessedAt time.Time `json:"processed_at"`
	Model       string    `json:"model"`
	ModelSize   string    `json:"model_size"`
}

// SpeechReport is the envelope for an audio transcription
type SpeechReport struct {
	Text     string          `json:"text"`
	Segments []SpeechSegment `json:"segments"`
	Language string          `json:"language"`
	Duration float64         `json:"duration"`
	Metadata SpeechMetadata  `json:"metadata"`
}

func (r *SpeechReport) Succeeded() bool { return true }

// RawSegments converts the recognized segments back to the caption schema
func (r *SpeechReport) RawSegments() []RawSegment {
	out := make([]RawSegment, 0, len(r.Segments))
	for _, seg := range r.Segments {
		out = append(out, RawSegment{Text: seg.Text, Start: seg.Start, Duration: seg.Duration})
	}
	return out
}

// ToSRT renders the recognized segments as an SRT document
func (r *SpeechReport) ToSRT() (string, error) { return RenderSRT(r.RawSegments()) }

func (r *SpeechReport) MarshalJSON() ([]byte, error) {
	type plain SpeechReport
	return json.Marshal(struct {
		Success bool `json:"success"`
		*plain
	}{true, (*plain)(r)})
}
