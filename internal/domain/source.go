package domain

// Origin tells how a transcript was obtained
type Origin string

const (
	OriginManual     Origin = "manual"
	OriginGenerated  Origin = "generated"
	OriginTranslated Origin = "translated"
)

// TranscriptSource describes one candidate transcript of a video
type TranscriptSource struct {
	LanguageCode   string `json:"language_code"`
	IsGenerated    bool   `json:"is_generated"`
	IsTranslatable bool   `json:"is_translatable"`
	Origin         Origin `json:"origin"`
}

// ResolutionOutcome is what the resolver settled on for one video.
// Chosen is nil only when no transcript could be fetched or translated.
type ResolutionOutcome struct {
	Chosen             *TranscriptSource
	RawSegments        []RawSegment
	Diagnostics        []string
	AvailableLanguages []string
}
