package constants

// Stage is the canonical name of a step in the intake pipeline.
type Stage string

// Stable values (logged verbatim for failure attribution).
const (
	StageReceived   Stage = "RECEIVED"   // attachment seen, content type checked
	StageDownloaded Stage = "DOWNLOADED" // payload fetched from the chat transport
	StageExtracted  Stage = "EXTRACTED"  // text pulled out of the document
	StageAnalyzed   Stage = "ANALYZED"   // structured record obtained from the model
	StagePersisted  Stage = "PERSISTED"  // row append attempted (failure is non-fatal)
	StageNotified   Stage = "NOTIFIED"   // terminal: user has both reply and save status
)
