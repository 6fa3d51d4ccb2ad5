package ingestion

// Stage identifies how far a document progressed through the pipeline.
// Stages are strictly ordered; a document never moves backwards.
type Stage int

const (
	StageCreated Stage = iota
	StageNormalized
	StageSegmented
	StageTranscribed
	StageMerged
	StageCleaned
	StageChunked
	StagePersisted
	StageCleanedUp
)

var stageNames = map[Stage]string{
	StageCreated:     "created",
	StageNormalized:  "normalized",
	StageSegmented:   "segmented",
	StageTranscribed: "transcribed",
	StageMerged:      "merged",
	StageCleaned:     "cleaned",
	StageChunked:     "chunked",
	StagePersisted:   "persisted",
	StageCleanedUp:   "cleaned_up",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}
