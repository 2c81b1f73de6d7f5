package domain

// PipelineMode selects which upstream source the extraction pipeline reads.
type PipelineMode string

const (
	PipelineModeDocuments PipelineMode = "documents"
	PipelineModeQuestions PipelineMode = "questions"
)

func (m PipelineMode) String() string { return string(m) }

func (m PipelineMode) IsValid() bool {
	switch m {
	case PipelineModeDocuments, PipelineModeQuestions:
		return true
	}
	return false
}

// MatchSource reports which term table produced a match result.
type MatchSource string

const (
	MatchSourceGlossary MatchSource = "glossary"
	MatchSourceFallback MatchSource = "fallback"
)

func (s MatchSource) String() string { return string(s) }

func (s MatchSource) IsValid() bool {
	switch s {
	case MatchSourceGlossary, MatchSourceFallback:
		return true
	}
	return false
}

// BatchOutcome is the result of one enrichment batch.
type BatchOutcome string

const (
	BatchOutcomeOK        BatchOutcome = "ok"
	BatchOutcomeEmpty     BatchOutcome = "empty"
	BatchOutcomeFailed    BatchOutcome = "failed"
	BatchOutcomeMalformed BatchOutcome = "malformed"
	BatchOutcomeDryRun    BatchOutcome = "dry_run"
)

func (o BatchOutcome) String() string { return string(o) }
