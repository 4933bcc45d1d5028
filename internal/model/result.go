package model

// SequenceEntry one position in the output sequence
type SequenceEntry struct {
	Seq       int    `json:"Seq"`
	BookingID string `json:"Booking_ID"`
	Reason    string `json:"reason,omitempty"`
}

// Result pipeline output handed to the JSON/xlsx/CLI collaborators
type Result struct {
	Sequence      []SequenceEntry `json:"sequence"`
	Warnings      []string        `json:"warnings"`
	RowRange      string          `json:"rowRange,omitempty"`
	WindowLetters []string        `json:"windowLetters,omitempty"`
}

// EmptyResult a result with no sequence and the given warnings.
func EmptyResult(warnings ...string) Result {
	if warnings == nil {
		warnings = []string{}
	}
	return Result{
		Sequence: []SequenceEntry{},
		Warnings: warnings,
	}
}

// RunSummary persisted summary of one processed upload
type RunSummary struct {
	ID            string `json:"id"`
	Filename      string `json:"filename"`
	FileHash      string `json:"fileHash"`
	RecordCount   int    `json:"recordCount"`
	SequenceCount int    `json:"sequenceCount"`
	WarningCount  int    `json:"warningCount"`
	CreatedAt     string `json:"createdAt"`
}
