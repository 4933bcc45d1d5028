package exporter

// ProgressEvent export progress for UI display
type ProgressEvent struct {
	Percent int    `json:"percent"`
	Stage   string `json:"stage"`
	Rows    int    `json:"rows"` // rows written so far
}

// progressReporter counts written rows against the expected total
type progressReporter struct {
	fn    func(ProgressEvent)
	total int
	done  int
}

func newProgressReporter(fn func(ProgressEvent), total int) *progressReporter {
	return &progressReporter{fn: fn, total: total}
}

// row records one written row.
func (p *progressReporter) row(stage string) {
	p.done++
	p.emit(stage)
}

// finish reports 100% regardless of the count.
func (p *progressReporter) finish() {
	if p.fn == nil {
		return
	}
	p.fn(ProgressEvent{Percent: 100, Stage: "done", Rows: p.done})
}

func (p *progressReporter) emit(stage string) {
	if p.fn == nil {
		return
	}
	pct := 100
	if p.total > 0 {
		pct = p.done * 100 / p.total
	}
	if pct > 100 {
		pct = 100
	}
	p.fn(ProgressEvent{Percent: pct, Stage: stage, Rows: p.done})
}
