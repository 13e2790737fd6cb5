package recalcqueue

// RecalculationJobArgs carries a recalculation run onto the job queue. The
// run log entry already exists (pending) by the time the job is inserted.
type RecalculationJobArgs struct {
	RunID  string `json:"run_id"`
	Reason string `json:"reason,omitempty"`
}

// Kind returns the job type identifier for River.
func (RecalculationJobArgs) Kind() string { return "recalculation" }
