package domain

// ItemError is one failed item in a batch operation.
type ItemError struct {
	ID     int64  `json:"id,omitempty"`
	Detail string `json:"detail"`
}

// BatchResult reports partial-failure semantics for batch operations: each
// item is attempted independently and one failure never blocks the rest.
type BatchResult struct {
	Succeeded int         `json:"succeeded"`
	Failed    []ItemError `json:"failed,omitempty"`
}

func (r *BatchResult) Success() {
	r.Succeeded++
}

func (r *BatchResult) Failure(id int64, err error) {
	r.Failed = append(r.Failed, ItemError{ID: id, Detail: err.Error()})
}
