package types

import "github.com/google/uuid"

type (
	RequestID string
	RunID     string
)

func NewRequestID() RequestID {
	return RequestID(uuid.NewString())
}

func NewRunID() RunID {
	return RunID(uuid.NewString())
}

func (x RunID) String() string { return string(x) }

type (
	GoogleProjectID string
	BQDatasetID     string
	BQTableID       string
)

func (x GoogleProjectID) String() string { return string(x) }
func (x BQDatasetID) String() string     { return string(x) }
func (x BQTableID) String() string       { return string(x) }
