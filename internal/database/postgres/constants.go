package postgres

// Error Messages - Snapshot Operations
const (
	ErrMsgFailedToSaveSnapshots = "failed to save snapshots"
	ErrMsgFailedToGetLatest     = "failed to get latest snapshots"
	ErrMsgFailedToGetHistory    = "failed to get cell history"
	ErrMsgInvalidPlantedAt      = "invalid planted_at"
)
