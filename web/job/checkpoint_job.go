package job

import (
	"postboard/database"
	"postboard/logger"
)

// CheckpointJob folds the SQLite write-ahead log back into the main
// database file so it does not grow unbounded between restarts.
type CheckpointJob struct{}

func NewCheckpointJob() *CheckpointJob {
	return new(CheckpointJob)
}

func (j *CheckpointJob) Run() {
	if !database.IsSQLite() {
		return
	}
	if err := database.Checkpoint(); err != nil {
		logger.Warning("checkpoint job err:", err)
	}
}
