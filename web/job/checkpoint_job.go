// Package job contains the scheduled maintenance jobs of the web server.
package job

import (
	"market/database"
	"market/logger"
	"market/util/common"
)

// CheckpointJob flushes the SQLite write-ahead log back into the main
// database file so the WAL does not grow without bound.
type CheckpointJob struct{}

func NewCheckpointJob() *CheckpointJob {
	return new(CheckpointJob)
}

func (j *CheckpointJob) Run() {
	// A panicking job must not take down the scheduler goroutine.
	defer common.Recover("checkpoint job")

	if err := database.Checkpoint(); err != nil {
		logger.Warning("wal checkpoint err:", err)
		return
	}
	logger.Debug("wal checkpoint done")
}
