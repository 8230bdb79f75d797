package ports

// RollMetrics records roll-service outcomes for the ops snapshot.
type RollMetrics interface {
	RecordRoll(command string)
	RecordRejected()
	RecordFailure()
}
