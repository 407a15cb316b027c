package application

import "expvar"

// Counters published under /debug/vars.
var (
	tasksSubmitted  = expvar.NewInt("tasks_submitted")
	taskStatusSets  = expvar.NewInt("task_status_updates")
	loginsSucceeded = expvar.NewInt("logins_succeeded")
	loginsFailed    = expvar.NewInt("logins_failed")
)
