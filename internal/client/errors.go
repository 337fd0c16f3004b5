package client

import "errors"

var (
	errNotInitialized     = errors.New("settings not found, run `planner-sync init` first")
	errNothingToUpdate    = errors.New("nothing to update, pass at least one flag")
	errDeleteNotConfirmed = errors.New("refusing to delete server data without --yes")
	errOperationFailed    = errors.New("operation failed")
)
