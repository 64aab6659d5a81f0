package inline

import "errors"

var (
	// ErrLocationUnresolved means the call site could not be mapped to a
	// file and line.
	ErrLocationUnresolved = errors.New("inline: call site unresolved")

	// ErrTemplateNotFound means the source file holding the template could
	// not be opened or read.
	ErrTemplateNotFound = errors.New("inline: template source not found")

	// ErrSourceUnavailable means the source file could not be stat'd.
	ErrSourceUnavailable = errors.New("inline: template source unavailable")

	// ErrInvalidLocals is returned for locals that are neither a map nor a
	// Binding.
	ErrInvalidLocals = errors.New("inline: invalid locals")

	// ErrNoWorker means a view was rendered without a worker cache.
	ErrNoWorker = errors.New("inline: view has no worker cache")

	// ErrPoolClosed is returned by Acquire after Pool.Close.
	ErrPoolClosed = errors.New("inline: pool closed")

	// ErrNotCheckedOut is returned by Release for a cache the pool did not
	// hand out, or one already released.
	ErrNotCheckedOut = errors.New("inline: cache not checked out")
)
