package runner

import "github.com/warpack/warpack/internal/core/domain"

// GetTaskStatusMap returns a copy of the current task status map for tests.
func (r *Runner) GetTaskStatusMap() map[domain.InternedString]TaskStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	statuses := make(map[domain.InternedString]TaskStatus, len(r.taskStatus))
	for name, status := range r.taskStatus {
		statuses[name] = status
	}
	return statuses
}
