package domain

import "math"

// Progress returns the completion percentage of a project, rounded to the
// nearest integer. A project with no tasks is 0% complete.
func Progress(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}
