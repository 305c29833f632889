// Package progress renders download progress in the terminal.
package progress

import "github.com/postsaver/postsaver/core/materialize"

var _ materialize.ProgressTracker = (*Bar)(nil)
