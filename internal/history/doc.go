// Package history projects the persisted press and shake logs into display
// rows.
//
// All press rows come first in stored order, followed by all shake rows in
// stored order. The two groups are concatenated, never merged by timestamp.
// Malformed log tokens are left out of the rows and reported in
// Projection.Issues.
package history
