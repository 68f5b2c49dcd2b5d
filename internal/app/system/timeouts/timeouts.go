// Package timeouts provides centralized timeout values for handler
// operations, used with context.WithTimeout around data-store calls.
//
// Guidelines for choosing a timeout:
//   - Ping: health checks and connectivity verification
//   - Short: simple single-document reads or lookups
//   - Medium: list queries, moderate writes, multi-step reads
//   - Long: aggregations and operations touching multiple collections
package timeouts

import "time"

const (
	ping   = 2 * time.Second
	short  = 5 * time.Second
	medium = 10 * time.Second
	long   = 30 * time.Second
)

func Ping() time.Duration   { return ping }
func Short() time.Duration  { return short }
func Medium() time.Duration { return medium }
func Long() time.Duration   { return long }
