// Package lanes provides bounded-concurrency execution lanes for external
// calls. Each lane owns a fixed-capacity worker pool; jobs beyond the
// lane's ceiling wait in FIFO order. Submission never blocks the caller,
// and a failing job never affects its siblings.
package lanes
