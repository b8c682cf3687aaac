// Package logtail reads the end of trawl's log file.
//
// The TUI owns the terminal, so trawl logs to a file instead. `trawl log`
// uses Read to print the most recent lines, optionally only those at or
// above a level, without loading the whole file: a ring buffer of maxLines
// entries is filled while scanning and unrolled at the end.
//
// Levels are recognised from the level= field of logrus's text formatter.
// Lines without one, such as a stack trace, are always kept so a failure
// is not hidden by the filter.
package logtail
