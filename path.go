package dailylog

import "path/filepath"

// DefaultSuffix is the file extension used when none is configured.
const DefaultSuffix = "log"

// BuildPath returns the path of the log file for date:
// <directory>/<prefix>_r<YYYY>-<MM>-<DD>.log.
// It performs no I/O.
func BuildPath(directory, prefix string, date Date) string {
	return buildPath(directory, prefix, DefaultSuffix, date)
}

func buildPath(directory, prefix, suffix string, date Date) string {
	return filepath.Join(directory, prefix+"_r"+date.String()+"."+suffix)
}
