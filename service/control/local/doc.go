// Package local spawns worker processes on the local host.  Each worker is
// started as "<path> <name>" with its standard input and output connected to
// the control pipes; lifecycle signals and waits use the unix system calls
// directly so stopped workers are observed as well as exited ones.
package local
