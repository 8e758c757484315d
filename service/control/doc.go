// Package control drives real worker processes through their lifecycle
// (start, suspend, resume, terminate) in lock-step with simulated time.
//
// Every control message is the current simulated time encoded as a 4-byte
// big-endian signed integer written to the worker's input.  The worker echoes
// the least significant byte of each message; a mismatch means simulated and
// real process state have diverged and is reported as ErrAckMismatch.  On
// termination the worker leaves a 64-byte digest on its output.
//
// The package only depends on the Handle and Spawner abstractions; see the
// local sub-package for OS processes and the memory sub-package for an
// in-process worker.
package control
