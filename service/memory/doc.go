// Package memory simulates a fixed-size address space shared by the processes
// of a run.  It is the only component allowed to create, split or merge
// memory blocks; processes merely keep the BlockID they were handed.
//
// Blocks live in an index-addressed arena and form an address-ordered, doubly
// linked chain that always partitions [0, total) and never holds two adjacent
// free blocks.
package memory
