// Package runtime interprets compiled skill trees.
//
// A cast walks the tree depth-first from the trigger, threading one candidate
// set through it. Targets replace the set, conditions and filters narrow it,
// mechanics apply effects to it. A node whose set ends up empty fails and its
// children never run. Gate failures are results, not errors.
package runtime
