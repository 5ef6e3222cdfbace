// Package activity runs one invocation of commitpulse from setup to scheduling.
//
// A run moves through a fixed sequence of states:
//
//	INIT -> CONFIGURED -> LOOPING(1..k) -> SCHEDULED -> DONE
//
// with ERROR reachable from any of them. Setup makes sure an author identity
// exists and the counter file is initialised. Each loop iteration applies one
// mutation action, commits and pushes, then sleeps before the next iteration
// (never after the last). The loop count, the delays and every other random
// choice come from injected policies, so tests drive the orchestrator with
// fixed values.
//
// Push and scheduling failures are reported by the collaborators themselves
// and never stop the run. Anything else moves the run to ERROR and is returned.
// Nothing is rolled back: commits already created or pushed stay.
package activity
