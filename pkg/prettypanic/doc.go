// Package prettypanic replaces Go's panic dump with a short, operator-facing
// crash report, or with a handler of your own.
//
// Go has no process-wide panic hook, so every goroutine that should be
// covered arms the dispatcher at its top, either by deferring [RecoverAs] or
// by starting through [Go] / [Run]:
//
//	func main() {
//		prettypanic.Install() // default report, exit status 101
//		prettypanic.Run("main", realMain)
//	}
//
//	func realMain() {
//		prettypanic.Go("worker-1", work)
//		...
//	}
//
// The installed handler receives a [FaultInfo] and must never return: it
// exits the process, blocks forever (see [Hang]) or calls runtime.Goexit.
// A handler that does return is treated as a broken contract and the process
// exits with [AbortCode].
//
// Only one handler is active at a time. [Install] replaces the previous one
// atomically and the new handler applies to every fault dispatched afterwards.
// Before the first Install the dispatcher re-panics with the original value,
// so the process still dies through Go's own crash output with exit status 2.
// That output is not byte-for-byte what an unarmed goroutine would print: the
// panic is marked as recovered and re-panicked, and the goroutine trace is
// taken from inside the dispatcher rather than at the original panic site.
//
// Fatal runtime errors that are not panics (concurrent map writes, deadlock,
// out of memory) cannot be intercepted and still print Go's own dump.
package prettypanic
