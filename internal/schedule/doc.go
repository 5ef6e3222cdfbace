// Package schedule registers the next run of commitpulse with the host's
// persistent task scheduler.
//
// The scheduler capability is modelled as a Registrar with two variants,
// selected once at startup by NewRegistrar:
//
//   - SchtasksRegistrar: Windows Task Scheduler via schtasks.exe. Registration
//     uses /f, so any earlier task with the same name is replaced.
//   - NoticeRegistrar: every other platform. Nothing is registered; the
//     Scheduler prints how to set the job up by hand.
//
// Scheduler.ScheduleNext never returns an error. A refused registration is
// reported as a warning and the run completes normally.
package schedule
