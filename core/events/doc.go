// Package events defines the pipeline events emitted on the event bus.
//
// Available event types:
//   - StepEvent: one step of the step graph finished
//   - GenerationEvent: a class group schedule was generated
//   - RunEvent: a whole run finished
package events
