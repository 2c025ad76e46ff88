// Package dispatch implements the dispatch-planning workflow for field
// service assignments: intake of new work orders, technician lookup, plan
// assembly and plan commit.
//
// The workflow is a stateless pipeline of four idempotent operations driven
// by an external caller:
//
//  1. ListNewAssignments filters the work-order pool by status, recency,
//     priority, region and team.
//  2. AvailableTechnicians filters the technician pool by availability and
//     region.
//  3. CreatePlan joins caller-supplied (assignment, technician) pairs against
//     the two pools and returns a reviewable plan.
//  4. Commit finalises a reviewed plan into dispatch records with computed
//     arrival times.
//
// The service never computes assignment-technician pairings itself: pairing
// quality (skill match, ETA, distance, reasoning) is supplied by the caller.
// CreatePlan is a pure validation and enrichment join, and Commit is the only
// step with side effects.
//
// All components are decoupled via interfaces: repositories supply the pools,
// a MetricsSink records workflow events, an audit LogStore persists commit
// batches and a Notifier pushes records to technicians. Each dependency has a
// no-op default so the service can run with just the two repositories.
package dispatch
