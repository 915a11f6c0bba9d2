package model

import "time"

// AuditEntry is one append-only audit log row.  Recording is
// best-effort: failures are logged and never propagated to fail the
// business operation that triggered them.
//
// Fields:
//  ID         – primary key identifier.
//  Action     – action kind, e.g. "BOOKING_CREATED".
//  EntityType – entity kind, e.g. "BOOKING", "EVENT", "SETTINGS".
//  EntityID   – affected entity, nil for global actions.
//  Detail     – free-text summary.
//  ActorRole  – role of the actor, when known.
//  ActorID    – id of the actor, when known.
//  CreatedAt  – creation timestamp.
type AuditEntry struct {
    ID         uint64    // audit_log.id
    Action     string    // audit_log.action
    EntityType string    // audit_log.entity_type
    EntityID   *uint64   // audit_log.entity_id (nullable)
    Detail     string    // audit_log.detail
    ActorRole  string    // audit_log.actor_role
    ActorID    *uint64   // audit_log.actor_id (nullable)
    CreatedAt  time.Time // audit_log.created_at
}
