package repository

import (
    "context"
    "database/sql"
    "log"
)

// AuditRepo appends rows to the append-only audit log.  Recording is
// best-effort by contract: Record never returns an error to the
// caller, it logs the failure and moves on, so a broken audit table
// can never fail a business operation.
type AuditRepo struct {
    db *sql.DB
}

// NewAuditRepo returns a new AuditRepo bound to the given database.
func NewAuditRepo(db *sql.DB) *AuditRepo { return &AuditRepo{db: db} }

// Record appends one audit row.  entityID and actorID may be zero
// when the action is global (e.g. settings updates).
func (r *AuditRepo) Record(ctx context.Context, action, entityType string, entityID uint64, detail string) {
    r.RecordActor(ctx, action, entityType, entityID, detail, "", 0)
}

// RecordActor is Record with explicit actor attribution.
func (r *AuditRepo) RecordActor(ctx context.Context, action, entityType string, entityID uint64, detail, actorRole string, actorID uint64) {
    const q = `INSERT INTO audit_log (action, entity_type, entity_id, detail, actor_role, actor_id)
               VALUES (?, ?, ?, ?, ?, ?)`
    var eid, aid interface{}
    if entityID != 0 {
        eid = entityID
    }
    if actorID != 0 {
        aid = actorID
    }
    if _, err := r.db.ExecContext(ctx, q, action, entityType, eid, detail, actorRole, aid); err != nil {
        log.Printf("[AUDIT] record failed (%s %s %d): %v", action, entityType, entityID, err)
    }
}
