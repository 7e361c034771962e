package memory

import (
	"context"
	"time"

	"github.com/baharkarakas/forohub/internal/models"
	"github.com/google/uuid"
)

type auditLogsRepo struct{ b binding }

func (r *auditLogsRepo) Create(ctx context.Context, l models.AuditLog) error {
	return r.b.with(ctx, func(st *state) error {
		if l.ID == "" {
			l.ID = uuid.NewString()
		}
		if l.CreatedAt.IsZero() {
			l.CreatedAt = time.Now().UTC()
		}
		st.audit = append(st.audit, l)
		return nil
	})
}

func (r *auditLogsRepo) ListByEntity(ctx context.Context, entityType, entityID string) ([]models.AuditLog, error) {
	var out []models.AuditLog
	err := r.b.with(ctx, func(st *state) error {
		for _, l := range st.audit {
			if l.EntityType == entityType && l.EntityID != nil && *l.EntityID == entityID {
				out = append(out, l)
			}
		}
		return nil
	})
	return out, err
}
