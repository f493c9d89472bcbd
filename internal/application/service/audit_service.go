package service

import (
	"context"
	"log"
	"time"

	"github.com/aquaflow/sachet-api/internal/domain/entity"
	"github.com/aquaflow/sachet-api/internal/domain/enum"
	"github.com/aquaflow/sachet-api/internal/domain/repository"
	"github.com/aquaflow/sachet-api/pkg/pagination"
	"github.com/google/uuid"
)

// Audited entity types.
const (
	AuditEntitySale              = "sale"
	AuditEntityExpense           = "expense"
	AuditEntityReceptionistSale  = "receptionist_sale"
	AuditEntitySettlement        = "settlement"
	AuditEntitySettlementPayment = "settlement_payment"
)

// FieldChange is one tracked field whose value changed.
type FieldChange struct {
	Field    string
	OldValue string
	NewValue string
}

// Changes collects FieldChanges, skipping fields whose value is unchanged.
type Changes []FieldChange

// Track records field when old and new differ.
func (c *Changes) Track(field, oldValue, newValue string) {
	if oldValue != newValue {
		*c = append(*c, FieldChange{Field: field, OldValue: oldValue, NewValue: newValue})
	}
}

// AuditService appends audit log entries. Writing an entry never fails the
// operation being audited.
type AuditService struct {
	auditRepo repository.AuditLogRepository
}

// NewAuditService creates a new audit service
func NewAuditService(auditRepo repository.AuditLogRepository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

// Record writes one entry without a field.
func (s *AuditService) Record(ctx context.Context, entityType string, entityID uuid.UUID, action enum.AuditAction, by uuid.UUID, reason *string) {
	s.write(ctx, &entity.AuditLog{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		ChangedBy:  by,
		Reason:     reason,
	})
}

// RecordChanges writes one update entry per changed field.
func (s *AuditService) RecordChanges(ctx context.Context, entityType string, entityID uuid.UUID, changes Changes, by uuid.UUID, reason *string) {
	now := time.Now().UTC()
	for _, c := range changes {
		field, oldValue, newValue := c.Field, c.OldValue, c.NewValue
		s.write(ctx, &entity.AuditLog{
			EntityType: entityType,
			EntityID:   entityID,
			Action:     enum.AuditActionUpdate,
			Field:      &field,
			OldValue:   &oldValue,
			NewValue:   &newValue,
			ChangedBy:  by,
			ChangedAt:  now,
			Reason:     reason,
		})
	}
}

func (s *AuditService) write(ctx context.Context, entry *entity.AuditLog) {
	if s == nil || s.auditRepo == nil {
		return
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("audit %s %s %s: %v", entry.Action, entry.EntityType, entry.EntityID, err)
	}
}

// List returns audit entries, newest first.
func (s *AuditService) List(ctx context.Context, filter repository.AuditLogFilter, params *pagination.Params) (*pagination.Result[entity.AuditLog], error) {
	logs, total, err := s.auditRepo.List(ctx, filter, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewResult(logs, params, total), nil
}
