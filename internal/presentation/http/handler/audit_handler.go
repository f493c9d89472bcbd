package handler

import (
	"github.com/aquaflow/sachet-api/internal/application/service"
	"github.com/aquaflow/sachet-api/internal/domain/repository"
	"github.com/aquaflow/sachet-api/internal/presentation/http/dto/response"
	"github.com/aquaflow/sachet-api/pkg/pagination"
	"github.com/gin-gonic/gin"
)

// AuditHandler exposes the audit trail to admins
type AuditHandler struct {
	auditService *service.AuditService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// List returns audit entries newest first, optionally for one entity.
// @Summary List Audit Logs
// @Tags audit
// @Security BearerAuth
// @Param entityType query string false "Entity type, e.g. settlement"
// @Param entityId query string false "Entity ID"
// @Param page query int false "Page number"
// @Param perPage query int false "Items per page"
// @Success 200 {object} response.APIResponse
// @Router /audit-logs [get]
func (h *AuditHandler) List(c *gin.Context) {
	entityID, ok := queryUUID(c, "entityId")
	if !ok {
		return
	}
	params := pagination.FromQuery(c.Query("page"), c.Query("perPage"))

	result, err := h.auditService.List(c.Request.Context(), repository.AuditLogFilter{
		EntityType: c.Query("entityType"),
		EntityID:   entityID,
	}, params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, "", result)
}
