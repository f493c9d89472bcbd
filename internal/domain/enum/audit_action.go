package enum

type AuditAction string

const (
	AuditActionCreate  AuditAction = "create"
	AuditActionUpdate  AuditAction = "update"
	AuditActionDelete  AuditAction = "delete"
	AuditActionPayment AuditAction = "payment"
	AuditActionSubmit  AuditAction = "submit"
)
