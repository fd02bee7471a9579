package models

// Роли пользователей
const (
	RoleBrand   = "brand"
	RoleCreator = "creator"
)

// CampaignStatus константы статусов кампаний
const (
	CampaignStatusDraft     = "draft"
	CampaignStatusActive    = "active"
	CampaignStatusCompleted = "completed"
	CampaignStatusCancelled = "cancelled"
)

// OfferStatus константы статусов офферов
const (
	OfferStatusPending   = "pending"
	OfferStatusAccepted  = "accepted"
	OfferStatusRejected  = "rejected"
	OfferStatusCountered = "countered"
)

// PaymentStatus константы статусов платежей
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// Подписи статусов, которые показываются в интерфейсе.
const (
	ContractLabelFullyExecuted     = "Fully Executed"
	ContractLabelPendingBrand      = "Pending Brand Signature"
	ContractLabelPendingCreator    = "Pending Creator Signature"
	ContractLabelPendingSignatures = "Pending Signatures"
	PaymentLabelPaid               = "Paid"
	PaymentLabelOverdue            = "Overdue"
	PaymentLabelDueSoon            = "Due Soon"
	PaymentLabelPending            = "Pending"
)

// События, которые рассылаются через WebSocket.
const (
	EventOfferNew        = "offers.new"
	EventOfferUpdated    = "offers.updated"
	EventContractCreated = "contracts.created"
	EventContractSigned  = "contracts.signed"
	EventPaymentPaid     = "payments.paid"
)

// ValidRoles список допустимых ролей
var ValidRoles = map[string]struct{}{
	RoleBrand:   {},
	RoleCreator: {},
}

// ValidCampaignStatuses список валидных статусов кампаний
var ValidCampaignStatuses = map[string]struct{}{
	CampaignStatusDraft:     {},
	CampaignStatusActive:    {},
	CampaignStatusCompleted: {},
	CampaignStatusCancelled: {},
}

// ValidOfferStatuses список валидных статусов офферов
var ValidOfferStatuses = map[string]struct{}{
	OfferStatusPending:   {},
	OfferStatusAccepted:  {},
	OfferStatusRejected:  {},
	OfferStatusCountered: {},
}

// ValidPaymentStatuses список валидных статусов платежей
var ValidPaymentStatuses = map[string]struct{}{
	PaymentStatusPending: {},
	PaymentStatusPaid:    {},
	PaymentStatusFailed:  {},
}

func inSet(set map[string]struct{}, value string) bool {
	_, ok := set[value]
	return ok
}

// IsValidRole проверяет, что роль допустима.
func IsValidRole(role string) bool { return inSet(ValidRoles, role) }

// IsValidCampaignStatus проверяет статус кампании.
func IsValidCampaignStatus(status string) bool { return inSet(ValidCampaignStatuses, status) }

// IsValidOfferStatus проверяет статус оффера.
func IsValidOfferStatus(status string) bool { return inSet(ValidOfferStatuses, status) }

// IsValidPaymentStatus проверяет статус платежа.
func IsValidPaymentStatus(status string) bool { return inSet(ValidPaymentStatuses, status) }
