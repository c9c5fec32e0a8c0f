package domain

// Role defines the platform roles along the wool supply chain.
type Role string

const (
	RoleFarmer           Role = "FARMER"
	RoleMillOperator     Role = "MILL_OPERATOR"
	RoleQualityInspector Role = "QUALITY_INSPECTOR"
	RoleBuyer            Role = "BUYER"
	RoleAdmin            Role = "ADMIN"
)

// ValidRoles enumerates the roles accepted at registration and role assignment.
var ValidRoles = map[Role]bool{
	RoleFarmer:           true,
	RoleMillOperator:     true,
	RoleQualityInspector: true,
	RoleBuyer:            true,
	RoleAdmin:            true,
}

// Capability is a named permission string gating one action.
type Capability string

const (
	CapCreateBatch             Capability = "create_batch"
	CapSellWool                Capability = "sell_wool"
	CapUpdateBatchStage        Capability = "update_batch_stage"
	CapAddProcessingLogs       Capability = "add_processing_logs"
	CapApproveBatch            Capability = "approve_batch"
	CapRejectBatch             Capability = "reject_batch"
	CapCreateQualityInspection Capability = "create_quality_inspection"
	CapViewQualityResults      Capability = "view_quality_results"
	CapViewQualityAnalytics    Capability = "view_quality_analytics"
	CapViewQualityLogs         Capability = "view_quality_logs"
	CapAccessMonitoring        Capability = "access_monitoring_dashboard"
	CapViewMarketplace         Capability = "view_marketplace"
	CapViewProducts            Capability = "view_products"
	CapBuyWool                 Capability = "buy_wool"
	CapViewOrderHistory        Capability = "view_order_history"
	CapManageUsers             Capability = "manage_users"
)

// WoolType keys the base-price table in the pricing package.
type WoolType string

const (
	WoolFineMerino WoolType = "Fine Merino"
	WoolMerino     WoolType = "Merino"
	WoolCorriedale WoolType = "Corriedale"
	WoolCrossbred  WoolType = "Crossbred"
	WoolLincoln    WoolType = "Lincoln"
)

// Stage is a batch's position in the linear processing pipeline.
type Stage string

const (
	StageReceived Stage = "Received"
	StageCleaning Stage = "Cleaning"
	StageCarding  Stage = "Carding"
	StageSpinning Stage = "Spinning"
	StageFinished Stage = "Finished"
)

// ValidStages enumerates the stages accepted on a stage transition.
var ValidStages = map[Stage]bool{
	StageReceived: true,
	StageCleaning: true,
	StageCarding:  true,
	StageSpinning: true,
	StageFinished: true,
}

// QualityStatus is the inspection state of a batch.
type QualityStatus string

const (
	QualityPending  QualityStatus = "Pending"
	QualityApproved QualityStatus = "Approved"
	QualityRejected QualityStatus = "Rejected"
)

// Decision is the inspector's verdict on a quality report.
type Decision string

const (
	DecisionApproved Decision = "Approved"
	DecisionRejected Decision = "Rejected"
)

// OrderStatus is the lifecycle state of a marketplace order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderCompleted OrderStatus = "Completed"
	OrderShipped   OrderStatus = "Shipped"
	OrderDelivered OrderStatus = "Delivered"
)

// PaymentStatus tracks payment settlement on an order.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
	PaymentFailed  PaymentStatus = "Failed"
)
