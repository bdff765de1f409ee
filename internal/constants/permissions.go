package constants

// Permission strings for route-level authorization.
const (
	CreateProperty  = "create_property"
	EditProperty    = "edit_property"
	DeleteProperty  = "delete_property"
	RespondInquiry  = "respond_inquiry"
	ApproveReview   = "approve_review"
	ManageUsers     = "manage_users"
	RunSeed         = "run_seed"
	ViewAgentData   = "view_agent_data"
)
