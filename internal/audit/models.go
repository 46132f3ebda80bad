package audit

import "time"

// Action identifies an auditable event type.
type Action string

const (
	ActionLoginSucceeded    Action = "login_succeeded"
	ActionLoginFailed       Action = "login_failed"
	ActionLogout            Action = "logout"
	ActionCompanyRegistered Action = "company_registered"
	ActionCompanyReplaced   Action = "company_replaced"
	ActionSubmissionSaved   Action = "submission_saved"
	ActionReportGenerated   Action = "report_generated"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so sinks can fan out.
type Event struct {
	Timestamp   time.Time `json:"timestamp"`
	Action      Action    `json:"action"`
	InspectorID string    `json:"inspector_id,omitempty"`
	CompanyRUC  string    `json:"company_ruc,omitempty"`
	Device      string    `json:"device,omitempty"`
	Detail      string    `json:"detail,omitempty"`
}
