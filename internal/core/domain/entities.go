package domain

// Role represents user role in the system. The set is closed: a user holds
// exactly one role, fixed at registration.
type Role string

const (
	RoleStudent         Role = "student"
	RoleAffiliator      Role = "affiliator"
	RoleSuperAffiliator Role = "super-affiliator"
	RoleCounsellor      Role = "counsellor"
)

// ParseRole maps a stored role string to a Role
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleAffiliator, RoleSuperAffiliator, RoleCounsellor:
		return Role(s), nil
	}
	return "", ErrUnknownRole
}

// Capability represents an operation a role may perform
type Capability string

const (
	CapManageLeads    Capability = "manage_leads"
	CapApprovePayouts Capability = "approve_payouts"
	CapRequestPayout  Capability = "request_payout"
	CapViewOwnLeads   Capability = "view_own_leads"
	CapReportIssue    Capability = "report_issue"
)

// roleCapabilities is the single authority on role-based access.
// Handlers check capabilities here instead of comparing role strings.
var roleCapabilities = map[Role]map[Capability]bool{
	RoleStudent: {},
	RoleAffiliator: {
		CapRequestPayout: true,
		CapViewOwnLeads:  true,
		CapReportIssue:   true,
	},
	RoleSuperAffiliator: {
		CapRequestPayout: true,
		CapReportIssue:   true,
	},
	RoleCounsellor: {
		CapManageLeads:    true,
		CapApprovePayouts: true,
	},
}

// Can reports whether the role holds the given capability
func (r Role) Can(c Capability) bool {
	return roleCapabilities[r][c]
}

// LeadStatus represents a lead's position in the admission pipeline
type LeadStatus string

const (
	LeadUntouched  LeadStatus = "untouched"
	LeadProcessing LeadStatus = "processing"
	LeadAdmitted   LeadStatus = "admitted"
)

// ParseLeadStatus validates a lead status string. Anything outside the
// three known values is rejected.
func ParseLeadStatus(s string) (LeadStatus, error) {
	switch LeadStatus(s) {
	case LeadUntouched, LeadProcessing, LeadAdmitted:
		return LeadStatus(s), nil
	}
	return "", ErrInvalidLeadStatus
}

// PayoutStatus represents a payout request's lifecycle state
type PayoutStatus string

const (
	PayoutPending  PayoutStatus = "pending"
	PayoutApproved PayoutStatus = "approved"
	PayoutRejected PayoutStatus = "rejected"
)

// ReportTopic classifies issue reports filed by partners
type ReportTopic string

const (
	TopicUntouchedLeads ReportTopic = "untouched_leads"
	TopicPayoutIssue    ReportTopic = "payout_issue"
	TopicTechnicalIssue ReportTopic = "technical_issue"
	TopicOther          ReportTopic = "other"
)

// ParseReportTopic validates a report topic string
func ParseReportTopic(s string) (ReportTopic, error) {
	switch ReportTopic(s) {
	case TopicUntouchedLeads, TopicPayoutIssue, TopicTechnicalIssue, TopicOther:
		return ReportTopic(s), nil
	}
	return "", ErrInvalidReportTopic
}
