package domain

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Role
		wantErr bool
	}{
		{"student", "student", RoleStudent, false},
		{"affiliator", "affiliator", RoleAffiliator, false},
		{"super affiliator", "super-affiliator", RoleSuperAffiliator, false},
		{"counsellor", "counsellor", RoleCounsellor, false},
		{"unknown", "admin", "", true},
		{"empty", "", "", true},
		{"wrong case", "Affiliator", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRole(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRole(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseRole(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRoleCapabilities(t *testing.T) {
	tests := []struct {
		name string
		role Role
		cap  Capability
		want bool
	}{
		{"affiliator can request payout", RoleAffiliator, CapRequestPayout, true},
		{"affiliator can view own leads", RoleAffiliator, CapViewOwnLeads, true},
		{"affiliator can report issue", RoleAffiliator, CapReportIssue, true},
		{"affiliator cannot manage leads", RoleAffiliator, CapManageLeads, false},
		{"affiliator cannot approve payouts", RoleAffiliator, CapApprovePayouts, false},
		{"super affiliator can request payout", RoleSuperAffiliator, CapRequestPayout, true},
		{"super affiliator cannot view own leads", RoleSuperAffiliator, CapViewOwnLeads, false},
		{"counsellor can manage leads", RoleCounsellor, CapManageLeads, true},
		{"counsellor can approve payouts", RoleCounsellor, CapApprovePayouts, true},
		{"counsellor cannot request payout", RoleCounsellor, CapRequestPayout, false},
		{"student has no capabilities", RoleStudent, CapReportIssue, false},
		{"unknown role has no capabilities", Role("admin"), CapManageLeads, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.role.Can(tt.cap); got != tt.want {
				t.Errorf("%s.Can(%s) = %v, want %v", tt.role, tt.cap, got, tt.want)
			}
		})
	}
}

func TestParseLeadStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    LeadStatus
		wantErr bool
	}{
		{"untouched", LeadUntouched, false},
		{"processing", LeadProcessing, false},
		{"admitted", LeadAdmitted, false},
		{"rejected", "", true},
		{"Admitted", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLeadStatus(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLeadStatus(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLeadStatus(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseReportTopic(t *testing.T) {
	tests := []struct {
		input   string
		want    ReportTopic
		wantErr bool
	}{
		{"untouched_leads", TopicUntouchedLeads, false},
		{"payout_issue", TopicPayoutIssue, false},
		{"technical_issue", TopicTechnicalIssue, false},
		{"other", TopicOther, false},
		{"spam", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseReportTopic(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseReportTopic(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseReportTopic(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
