package models

import "testing"

func TestRoleFromID(t *testing.T) {
	cases := []struct {
		id   int
		want Role
	}{
		{1, RoleAdmin},
		{2, RoleTechnician},
		{3, RoleCollaborator},
		{0, RoleCollaborator},
		{99, RoleCollaborator},
	}
	for _, tc := range cases {
		if got := RoleFromID(tc.id); got != tc.want {
			t.Fatalf("RoleFromID(%d) = %q, want %q", tc.id, got, tc.want)
		}
	}
}

func TestCollaboratorNeverSeesAdminActions(t *testing.T) {
	collaborator := RoleFromID(3)

	if collaborator.Can(CapManageUsers) {
		t.Fatalf("collaborator must not manage users")
	}
	if collaborator.Can(CapViewReports) {
		t.Fatalf("collaborator must not view reports")
	}
	if collaborator.Can(CapAssignTickets) || collaborator.Can(CapUpdateStatus) {
		t.Fatalf("collaborator must not mutate tickets")
	}
	if !collaborator.Can(CapCreateTickets) || !collaborator.Can(CapViewOwnTickets) {
		t.Fatalf("collaborator lost its own base capabilities")
	}
}

func TestAdminSeesAllActions(t *testing.T) {
	admin := RoleFromID(1)
	all := []Capability{
		CapCreateTickets, CapViewOwnTickets, CapManageAllTickets,
		CapUpdateStatus, CapAssignTickets, CapManageUsers,
		CapViewReports, CapViewKnowledgeBase,
	}
	for _, capability := range all {
		if !admin.Can(capability) {
			t.Fatalf("admin missing capability %d", capability)
		}
	}
}

func TestTechnicianScope(t *testing.T) {
	technician := RoleFromID(2)
	if !technician.Can(CapManageAllTickets) || !technician.Can(CapUpdateStatus) {
		t.Fatalf("technician must work the global queue")
	}
	if technician.Can(CapManageUsers) || technician.Can(CapViewReports) {
		t.Fatalf("technician must not see admin-only actions")
	}
}

func TestRoleProfileIDRoundTrip(t *testing.T) {
	for _, id := range []int{1, 2, 3} {
		if got := RoleFromID(id).ProfileID(); got != id {
			t.Fatalf("ProfileID round trip for %d = %d", id, got)
		}
	}
}
