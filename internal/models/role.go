package models

// Role is the closed set of session roles. It is resolved exactly once,
// at login, from the numeric profile id the API returns; every later
// visibility decision goes through the capability table instead of
// comparing strings ad hoc.
type Role string

const (
	// RoleAdmin manages users, reports and every ticket.
	RoleAdmin Role = "admin"
	// RoleTechnician works the global ticket queue.
	RoleTechnician Role = "tecnico"
	// RoleCollaborator opens tickets and follows their own.
	RoleCollaborator Role = "colaborador"
)

// RoleFromID maps the API profile id to a Role. Unknown ids resolve to
// collaborator, the least privileged role.
func RoleFromID(id int) Role {
	switch id {
	case 1:
		return RoleAdmin
	case 2:
		return RoleTechnician
	case 3:
		return RoleCollaborator
	default:
		return RoleCollaborator
	}
}

// ProfileID is the inverse of RoleFromID, used when editing users.
func (r Role) ProfileID() int {
	switch r {
	case RoleAdmin:
		return 1
	case RoleTechnician:
		return 2
	default:
		return 3
	}
}

// Label returns the role name shown on screens.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Administrador"
	case RoleTechnician:
		return "Técnico"
	default:
		return "Colaborador"
	}
}

// Capability names an action a screen may offer. Menu entries and
// buttons are shown only when the session role carries the capability.
type Capability int

const (
	// CapCreateTickets allows opening new tickets.
	CapCreateTickets Capability = iota
	// CapViewOwnTickets allows listing the session user's tickets.
	CapViewOwnTickets
	// CapManageAllTickets allows listing and browsing every ticket.
	CapManageAllTickets
	// CapUpdateStatus allows changing a ticket's status.
	CapUpdateStatus
	// CapAssignTickets allows assigning a ticket to a technician.
	CapAssignTickets
	// CapManageUsers allows listing, editing and deactivating users.
	CapManageUsers
	// CapViewReports allows the managerial report screen.
	CapViewReports
	// CapViewKnowledgeBase allows browsing knowledge-base articles.
	CapViewKnowledgeBase
)

var roleCapabilities = map[Role]map[Capability]bool{
	RoleAdmin: {
		CapCreateTickets:     true,
		CapViewOwnTickets:    true,
		CapManageAllTickets:  true,
		CapUpdateStatus:      true,
		CapAssignTickets:     true,
		CapManageUsers:       true,
		CapViewReports:       true,
		CapViewKnowledgeBase: true,
	},
	RoleTechnician: {
		CapCreateTickets:     true,
		CapViewOwnTickets:    true,
		CapManageAllTickets:  true,
		CapUpdateStatus:      true,
		CapViewKnowledgeBase: true,
	},
	RoleCollaborator: {
		CapCreateTickets:     true,
		CapViewOwnTickets:    true,
		CapViewKnowledgeBase: true,
	},
}

// Can reports whether the role carries the capability.
func (r Role) Can(c Capability) bool {
	return roleCapabilities[r][c]
}
