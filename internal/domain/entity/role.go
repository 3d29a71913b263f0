package entity

// Roles carried in access tokens.
const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
)
