package models

// UserRole - papel do voluntário, vem como claim do token emitido pelo
// provedor de autenticação hospedado. Não guardamos usuários localmente.
type UserRole string

const (
	RoleViewer UserRole = "viewer"
	RoleEditor UserRole = "editor"
	RoleAdmin  UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleViewer, RoleEditor, RoleAdmin:
		return true
	}
	return false
}
