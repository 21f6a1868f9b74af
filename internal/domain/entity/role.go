package entity

// Role tipo de usuario. Los valores coinciden con el campo "tipo" de la API.
type Role string

// Roles válidos para User.
const (
	RoleAdministrator Role = "administrador"
	RoleEmployee      Role = "funcionario"
)

// Capability acción o vista protegida por rol.
type Capability int

const (
	// CapManageUsers administrar cuentas de usuario (/usuarios).
	CapManageUsers Capability = iota + 1
	// CapViewReports consultar y generar reportes (/relatorios).
	CapViewReports
	// CapViewAllMovements ver movimientos de todos los usuarios, no solo los propios.
	CapViewAllMovements
	// CapViewUserStats ver el total de usuarios en el dashboard.
	CapViewUserStats
)

var roleCapabilities = map[Role][]Capability{
	RoleAdministrator: {CapManageUsers, CapViewReports, CapViewAllMovements, CapViewUserStats},
	RoleEmployee:      {},
}

// ParseRole convierte el valor del cable en Role. Un valor desconocido devuelve el rol vacío y false.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	if _, ok := roleCapabilities[r]; !ok {
		return "", false
	}
	return r, true
}

// Valid indica si el rol pertenece a la enumeración cerrada.
func (r Role) Valid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

// Can verifica si el rol posee la capacidad.
func (r Role) Can(c Capability) bool {
	for _, have := range roleCapabilities[r] {
		if have == c {
			return true
		}
	}
	return false
}

func (r Role) String() string { return string(r) }
