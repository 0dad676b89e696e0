package entity

// Roles que viajan en el token. Los usuarios se administran fuera de este servicio.
const (
	RoleAdmin      = "admin"
	RoleQuality    = "calidad"
	RoleProduction = "produccion"
	RoleAuditor    = "auditor"
)

// TraceabilityRoles roles autorizados a consultar el reporte de trazabilidad.
var TraceabilityRoles = []string{RoleAdmin, RoleQuality, RoleProduction, RoleAuditor}
