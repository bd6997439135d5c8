package routers

import "strings"

// SessionState is the resolved outcome of one session probe. A probe that
// failed is Anonymous, never an error: access is only ever granted on a
// positive answer.
type SessionState int

const (
	SessionPending SessionState = iota
	SessionAnonymous
	SessionAuthenticated
)

type View int

const (
	ViewLoading View = iota
	ViewLanding
	ViewDashboard
	ViewAffiliate
	ViewNotFound
	ViewAdminLogin
	ViewAdminDashboard
	ViewAdminMasters
	ViewAdminChildren
	ViewAdminFinancial
	ViewAdminQrCode
	ViewAdminMaintenance
	ViewAdminNotFound
)

// ResolveView picks exactly one top-level view for a path given the two
// independent session states. Admin paths are evaluated first and never mix
// with user paths; the result is a pure function of its inputs, so no
// redirect loop is possible.
func ResolveView(path string, user, admin SessionState) View {
	if path == "/admin" || strings.HasPrefix(path, "/admin/") {
		switch admin {
		case SessionPending:
			return ViewLoading
		case SessionAnonymous:
			return ViewAdminLogin
		}
		switch path {
		case "/admin", "/admin/", "/admin/login", "/admin/dashboard":
			return ViewAdminDashboard
		case "/admin/masters":
			return ViewAdminMasters
		case "/admin/children":
			return ViewAdminChildren
		case "/admin/financial":
			return ViewAdminFinancial
		case "/admin/qrcode":
			return ViewAdminQrCode
		case "/admin/maintenance":
			return ViewAdminMaintenance
		}
		return ViewAdminNotFound
	}
	switch path {
	case "/":
		if user == SessionAuthenticated {
			return ViewDashboard
		}
		return ViewLanding
	case "/affiliate":
		if user == SessionAuthenticated {
			return ViewAffiliate
		}
		return ViewNotFound
	}
	return ViewNotFound
}
