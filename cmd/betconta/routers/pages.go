package routers

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

// The page shells are deliberately thin: each view is the same layout with a
// different title and heading, enough for the gate decision to be visible and
// testable. The dashboards themselves talk to the JSON API.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head><meta charset="utf-8"><title>{{.Title}} — BetConta</title></head>
<body data-view="{{.View}}">
<h1>{{.Heading}}</h1>
</body>
</html>
`))

type pageData struct {
	View    string
	Title   string
	Heading string
}

var pages = map[View]pageData{
	ViewLoading:          {View: "loading", Title: "Carregando", Heading: "Carregando..."},
	ViewLanding:          {View: "landing", Title: "Bem-vindo", Heading: "BetConta — sua conta para operações esportivas"},
	ViewDashboard:        {View: "dashboard", Title: "Painel", Heading: "Painel da conta master"},
	ViewAffiliate:        {View: "affiliate", Title: "Afiliados", Heading: "Programa de afiliados"},
	ViewNotFound:         {View: "not-found", Title: "Página não encontrada", Heading: "404 — página não encontrada"},
	ViewAdminLogin:       {View: "admin-login", Title: "Login administrativo", Heading: "Acesso administrativo"},
	ViewAdminDashboard:   {View: "admin-dashboard", Title: "Administração", Heading: "Console administrativo"},
	ViewAdminMasters:     {View: "admin-masters", Title: "Contas master", Heading: "Contas master"},
	ViewAdminChildren:    {View: "admin-children", Title: "Contas filhas", Heading: "Contas filhas"},
	ViewAdminFinancial:   {View: "admin-financial", Title: "Financeiro", Heading: "Relatório financeiro"},
	ViewAdminQrCode:      {View: "admin-qrcode", Title: "Solicitações de QR Code", Heading: "Moderação de QR Codes"},
	ViewAdminMaintenance: {View: "admin-maintenance", Title: "Manutenção", Heading: "Manutenção"},
	ViewAdminNotFound:    {View: "admin-not-found", Title: "Página não encontrada", Heading: "404 — página administrativa não encontrada"},
}

// PageHandler resolves both session probes from the request cookies and
// renders the single view the gate picks for the path.
func (h *Handler) PageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userState := SessionAnonymous
		if _, ok := h.userFromRequest(r); ok {
			userState = SessionAuthenticated
		}
		adminState := SessionAnonymous
		if _, ok := h.adminFromRequest(r); ok {
			adminState = SessionAuthenticated
		}
		view := ResolveView(r.URL.Path, userState, adminState)
		status := http.StatusOK
		if view == ViewNotFound || view == ViewAdminNotFound {
			status = http.StatusNotFound
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		if err := pageTemplate.Execute(w, pages[view]); err != nil {
			h.Logger.Error("failed to render page", zap.Error(err))
		}
	}
}
