package server

import "github.com/invoiceslite/go-invoices-server/roles"

func (s *Server) initRoutes() {
	withTenant := s.WithTenant()
	withAccess := s.RequireAccess()

	// Auth endpoints. Tenant resolution runs pre-authentication; once a
	// user holds a token, the tenant id inside the validated claims is
	// what authorizes data access.
	s.RegisterRouteFunc("POST /auth/register", chain(s.handleRegister, withTenant))
	s.RegisterRouteFunc("POST /auth/login", chain(s.handleLogin, withTenant))
	s.RegisterRouteFunc("POST /auth/refresh", s.handleRefresh)
	s.RegisterRouteFunc("POST /auth/logout", s.handleLogout)
	s.RegisterRouteFunc("GET /auth/me", chain(s.handleMe, withAccess))

	// Tenant-scoped informational route, usable pre-authentication.
	s.RegisterRouteFunc("GET /tenants/current", chain(s.handleCurrentTenant, withTenant))

	// Customers. Reads need any authenticated member; writes need ADMIN
	// (OWNER passes by ordinal).
	s.RegisterRouteFunc("GET /customers", chain(s.handleListCustomers, withAccess))
	s.RegisterRouteFunc("GET /customers/{id}", chain(s.handleGetCustomer, withAccess))
	s.RegisterRouteFunc("POST /customers", chain(s.handleCreateCustomer, withAccess, s.RequireRole(roles.Admin)))
	s.RegisterRouteFunc("PUT /customers/{id}", chain(s.handleUpdateCustomer, withAccess, s.RequireRole(roles.Admin)))
	s.RegisterRouteFunc("DELETE /customers/{id}", chain(s.handleDeleteCustomer, withAccess, s.RequireRole(roles.Admin)))

	// Invoices. VIEWER can read, MEMBER can write, ADMIN can delete.
	s.RegisterRouteFunc("GET /invoices", chain(s.handleListInvoices, withAccess, s.RequireRole(roles.Viewer)))
	s.RegisterRouteFunc("GET /invoices/{id}", chain(s.handleGetInvoice, withAccess, s.RequireRole(roles.Viewer)))
	s.RegisterRouteFunc("POST /invoices", chain(s.handleCreateInvoice, withAccess, s.RequireRole(roles.Member)))
	s.RegisterRouteFunc("PUT /invoices/{id}", chain(s.handleUpdateInvoice, withAccess, s.RequireRole(roles.Member)))
	s.RegisterRouteFunc("DELETE /invoices/{id}", chain(s.handleDeleteInvoice, withAccess, s.RequireRole(roles.Admin)))
}
