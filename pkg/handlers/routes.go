package handlers

import (
	"net/http"
	"strings"

	"github.com/jinzhu/inflection"

	"github.com/xemob/coopnet/pkg/auth"
)

// ScopeMiddleware attaches a request-scoped database connection.
type ScopeMiddleware func(http.HandlerFunc) http.HandlerFunc

const apiPrefix = "/api"

// collectionPath returns the collection URL for a resource name:
// "cooperator_profile" becomes "/api/cooperator-profiles".
func collectionPath(resource string) string {
	return apiPrefix + "/" + strings.ReplaceAll(inflection.Plural(resource), "_", "-")
}

// itemPath returns the detail URL pattern for a resource name.
func itemPath(resource string) string {
	return collectionPath(resource) + "/{id}"
}

// resourceRoutes are the handlers of one resource. Nil entries are not routed.
type resourceRoutes struct {
	list   http.HandlerFunc
	create http.HandlerFunc
	get    http.HandlerFunc
	update http.HandlerFunc
}

// register wires the collection and detail verbs for resource. PUT and PATCH
// share one handler that inspects the method.
func (rr resourceRoutes) register(mux *http.ServeMux, resource string, scope ScopeMiddleware) {
	collection := collectionPath(resource)
	item := itemPath(resource)

	if rr.list != nil {
		mux.HandleFunc("GET "+collection, scope(rr.list))
	}
	if rr.create != nil {
		mux.HandleFunc("POST "+collection, scope(rr.create))
	}
	if rr.get != nil {
		mux.HandleFunc("GET "+item, scope(rr.get))
	}
	if rr.update != nil {
		mux.HandleFunc("PUT "+item, scope(rr.update))
		mux.HandleFunc("PATCH "+item, scope(rr.update))
	}
}

// Router is every resource handler of the API.
type Router struct {
	Health             *HealthHandler
	Users              *UsersHandler
	Organizations      *OrganizationsHandler
	CooperatorProfiles *CooperatorProfilesHandler
	PortfolioItems     *PortfolioItemsHandler
	Projects           *ProjectsHandler
	Cooperations       *CooperationsHandler
	Reviews            *ReviewsHandler
	Messages           *MessagesHandler
}

// RegisterRoutes registers every route on mux. Handlers other than health run
// inside scope, and authMiddleware runs inside scope.
func (rt *Router) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware, scope ScopeMiddleware) {
	rt.Health.RegisterRoutes(mux)
	rt.Users.RegisterRoutes(mux, authMiddleware, scope)
	rt.Organizations.RegisterRoutes(mux, authMiddleware, scope)
	rt.CooperatorProfiles.RegisterRoutes(mux, authMiddleware, scope)
	rt.PortfolioItems.RegisterRoutes(mux, authMiddleware, scope)
	rt.Projects.RegisterRoutes(mux, authMiddleware, scope)
	rt.Cooperations.RegisterRoutes(mux, authMiddleware, scope)
	rt.Reviews.RegisterRoutes(mux, authMiddleware, scope)
	rt.Messages.RegisterRoutes(mux, authMiddleware, scope)
}
