// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.

# Gate Layout

Session resolution runs once for every /api request; the three gates are
applied where the route groups are mounted:

  - Public: the login flows and capability discovery.
  - Authenticated: own profile, current user, voluntary exit.
  - Approved member: directory, feed, events, polls, donations, stats.
  - Admin: membership review and content administration under /api/admin.

The authenticated check always precedes the approval and admin checks, so an
anonymous caller receives 401 from every gated route, never 403.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/alumhub/alumhub/internal/community/donation"
	"github.com/alumhub/alumhub/internal/community/event"
	"github.com/alumhub/alumhub/internal/community/poll"
	"github.com/alumhub/alumhub/internal/community/post"
	"github.com/alumhub/alumhub/internal/community/stats"
	"github.com/alumhub/alumhub/internal/platform/config"
	"github.com/alumhub/alumhub/internal/platform/constants"
	"github.com/alumhub/alumhub/internal/platform/middleware"
	"github.com/alumhub/alumhub/internal/users/auth"
	"github.com/alumhub/alumhub/internal/users/member"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here and a mount in [NewServer].
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles the sign-in flows and the current-user endpoint.
	Auth *auth.Handler

	// Member handles profiles, the directory, and membership review.
	Member *member.Handler

	// Post handles the community feed.
	Post *post.Handler

	// Event handles events, RSVPs, and the featured carousel.
	Event *event.Handler

	// Donation handles donations, pledges, and receiving accounts.
	Donation *donation.Handler

	// Poll handles community polls and voting.
	Poll *poll.Handler

	// Stats handles the community dashboard numbers.
	Stats *stats.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups behind their gates.
func NewServer(
	context context.Context,
	cfg *config.Config,
	log *slog.Logger,
	resolver middleware.SessionResolver,
	loader middleware.UserLoader,
	h Handlers,
) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg, cfg.AppDomains))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.ResolveSession(resolver))

		// ## Public: login flows and capability discovery
		api.Mount("/", h.Auth.PublicRoutes())

		// ## Authenticated: any resolved session, regardless of membership
		api.Group(func(authed chi.Router) {
			authed.Use(middleware.RequireAuth)

			authed.Mount("/auth/user", h.Auth.SessionRoutes())
			authed.Mount("/profile", h.Member.ProfileRoutes())
			authed.Mount("/exit-community", h.Member.ExitRoutes())
		})

		// ## Approved members: the community surface
		api.Group(func(approved chi.Router) {
			approved.Use(middleware.RequireApprovedMember(loader))

			approved.Mount("/members", h.Member.DirectoryRoutes())
			approved.Mount("/posts", h.Post.MemberRoutes())
			approved.Route("/events", func(events chi.Router) {
				events.Mount("/", h.Event.MemberRoutes())
				events.Mount("/{eventID}/donations", h.Donation.EventDonationRoutes())
				events.Mount("/{eventID}/pledges", h.Donation.EventPledgeRoutes())
			})
			approved.Mount("/polls", h.Poll.MemberRoutes())
			approved.Mount("/stats", h.Stats.MemberRoutes())
			approved.Mount("/donations", h.Donation.DonationRoutes())
			approved.Mount("/pledges", h.Donation.PledgeRoutes())
			approved.Mount("/bank-accounts", h.Donation.BankAccountRoutes())
		})

		// ## Admins: membership review and content administration
		api.Route("/admin", func(admin chi.Router) {
			admin.Use(middleware.RequireAdmin(loader))

			admin.Mount("/", h.Member.AdminRoutes())
			admin.Mount("/posts", h.Post.AdminRoutes())
			admin.Mount("/events", h.Event.AdminRoutes())
			admin.Mount("/polls", h.Poll.AdminRoutes())
			admin.Mount("/donations", h.Donation.AdminDonationRoutes())
			admin.Mount("/bank-accounts", h.Donation.AdminBankAccountRoutes())
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
