package handlers

import (
	"context"

	"defense-dash/internal/dashboard"
	"defense-dash/internal/database"

	"go.uber.org/zap"
)

// CredentialStore is the account backend used by the auth handlers.
type CredentialStore interface {
	Register(ctx context.Context, username, password string) error
	Authenticate(ctx context.Context, username, password string) error
}

// DashboardRunner recomputes the dashboard for one request.
type DashboardRunner interface {
	Run(ctx context.Context, in dashboard.Input) (*dashboard.View, error)
}

// Handler holds the dependencies shared by every page handler.
type Handler struct {
	Store       CredentialStore
	Runner      DashboardRunner
	Audit       *database.Auditor
	Log         *zap.Logger
	DatasetPath string
}

func New(store CredentialStore, runner DashboardRunner, audit *database.Auditor, log *zap.Logger, datasetPath string) *Handler {
	return &Handler{
		Store:       store,
		Runner:      runner,
		Audit:       audit,
		Log:         log,
		DatasetPath: datasetPath,
	}
}
