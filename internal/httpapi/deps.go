// Package httpapi is the worker's local HTTP surface: job listings, manual
// pipeline and posting triggers, config editing, and an SSE event stream.
package httpapi

import (
	"sync/atomic"

	"github.com/andrewwu13/employment-bot/internal/config"
	"github.com/andrewwu13/employment-bot/internal/events"
	"github.com/andrewwu13/employment-bot/internal/pipeline"
	"github.com/andrewwu13/employment-bot/internal/publish"
	"github.com/andrewwu13/employment-bot/internal/store"
)

type Deps struct {
	Store store.Jobs

	Hub *events.Hub

	Pipeline *pipeline.Service
	Poster   *publish.Poster

	// Atomic stores
	CfgVal    *atomic.Value // stores config.Config
	RunStatus *atomic.Value // stores httpapi.RunStatus

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
}
