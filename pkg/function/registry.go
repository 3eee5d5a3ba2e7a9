// Package function maps function names to their side-effecting handlers
// and executes them behind a failure boundary. The boundary is the load
// bearing contract of the engine: a handler may fail or panic, but the
// caller always receives a FunctionResult, never an error.
package function

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/kisanmitra/kisanmitra/pkg/model"
	"github.com/kisanmitra/kisanmitra/pkg/repository"
	"github.com/kisanmitra/kisanmitra/pkg/utils/logging"
)

// Env bundles the injectable effects handlers depend on: the clock, the
// synthetic ID generator, and the latency simulation. Tests swap these to
// run deterministically and without sleeping.
type Env struct {
	Now   func() time.Time
	NewID func(prefix string) model.RecordID
	Delay func(ctx context.Context)
}

// DefaultEnv returns the production environment: wall clock, timestamp
// plus random-suffix IDs, and a short random delay that mimics a backend
// round-trip.
func DefaultEnv() *Env {
	return &Env{
		Now: time.Now,
		NewID: func(prefix string) model.RecordID {
			return model.NewRecordID(prefix, time.Now())
		},
		Delay: func(ctx context.Context) {
			d := time.Duration(300+rand.Intn(600)) * time.Millisecond
			select {
			case <-time.After(d):
			case <-ctx.Done():
			}
		},
	}
}

// TestEnv returns a deterministic environment with a fixed clock and no
// delay. IDs still carry a random suffix so appends stay unique.
func TestEnv(now time.Time) *Env {
	return &Env{
		Now: func() time.Time { return now },
		NewID: func(prefix string) model.RecordID {
			return model.NewRecordID(prefix, now)
		},
		Delay: func(ctx context.Context) {},
	}
}

// Handler performs one function's side effect. Implementations validate
// their typed input decoded from the raw parameter fields; validation
// failures are returned as unsuccessful results, not errors. An error
// return signals an unexpected execution failure and is converted to a
// generic result at the registry boundary.
type Handler interface {
	Name() model.FunctionName
	Execute(ctx context.Context, inv *Invocation) (*model.FunctionResult, error)
}

// Invocation carries the enriched parameters into a handler
type Invocation struct {
	RequesterID string
	Context     model.RequestContext
	Fields      json.RawMessage
}

// Decode unmarshals the raw parameter fields into the handler's typed input
func (inv *Invocation) Decode(dst any) error {
	if len(inv.Fields) == 0 {
		return nil
	}
	return json.Unmarshal(inv.Fields, dst)
}

// Registry dispatches function calls to registered handlers
type Registry struct {
	env      *Env
	handlers map[model.FunctionName]Handler
}

// New creates a registry with the full handler set wired to the repository
func New(repo repository.Repository, env *Env) *Registry {
	if env == nil {
		env = DefaultEnv()
	}
	return NewWithHandlers(env,
		&CreatePayment{repo: repo, env: env},
		&GetWeatherForecast{env: env},
		&RecordHarvest{repo: repo, env: env},
		&RecordStockEntry{repo: repo, env: env},
		&CheckInventory{repo: repo},
		&GenerateQRCode{repo: repo, env: env},
		&SendNotification{repo: repo, env: env},
		&BroadcastAnnouncement{repo: repo, env: env},
		&RaiseComplaint{repo: repo, env: env},
		&TrackOrder{repo: repo},
		&CheckScheme{},
	)
}

// NewWithHandlers creates a registry over an explicit handler set
func NewWithHandlers(env *Env, handlers ...Handler) *Registry {
	r := &Registry{
		env:      env,
		handlers: make(map[model.FunctionName]Handler, len(handlers)),
	}
	for _, h := range handlers {
		r.handlers[h.Name()] = h
	}
	return r
}

// Has reports whether a handler is registered for the function
func (r *Registry) Has(fn model.FunctionName) bool {
	_, ok := r.handlers[fn]
	return ok
}

// Execute runs the named function with the given parameters. It always
// returns a result: unknown functions, invalid parameters, handler errors,
// and panics all surface as success=false results with a narrative the
// conversation can display verbatim.
func (r *Registry) Execute(ctx context.Context, fn model.FunctionName, params *model.FunctionParams, user *model.UserProfile) (result *model.FunctionResult) {
	logger := logging.From(ctx)

	handler, ok := r.handlers[fn]
	if !ok {
		// Capability registry and handler map out of sync: a
		// configuration problem, not a user mistake.
		logger.Warn("function has no registered handler", "function", fn)
		return &model.FunctionResult{
			Success: false,
			Message: "That action is not available for your account right now.",
		}
	}

	inv, err := r.enrich(params, user)
	if err != nil {
		logger.Error("failed to prepare function invocation", "function", fn, "error", err)
		return failureResult()
	}

	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("function handler panicked", "function", fn, "panic", rec)
			result = failureResult()
		}
	}()

	r.env.Delay(ctx)

	result, err = handler.Execute(ctx, inv)
	if err != nil {
		logger.Error("function handler failed", "function", fn, "error", err)
		return failureResult()
	}
	return result
}

// enrich attaches provenance: requester ID defaults to the acting user,
// and the context snapshot is rebuilt from the profile when absent
func (r *Registry) enrich(params *model.FunctionParams, user *model.UserProfile) (*Invocation, error) {
	inv := &Invocation{}
	if params != nil {
		inv.RequesterID = params.RequesterID
		inv.Context = params.Context
		if params.Fields != nil {
			raw, err := json.Marshal(params.Fields)
			if err != nil {
				return nil, err
			}
			inv.Fields = raw
		}
	}
	if user != nil {
		if inv.RequesterID == "" {
			inv.RequesterID = user.ID
		}
		if inv.Context == (model.RequestContext{}) {
			inv.Context = model.RequestContext{
				Name:     user.Name,
				Role:     user.Role,
				Location: user.Location,
			}
		}
	}
	return inv, nil
}

func failureResult() *model.FunctionResult {
	return &model.FunctionResult{
		Success: false,
		Message: "Something went wrong while processing your request. Please try again.",
	}
}
