package external_payment_gateway

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrTimeout = errors.New("gateway timeout")
var ErrServer = errors.New("gateway 5xx")
var ErrClient = errors.New("gateway 4xx")
var ErrCircuitOpen = errors.New("circuit open")

// AuthorizeRequest asks the gateway for a payment authorization. Amount is in
// the smallest currency unit.
type AuthorizeRequest struct {
	Amount   int64
	Currency string
	Metadata map[string]string
}

// Authorization is the gateway's handle for a pending charge. ClientSecret is
// the opaque value handed to the client to complete the payment.
type Authorization struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
}

type Gateway interface {
	Authorize(ctx context.Context, req AuthorizeRequest) (*Authorization, error)
}

type CircuitBreakerConfig struct {
	FailureThreshold int
	SuccessThreshold int
	OpenTimeout      time.Duration
	IsFailure        func(error) bool
}

type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

type CircuitBreakerGateway struct {
	next Gateway
	cfg  CircuitBreakerConfig
	now  func() time.Time

	mu           sync.Mutex
	state        State
	failures     int
	successes    int
	openedAt     time.Time
	halfInFlight bool
}

func NewCircuitBreakerGateway(next Gateway, cfg CircuitBreakerConfig) *CircuitBreakerGateway {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = 1
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 2 * time.Second
	}
	if cfg.IsFailure == nil {
		cfg.IsFailure = IsTransient
	}
	return &CircuitBreakerGateway{next: next, cfg: cfg, now: time.Now, state: StateClosed}
}

// IsTransient reports whether err is worth retrying: timeouts and 5xx.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrServer) || errors.Is(err, context.DeadlineExceeded)
}

func (g *CircuitBreakerGateway) Authorize(ctx context.Context, req AuthorizeRequest) (*Authorization, error) {
	if err := g.beforeCall(); err != nil {
		return nil, err
	}
	auth, err := g.next.Authorize(ctx, req)
	g.afterCall(err)
	return auth, err
}

// State reports the breaker state. An open breaker whose OpenTimeout has
// elapsed reports half open, ready for a trial call.
func (g *CircuitBreakerGateway) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.refreshLocked()
	return g.state
}

// Check fails only while the breaker refuses calls, so callers gating on it
// still let the half open trial through.
func (g *CircuitBreakerGateway) Check(ctx context.Context) error {
	if g.State() == StateOpen {
		return ErrCircuitOpen
	}
	return ctx.Err()
}

func (g *CircuitBreakerGateway) refreshLocked() {
	if g.state == StateOpen && g.now().Sub(g.openedAt) >= g.cfg.OpenTimeout {
		g.state = StateHalfOpen
		g.successes = 0
		g.halfInFlight = false
	}
}

func (g *CircuitBreakerGateway) beforeCall() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.refreshLocked()
	switch g.state {
	case StateClosed:
		return nil
	case StateOpen:
		return ErrCircuitOpen
	case StateHalfOpen:
		if g.halfInFlight {
			return ErrCircuitOpen
		}
		g.halfInFlight = true
		return nil
	default:
		return ErrCircuitOpen
	}
}

func (g *CircuitBreakerGateway) afterCall(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == StateHalfOpen {
		g.halfInFlight = false
	}

	if err == nil || !g.cfg.IsFailure(err) {
		g.recordSuccessLocked(err == nil)
		return
	}

	switch g.state {
	case StateClosed:
		g.failures++
		if g.failures >= g.cfg.FailureThreshold {
			g.tripLocked()
		}
	case StateHalfOpen:
		g.tripLocked()
	}
}

func (g *CircuitBreakerGateway) recordSuccessLocked(ok bool) {
	if !ok {
		return
	}
	switch g.state {
	case StateClosed:
		g.failures = 0
	case StateHalfOpen:
		g.successes++
		if g.successes >= g.cfg.SuccessThreshold {
			g.state = StateClosed
			g.failures = 0
			g.successes = 0
		}
	}
}

func (g *CircuitBreakerGateway) tripLocked() {
	g.state = StateOpen
	g.openedAt = g.now()
	g.successes = 0
	g.halfInFlight = false
}

// FakeGateway issues authorizations locally. Fail, when set, lets callers
// inject gateway errors per request.
type FakeGateway struct {
	Latency time.Duration
	Fail    func(req AuthorizeRequest) error
}

func NewFakeGateway() *FakeGateway { return &FakeGateway{Latency: 20 * time.Millisecond} }

func (g *FakeGateway) Authorize(ctx context.Context, req AuthorizeRequest) (*Authorization, error) {
	if req.Amount <= 0 || req.Currency == "" {
		return nil, ErrClient
	}
	if g.Latency > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(g.Latency):
		}
	}
	if g.Fail != nil {
		if err := g.Fail(req); err != nil {
			return nil, err
		}
	}
	id := "pi_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	return &Authorization{
		ID:           id,
		ClientSecret: id + "_secret_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16],
		Amount:       req.Amount,
		Currency:     strings.ToLower(req.Currency),
	}, nil
}
