package circuit

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/aretw0/circuit/internal/runtime"
	"github.com/aretw0/circuit/pkg/adapters/file"
	"github.com/aretw0/circuit/pkg/domain"
	"github.com/aretw0/circuit/pkg/ports"
)

// Circuit is the high-level entry point for the circuit library.
// It wraps the internal runtime and makes it safe to drive from several
// goroutines (HTTP handlers, MCP tools, an input loop).
type Circuit struct {
	mu      sync.Mutex
	runtime *runtime.Engine

	// Published after every operation for lock-free reads.
	snapshot atomic.Pointer[domain.Snapshot]
	scene    atomic.Pointer[domain.Scene]

	loader   ports.SceneLoader
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	maxDepth int
	Name     string
}

var _ ports.Engine = (*Circuit)(nil)

// Option defines a functional option for configuring the Circuit.
type Option func(*Circuit)

// WithLifecycleHooks registers the trace, activation, switch and short-circuit callbacks.
//
// Hooks run while the circuit is locked. A hook may call back into the
// circuit only with the context it received: the call then skips the lock,
// its trace is deferred and it returns ClassificationIncomplete. Calling back
// with any other context, such as context.Background(), deadlocks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Circuit) {
		c.hooks = hooks
	}
}

// WithLoader injects a custom SceneLoader, bypassing the default file loader.
func WithLoader(l ports.SceneLoader) Option {
	return func(c *Circuit) {
		c.loader = l
	}
}

// WithLogger sets a custom structured logger for the circuit.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Circuit) {
		c.logger = logger
	}
}

// WithMaxDepth caps the number of steps a single trace may walk.
func WithMaxDepth(n int) Option {
	return func(c *Circuit) {
		c.maxDepth = n
	}
}

// New loads a scene and builds its circuit.
// By default, it reads the YAML scene file at scenePath.
// If WithLoader option is provided, scenePath can be empty.
//
// The circuit starts Incomplete: no trace runs until the first operation.
func New(scenePath string, opts ...Option) (*Circuit, error) {
	c := &Circuit{}

	// Apply Options first to check if a loader is provided
	for _, opt := range opts {
		opt(c)
	}

	if c.loader == nil {
		if scenePath == "" {
			return nil, fmt.Errorf("scenePath is required when no custom loader is provided")
		}
		c.loader = file.New(scenePath)
	}

	scene, err := c.loader.LoadScene()
	if err != nil {
		return nil, fmt.Errorf("failed to load scene: %w", err)
	}
	if err := scene.Validate(); err != nil {
		return nil, err
	}
	c.Name = scene.Name

	// Ensure logger is initialized (so we don't pass nil to runtime, which would overwrite its default)
	if c.logger == nil {
		c.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if c.Name != "" {
		c.logger = c.logger.With("scene", c.Name)
	}

	c.runtime = runtime.NewEngine(*scene,
		runtime.WithLifecycleHooks(c.hooks),
		runtime.WithLogger(c.logger),
		runtime.WithMaxDepth(c.maxDepth),
	)
	c.publish()

	c.logger.Debug("circuit ready",
		"components", len(scene.Components),
		"links", len(scene.Links),
	)
	return c, nil
}

// Connect links source to destination. Any link either terminal already has
// is torn down first, then the circuit is retraced.
func (c *Circuit) Connect(ctx context.Context, source, destination domain.TerminalID) (domain.Classification, error) {
	ctx, unlock := c.lock(ctx)
	defer unlock()
	return c.runtime.Connect(ctx, source, destination)
}

// Disconnect removes the outgoing link of terminal and retraces.
func (c *Circuit) Disconnect(ctx context.Context, terminal domain.TerminalID) (domain.Classification, error) {
	ctx, unlock := c.lock(ctx)
	defer unlock()
	return c.runtime.Disconnect(ctx, terminal)
}

// SetSwitch moves a switch to L1 (up) or L2 (down) and retraces.
// origin is passed back untouched in the switch position event.
func (c *Circuit) SetSwitch(ctx context.Context, id string, up bool, origin any) (domain.Classification, error) {
	ctx, unlock := c.lock(ctx)
	defer unlock()
	return c.runtime.SetSwitch(ctx, id, up, origin)
}

// Toggle flips a switch and retraces.
func (c *Circuit) Toggle(ctx context.Context, id string, origin any) (domain.Classification, error) {
	ctx, unlock := c.lock(ctx)
	defer unlock()
	return c.runtime.Toggle(ctx, id, origin)
}

// Test re-evaluates the circuit without changing it.
func (c *Circuit) Test(ctx context.Context) domain.Classification {
	ctx, unlock := c.lock(ctx)
	defer unlock()
	return c.runtime.Test(ctx)
}

// Snapshot returns the state after the most recently completed operation.
// It never blocks; inside a hook it still reports the previous operation.
func (c *Circuit) Snapshot() domain.Snapshot {
	return *c.snapshot.Load()
}

// Inspect returns the current topology as a scene definition.
func (c *Circuit) Inspect() domain.Scene {
	return *c.scene.Load()
}

// Loader returns the underlying SceneLoader used by the circuit.
func (c *Circuit) Loader() ports.SceneLoader {
	return c.loader
}

type heldKey struct{}

// lock serializes operations. A call made from a hook carries the context the
// hook received and runs without locking again; the runtime defers the trace
// it requests until the running one has finished.
func (c *Circuit) lock(ctx context.Context) (context.Context, func()) {
	if held, _ := ctx.Value(heldKey{}).(*Circuit); held == c {
		return ctx, func() {}
	}
	c.mu.Lock()
	return context.WithValue(ctx, heldKey{}, c), func() {
		c.publish()
		c.mu.Unlock()
	}
}

func (c *Circuit) publish() {
	snap := c.runtime.Snapshot()
	scene := c.runtime.Scene()
	scene.Name = c.Name
	c.snapshot.Store(&snap)
	c.scene.Store(&scene)
}
