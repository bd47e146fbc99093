package wasmhelper

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/template-resolver/errors"
	"github.com/wippyai/template-resolver/owner"
)

// Config holds configuration for host creation.
type Config struct {
	// MemoryLimitPages sets the maximum memory per module in pages (64KB each).
	// 0 means the wazero default.
	MemoryLimitPages uint32
}

// Host owns a wazero runtime and the helper modules instantiated in it.
// Host is safe for concurrent use.
type Host struct {
	ctx     context.Context
	runtime wazero.Runtime
	modules map[string]api.Module
	mu      sync.Mutex
}

// NewHost creates a host with the default runtime configuration.
func NewHost(ctx context.Context) *Host {
	return NewHostWithConfig(ctx, nil)
}

// NewHostWithConfig creates a host with custom configuration. ctx is used
// for every helper call made through the host.
func NewHostWithConfig(ctx context.Context, cfg *Config) *Host {
	runtimeCfg := wazero.NewRuntimeConfig()
	if cfg != nil && cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}
	return &Host{
		ctx:     ctx,
		runtime: wazero.NewRuntimeWithConfig(ctx, runtimeCfg),
		modules: make(map[string]api.Module),
	}
}

// Instantiate compiles and instantiates wasm under name. Instantiating a
// name twice returns the first module.
func (h *Host) Instantiate(ctx context.Context, name string, wasm []byte) (api.Module, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if mod, ok := h.modules[name]; ok {
		return mod, nil
	}
	compiled, err := h.runtime.CompileModule(ctx, wasm)
	if err != nil {
		return nil, errors.Instantiation(name, err)
	}
	mod, err := h.runtime.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(name))
	if err != nil {
		return nil, errors.Instantiation(name, err)
	}
	h.modules[name] = mod
	Logger().Debug("helper module instantiated", zap.String("module", name))
	return mod, nil
}

// LoadFile instantiates the module at path, named by its base name.
func (h *Host) LoadFile(ctx context.Context, path string) (api.Module, error) {
	wasm, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Load("read "+path, err)
	}
	return h.Instantiate(ctx, filepath.Base(path), wasm)
}

// Helper returns a simple helper factory that calls export of mod. Template
// arguments are lowered according to sig; the result is lifted back.
func (h *Host) Helper(mod api.Module, export string, sig Signature) (owner.HelperFactory, error) {
	fn := mod.ExportedFunction(export)
	if fn == nil {
		return nil, errors.NotFound(errors.PhaseLoad, "export", export)
	}
	if err := sig.check(fn.Definition()); err != nil {
		return nil, err
	}

	call := &call{ctx: h.ctx, fn: fn, sig: sig, name: mod.Name() + "#" + export}
	return owner.SimpleHelper(call.compute), nil
}

// Close releases the runtime and every module instantiated in it.
func (h *Host) Close(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.modules = make(map[string]api.Module)
	return h.runtime.Close(ctx)
}

type call struct {
	ctx  context.Context
	fn   api.Function
	sig  Signature
	name string
	mu   sync.Mutex
}

// compute runs the export. Failures are logged and render as nil.
func (c *call) compute(positional []any, _ map[string]any) any {
	if len(positional) != len(c.sig.Params) {
		Logger().Warn("wasm helper arity mismatch",
			zap.String("export", c.name),
			zap.Int("want", len(c.sig.Params)),
			zap.Int("got", len(positional)))
		return nil
	}
	params := make([]uint64, len(positional))
	for i, v := range positional {
		raw, err := lower(c.sig.Params[i], v, i)
		if err != nil {
			Logger().Warn("wasm helper argument rejected", zap.String("export", c.name), zap.Error(err))
			return nil
		}
		params[i] = raw
	}

	c.mu.Lock()
	results, err := c.fn.Call(c.ctx, params...)
	c.mu.Unlock()
	if err != nil {
		Logger().Warn("wasm helper call failed", zap.String("export", c.name), zap.Error(err))
		return nil
	}
	if c.sig.Result == nil || len(results) == 0 {
		return nil
	}
	return lift(c.sig.Result, results[0])
}
