package lifecycle

import (
	"go.trai.ch/zerr"

	"github.com/wolfprint3d/mako/internal/core/domain"
	"github.com/wolfprint3d/mako/internal/core/ports"
)

// recordingHost is the ports.BuildHost handed to a target's lifecycle
// callbacks. It records everything into the target's own descriptor, so a
// callback can never touch another target's state.
type recordingHost struct {
	bctx   domain.BuildContext
	d      *domain.TargetDescriptor
	logger ports.Logger

	defaultPackaged bool
}

var _ ports.BuildHost = (*recordingHost)(nil)

func newRecordingHost(bctx domain.BuildContext, d *domain.TargetDescriptor, logger ports.Logger) *recordingHost {
	return &recordingHost{bctx: bctx, d: d, logger: logger}
}

// Context returns the read-only platform and backend facts for this run.
func (h *recordingHost) Context() domain.BuildContext {
	return h.bctx
}

// AddOptions appends native-build options to the descriptor.
func (h *recordingHost) AddOptions(pairs ...string) error {
	return h.d.AddOptions(pairs...)
}

// AddCompilerFlags appends compiler flags to the descriptor.
func (h *recordingHost) AddCompilerFlags(flags ...string) {
	h.d.AddCompilerFlags(flags...)
}

// InjectProducts records a cross-target product binding request.
func (h *recordingHost) InjectProducts(fromTarget, includeVar, libsVar string) {
	h.d.AddInjection(domain.ProductInjection{
		FromTarget: fromTarget,
		IncludeVar: includeVar,
		LibsVar:    libsVar,
	})
}

// ExportProducts publishes the descriptor's include path and link libraries.
func (h *recordingHost) ExportProducts(includeDir string, libs ...string) {
	h.d.SetExports(domain.ProductExports{IncludeDir: includeDir, Libs: libs})
}

// ExportSyslib records a system-library link directive for consumers.
func (h *recordingHost) ExportSyslib(directive string) {
	h.d.AddSyslib(directive)
}

// DefaultPackage runs the default packaging behavior: the engine collects the
// compiled artifacts after the target's Package callback returns, so here we
// only check ordering and mark that packaging was requested.
func (h *recordingHost) DefaultPackage() error {
	if h.d.Phase() != domain.PhaseConfigured {
		err := zerr.With(domain.ErrPhaseOrder, "target", h.d.Name())
		return zerr.With(err, "phase", h.d.Phase().String())
	}
	h.defaultPackaged = true
	h.logger.Info("collecting artifacts for " + h.d.Name())
	return nil
}
