package cli

import (
	"context"
	"os"
	"time"

	"github.com/checkdk/checkdk/internal/adapters/outbound/ai"
	"github.com/checkdk/checkdk/internal/adapters/outbound/composefile"
	"github.com/checkdk/checkdk/internal/adapters/outbound/config"
	"github.com/checkdk/checkdk/internal/adapters/outbound/gitinfo"
	"github.com/checkdk/checkdk/internal/adapters/outbound/k8sfile"
	"github.com/checkdk/checkdk/internal/adapters/outbound/portprobe"
	"github.com/checkdk/checkdk/internal/application"
	"github.com/checkdk/checkdk/internal/domain"
)

// newAnalyzeService assembles the standard pipeline from the outbound
// adapters and the persisted settings.
func newAnalyzeService() (*application.AnalyzeService, domain.Settings) {
	settings, err := config.New().Load()
	if err != nil {
		// A broken settings file must not stop the gate; run on defaults.
		settings = domain.DefaultSettings()
	}
	svc := application.NewAnalyzeService(
		composefile.New(),
		k8sfile.New(),
		portprobe.New(),
		ai.Chain(settings),
		settings,
		gitinfo.New(),
	)
	return svc, settings
}

// analysisContext bounds AI latency with the user's configured timeout. The
// analysis pipeline itself imposes no deadline.
func analysisContext(parent context.Context, settings domain.Settings) (context.Context, context.CancelFunc) {
	if settings.TimeoutSeconds <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, time.Duration(settings.TimeoutSeconds)*time.Second)
}

// findComposeFile looks for a compose file in the working directory using
// the conventional names, in precedence order.
func findComposeFile() (string, bool) {
	for _, name := range []string{
		"docker-compose.yml", "docker-compose.yaml",
		"compose.yml", "compose.yaml",
	} {
		if _, err := os.Stat(name); err == nil {
			return name, true
		}
	}
	return "", false
}
