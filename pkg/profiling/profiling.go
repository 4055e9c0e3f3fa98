package profiling

import (
	"fmt"
	"strings"
	"time"

	"github.com/edushetra/edushetra-api/config"
	"github.com/edushetra/edushetra-api/pkg/logger"
	"github.com/grafana/pyroscope-go"
	"go.uber.org/zap"
)

const (
	defaultAppName        = "edushetra-api"
	defaultUploadInterval = 15 * time.Second
)

// sampleSets maps O11Y_PROFILING_SAMPLE_TYPES names to pyroscope profiles
var sampleSets = map[string][]pyroscope.ProfileType{
	"cpu":           {pyroscope.ProfileCPU},
	"alloc_space":   {pyroscope.ProfileAllocSpace},
	"alloc_objects": {pyroscope.ProfileAllocObjects},
	"goroutines":    {pyroscope.ProfileGoroutines},
	"mutex":         {pyroscope.ProfileMutexCount, pyroscope.ProfileMutexDuration},
	"block":         {pyroscope.ProfileBlockCount, pyroscope.ProfileBlockDuration},
}

// defaultSamples covers request handling, the instance registry lock and the
// webhook goroutines; block profiling stays opt-in
var defaultSamples = []string{"cpu", "alloc_space", "goroutines", "mutex"}

// Identity labels the uploaded profiles so they line up with traces and metrics
type Identity struct {
	ServiceName string
	Namespace   string
	Version     string
	InstanceID  string
	Environment string
}

func (id Identity) tags() map[string]string {
	tags := map[string]string{
		"service_name":    id.ServiceName,
		"namespace":       id.Namespace,
		"environment":     id.Environment,
		"service_version": id.Version,
		"instance":        id.InstanceID,
	}
	for k, v := range tags {
		if v == "" {
			delete(tags, k)
		}
	}
	return tags
}

// InitProfiler starts pyroscope when O11Y_PROFILING_ENABLED is set. The stop
// func is never nil when err is nil.
func InitProfiler(cfg config.ProfilingConfig, id Identity) (func(), error) {
	if !cfg.Enabled {
		logger.Info("Continuous profiling disabled")
		return func() {}, nil
	}

	pcfg, err := buildConfig(cfg, id)
	if err != nil {
		return nil, err
	}

	profiler, err := pyroscope.Start(pcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to start profiler: %w", err)
	}

	logger.Info("Continuous profiling initialized",
		zap.String("application_name", pcfg.ApplicationName),
		zap.String("endpoint", pcfg.ServerAddress),
		zap.Duration("upload_rate", pcfg.UploadRate),
		zap.Int("profile_types", len(pcfg.ProfileTypes)),
	)

	return func() {
		if stopErr := profiler.Stop(); stopErr != nil {
			logger.Error("Failed to stop profiler", zap.Error(stopErr))
		}
	}, nil
}

func buildConfig(cfg config.ProfilingConfig, id Identity) (pyroscope.Config, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return pyroscope.Config{}, fmt.Errorf("profiling endpoint is required when profiling is enabled")
	}

	types, err := parseProfileTypes(cfg.SampleTypes)
	if err != nil {
		return pyroscope.Config{}, err
	}

	appName := strings.TrimSpace(cfg.AppName)
	if appName == "" {
		appName = defaultAppName
	}

	upload := time.Duration(cfg.UploadIntervalSeconds) * time.Second
	if upload <= 0 {
		upload = defaultUploadInterval
	}

	return pyroscope.Config{
		ApplicationName: appName,
		ServerAddress:   endpoint,
		Tags:            id.tags(),
		UploadRate:      upload,
		ProfileTypes:    types,
		Logger:          logger.With(zap.String("component", "pyroscope")).Sugar(),
	}, nil
}

// parseProfileTypes reads a comma separated list of sampleSets names; "all"
// selects every set and an empty value selects defaultSamples
func parseProfileTypes(value string) ([]pyroscope.ProfileType, error) {
	var names []string
	for _, raw := range strings.Split(value, ",") {
		if name := strings.ToLower(strings.TrimSpace(raw)); name != "" {
			names = append(names, name)
		}
	}

	switch {
	case len(names) == 0:
		names = defaultSamples
	case len(names) == 1 && names[0] == "all":
		names = []string{"cpu", "alloc_space", "alloc_objects", "goroutines", "mutex", "block"}
	}

	var types []pyroscope.ProfileType
	seen := make(map[pyroscope.ProfileType]bool)
	for _, name := range names {
		set, ok := sampleSets[name]
		if !ok {
			return nil, fmt.Errorf("unsupported O11Y_PROFILING_SAMPLE_TYPES value: %q", name)
		}
		for _, t := range set {
			if !seen[t] {
				seen[t] = true
				types = append(types, t)
			}
		}
	}
	return types, nil
}
