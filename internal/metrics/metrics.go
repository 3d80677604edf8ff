package metrics

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "arena_robots"

// File kinds used as label values.
const (
	KindModelParams = "model_params"
	KindControl     = "control"
	KindSetup       = "setup"
)

var (
	filesLoaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_loaded_total",
			Help:      "Total number of configuration files loaded successfully",
		},
		[]string{"kind"},
	)

	loadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "load_errors_total",
			Help:      "Total number of configuration files that failed to load",
		},
		[]string{"kind", "reason"},
	)

	ModelParamsCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_params_cache_hits_total",
			Help:      "Total number of model parameter lookups served from the provider cache",
		},
	)

	SetupRecords = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "setup_records_total",
			Help:      "Total number of setup records produced by expansion",
		},
	)
)

func FileLoadedInc(kind string) {
	filesLoaded.WithLabelValues(kind).Inc()
}

func LoadErrorInc(kind string, reason string) {
	loadErrors.WithLabelValues(kind, reason).Inc()
}

func FilesLoaded(kind string) prometheus.Counter {
	return filesLoaded.WithLabelValues(kind)
}

func LoadErrors(kind string, reason string) prometheus.Counter {
	return loadErrors.WithLabelValues(kind, reason)
}

func ModelParamsCacheHitInc() {
	ModelParamsCacheHits.Inc()
}

func SetupRecordsAdd(count int) {
	SetupRecords.Add(float64(count))
}

// WriteSummary writes one line per counter of this package, sorted by name and labels.
func WriteSummary(w io.Writer) error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	var lines []string
	for _, family := range families {
		if !strings.HasPrefix(family.GetName(), namespace+"_") {
			continue
		}
		for _, m := range family.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
			}
			name := family.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			lines = append(lines, fmt.Sprintf("%s %g", name, m.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
