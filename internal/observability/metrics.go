package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce       sync.Once
	storeSavesTotal    *prometheus.CounterVec
	storeDeletesTotal  *prometheus.CounterVec
	backupRunsTotal    prometheus.Counter
	backupCopyFailures prometheus.Counter
)

// RegisterMetrics initialises the Prometheus collectors for store and backup
// activity. Collectors land on the default registry; exposing them is left to
// the embedding process.
func RegisterMetrics() {
	registerOnce.Do(func() {
		storeSavesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "arms_store_saves_total",
			Help: "Total number of entity save operations, by entity kind.",
		}, []string{"kind"})

		storeDeletesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "arms_store_deletes_total",
			Help: "Total number of entity delete operations, by entity kind.",
		}, []string{"kind"})

		backupRunsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arms_backup_snapshots_total",
			Help: "Total number of backup snapshots taken.",
		})

		backupCopyFailures = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arms_backup_copy_failures_total",
			Help: "Total number of individual file copy failures during backups.",
		})

		prometheus.MustRegister(storeSavesTotal, storeDeletesTotal, backupRunsTotal, backupCopyFailures)
	})
}

// StoreSaves exposes the save counter.
func StoreSaves() *prometheus.CounterVec {
	RegisterMetrics()
	return storeSavesTotal
}

// StoreDeletes exposes the delete counter.
func StoreDeletes() *prometheus.CounterVec {
	RegisterMetrics()
	return storeDeletesTotal
}

// BackupRuns exposes the snapshot counter.
func BackupRuns() prometheus.Counter {
	RegisterMetrics()
	return backupRunsTotal
}

// BackupCopyFailures exposes the per-file failure counter.
func BackupCopyFailures() prometheus.Counter {
	RegisterMetrics()
	return backupCopyFailures
}
