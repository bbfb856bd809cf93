// Copyright (C) 2019-2024, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package leveldb

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/syndtr/goleveldb/leveldb"
)

var levelLabels = []string{"level"}

type metrics struct {
	// total number of writes that have been delayed due to compaction
	writesDelayedCount prometheus.Gauge
	// total amount of time (in ns) that writes that have been delayed due to
	// compaction
	writesDelayedDuration prometheus.Gauge
	// set to 1 if there is currently at least one write that is being delayed
	// due to compaction
	writeIsDelayed prometheus.Gauge

	// number of currently alive iterators
	aliveIterators prometheus.Gauge

	// total amount of data written
	ioWrite prometheus.Gauge
	// total amount of data read
	ioRead prometheus.Gauge

	// current number of open tables
	openTables prometheus.Gauge

	// number of tables per level
	levelTableCount *prometheus.GaugeVec
	// size of each level
	levelSize *prometheus.GaugeVec
}

func newMetrics(namespace string, reg prometheus.Registerer) (*metrics, error) {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		})
	}
	m := &metrics{
		writesDelayedCount: gauge(
			"writes_delayed",
			"number of cumulative writes that have been delayed due to compaction",
		),
		writesDelayedDuration: gauge(
			"writes_delayed_duration",
			"amount of time (in ns) that writes have been delayed due to compaction",
		),
		writeIsDelayed: gauge(
			"write_delayed",
			"1 if there is currently a write that is being delayed due to compaction",
		),
		aliveIterators: gauge(
			"alive_iterators",
			"number of currently alive iterators",
		),
		ioWrite: gauge(
			"io_write",
			"amount of data written",
		),
		ioRead: gauge(
			"io_read",
			"amount of data read",
		),
		openTables: gauge(
			"open_tables",
			"number of currently open tables",
		),
		levelTableCount: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "level_table_count",
				Help:      "number of tables in a level",
			},
			levelLabels,
		),
		levelSize: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "level_size",
				Help:      "amount of bytes in a level",
			},
			levelLabels,
		),
	}

	err := errors.Join(
		reg.Register(m.writesDelayedCount),
		reg.Register(m.writesDelayedDuration),
		reg.Register(m.writeIsDelayed),
		reg.Register(m.aliveIterators),
		reg.Register(m.ioWrite),
		reg.Register(m.ioRead),
		reg.Register(m.openTables),
		reg.Register(m.levelTableCount),
		reg.Register(m.levelSize),
	)
	return m, err
}

func (m *metrics) update(stats *leveldb.DBStats) {
	m.writesDelayedCount.Set(float64(stats.WriteDelayCount))
	m.writesDelayedDuration.Set(float64(stats.WriteDelayDuration))
	if stats.WritePaused {
		m.writeIsDelayed.Set(1)
	} else {
		m.writeIsDelayed.Set(0)
	}
	m.aliveIterators.Set(float64(stats.AliveIterators))
	m.ioWrite.Set(float64(stats.IOWrite))
	m.ioRead.Set(float64(stats.IORead))
	m.openTables.Set(float64(stats.OpenedTablesCount))

	for level, tables := range stats.LevelTablesCounts {
		m.levelTableCount.WithLabelValues(strconv.Itoa(level)).Set(float64(tables))
	}
	for level, size := range stats.LevelSizes {
		m.levelSize.WithLabelValues(strconv.Itoa(level)).Set(float64(size))
	}
}
