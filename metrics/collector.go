/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package metrics exports the lock counters of tcol structures to Prometheus.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"dirpx.dev/tcol/iterator"
	"dirpx.dev/tcol/lock"
)

// Source is any structure guarded by a lock.Stamped.
type Source interface {
	LockStats() lock.Stats
}

// SourceFunc adapts a function to Source.
type SourceFunc func() lock.Stats

// LockStats calls f.
func (f SourceFunc) LockStats() lock.Stats { return f() }

type tracked struct {
	name string
	src  Source
}

// Collector is a prometheus.Collector reporting, per tracked structure, how
// many reads validated optimistically, how many fell back to the shared
// permit, and how many writes ran.
type Collector struct {
	optimistic *prometheus.Desc
	fallback   *prometheus.Desc
	writes     *prometheus.Desc

	// mu serializes Track and Untrack; Collect works on a snapshot of the list.
	mu      sync.Mutex
	sources *iterator.List[tracked]
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector returns a Collector whose metric names start with namespace.
func NewCollector(namespace string) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "lock", name),
			help, []string{"structure"}, nil,
		)
	}
	return &Collector{
		optimistic: desc("optimistic_reads_total", "Reads that validated without taking the shared permit."),
		fallback:   desc("fallback_reads_total", "Reads that ran under the shared permit."),
		writes:     desc("writes_total", "Exclusive sections entered."),
		sources:    iterator.NewList[tracked](),
	}
}

// Track reports src under the structure label name, replacing any source
// already tracked under that name.
func (c *Collector) Track(name string, src Source) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sources.RemoveFunc(func(t tracked) bool { return t.name == name })
	c.sources.Append(tracked{name: name, src: src})
}

// Untrack stops reporting name. It reports whether name was tracked.
func (c *Collector) Untrack(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sources.RemoveFunc(func(t tracked) bool { return t.name == name }) > 0
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.optimistic
	ch <- c.fallback
	ch <- c.writes
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, t := range c.sources.Snapshot() {
		st := t.src.LockStats()
		ch <- prometheus.MustNewConstMetric(c.optimistic, prometheus.CounterValue, float64(st.OptimisticReads), t.name)
		ch <- prometheus.MustNewConstMetric(c.fallback, prometheus.CounterValue, float64(st.FallbackReads), t.name)
		ch <- prometheus.MustNewConstMetric(c.writes, prometheus.CounterValue, float64(st.Writes), t.name)
	}
}
