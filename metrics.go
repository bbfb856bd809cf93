// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package aggsig

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	modeLabel   = "mode"
	resultLabel = "result"

	statelessMode = "stateless"
	statefulMode  = "stateful"

	validResult   = "valid"
	invalidResult = "invalid"
	errorResult   = "error"

	createdResult = "created"
	existsResult  = "exists"
)

type metrics struct {
	verifications   *prometheus.CounterVec
	registrations   *prometheus.CounterVec
	aggregationSize prometheus.Histogram
}

func newMetrics(namespace string, reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		verifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "verifications_total",
				Help:      "number of signature verifications by mode and result",
			},
			[]string{modeLabel, resultLabel},
		),
		registrations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "registrations_total",
				Help:      "number of signer registrations by result",
			},
			[]string{resultLabel},
		),
		aggregationSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "aggregation_size",
			Help:      "number of signers named by a stateful verification",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}
	return m, errors.Join(
		reg.Register(m.verifications),
		reg.Register(m.registrations),
		reg.Register(m.aggregationSize),
	)
}

func (m *metrics) observeVerification(mode string, err error) {
	result := validResult
	switch {
	case errors.Is(err, ErrSignatureInvalid):
		result = invalidResult
	case err != nil:
		result = errorResult
	}
	m.verifications.WithLabelValues(mode, result).Inc()
}

func (m *metrics) observeRegistration(err error) {
	result := createdResult
	switch {
	case errors.Is(err, ErrAlreadyExists):
		result = existsResult
	case errors.Is(err, ErrInvalidRecord):
		result = invalidResult
	case err != nil:
		result = errorResult
	}
	m.registrations.WithLabelValues(result).Inc()
}
