// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package sigslot

import (
	"github.com/joeycumines/logiface"
)

// signalOptions holds configuration options for signal creation.
type signalOptions struct {
	logger         *logiface.Logger[logiface.Event]
	loggerSet      bool
	name           string
	singleThreaded bool
}

// --- Signal Options ---

// SignalOption configures a [Signal] or [SignalR] instance.
type SignalOption interface {
	applySignal(*signalOptions) error
}

// signalOptionImpl implements SignalOption.
type signalOptionImpl struct {
	applySignalFunc func(*signalOptions) error
}

func (o *signalOptionImpl) applySignal(opts *signalOptions) error {
	return o.applySignalFunc(opts)
}

// WithSingleThreaded removes the signal's lock entirely. All operations on
// the signal and its connections are then presumed to happen on a single
// goroutine; re-entrant emission remains safe, but [QueuedConnection]
// degrades to direct execution (there is no cross-goroutine contract to
// honor).
func WithSingleThreaded() SignalOption {
	return &signalOptionImpl{func(opts *signalOptions) error {
		opts.singleThreaded = true
		return nil
	}}
}

// WithLogger sets the structured logger for the signal, overriding the
// package-level default configured via [SetLogger]. A nil logger disables
// logging for this signal.
func WithLogger(logger *logiface.Logger[logiface.Event]) SignalOption {
	return &signalOptionImpl{func(opts *signalOptions) error {
		opts.logger = logger
		opts.loggerSet = true
		return nil
	}}
}

// WithName attaches a human-readable name to the signal, included as a field
// on its log events.
func WithName(name string) SignalOption {
	return &signalOptionImpl{func(opts *signalOptions) error {
		opts.name = name
		return nil
	}}
}

// resolveSignalOptions applies SignalOption instances to signalOptions.
func resolveSignalOptions(opts []SignalOption) (*signalOptions, error) {
	cfg := &signalOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue // Skip nil options gracefully
		}
		if err := opt.applySignal(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
