package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnusable         = errors.New("node cannot be materialized")
	ErrCacheUnavailable = errors.New("decision cache unavailable")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrTimeout          = errors.New("operation timeout")
	ErrTransport        = errors.New("transport failure")
	ErrClosed           = errors.New("cache closed")
)

type ProbeError struct {
	Fingerprint string
	Op          string
	Err         error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe[%s] %s: %v", e.Fingerprint, e.Op, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

func NewProbeError(fingerprint, op string, err error) *ProbeError {
	return &ProbeError{
		Fingerprint: fingerprint,
		Op:          op,
		Err:         err,
	}
}

type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config field %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func NewConfigError(field string, err error) *ConfigError {
	return &ConfigError{
		Field: field,
		Err:   err,
	}
}

func IsUnusable(err error) bool {
	return errors.Is(err, ErrUnusable)
}

func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

func IsCacheUnavailable(err error) bool {
	return errors.Is(err, ErrCacheUnavailable)
}
