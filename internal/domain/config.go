package domain

import (
	"log/slog"
	"time"
)

type Mode string

const (
	ModeAPIOnly    Mode = "api_only"
	ModeWebOnly    Mode = "web_only"
	ModeAPIThenWeb Mode = "api_then_web"
	ModeAll        Mode = "all"
)

type Config struct {
	DataDir string       `json:"data_dir" yaml:"data_dir"`
	Logger  *slog.Logger `json:"-" yaml:"-"`

	Concurrency int           `json:"concurrency" yaml:"concurrency"`
	Timeout     time.Duration `json:"timeout" yaml:"timeout"`
	Deadline    time.Duration `json:"deadline" yaml:"deadline"`

	// MaxTries and MaxRuns use negative values to disable their caps;
	// zero means "unset" and takes the default.
	MaxTries int  `json:"max_tries" yaml:"max_tries"`
	MaxRuns  int  `json:"max_runs" yaml:"max_runs"`
	Force    bool `json:"force" yaml:"force"`
	Mode     Mode `json:"mode" yaml:"mode"`

	Classifier ClassifierConfig        `json:"classifier" yaml:"classifier"`
	Targets    map[string]TargetConfig `json:"targets" yaml:"targets"`
	Labeling   LabelingConfig          `json:"labeling" yaml:"labeling"`

	PlatformHint string `json:"platform_hint,omitempty" yaml:"platform_hint,omitempty"`
}

// ClassifierConfig is strict by default: only the expected auth-error
// envelope proves reachability. Permissive switches to allow-list checking.
type ClassifierConfig struct {
	Permissive           bool     `json:"permissive" yaml:"permissive"`
	AcceptStatuses       []int    `json:"accept_statuses,omitempty" yaml:"accept_statuses,omitempty"`
	InconclusiveStatuses []int    `json:"inconclusive_statuses,omitempty" yaml:"inconclusive_statuses,omitempty"`
	DenyBodyMarkers      []string `json:"deny_body_markers,omitempty" yaml:"deny_body_markers,omitempty"`
}

type TargetConfig struct {
	URL     string            `json:"url" yaml:"url"`
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
}

type LabelingConfig struct {
	Prefix         string   `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	ExcludeMarkers []string `json:"exclude_markers,omitempty" yaml:"exclude_markers,omitempty"`
}
