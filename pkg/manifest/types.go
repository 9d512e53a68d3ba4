// Package manifest defines the release manifest model, loads manifest and
// schema documents from disk, and applies the supplemental release policy
// checks that run after structural validation.
package manifest

import (
	"github.com/releasegate/relgate/pkg/constants"
)

// Manifest is a release manifest document.
type Manifest struct {
	Metadata Metadata `yaml:"metadata" json:"metadata"`
	Spec     Spec     `yaml:"spec" json:"spec"`
}

// Metadata identifies a release and its target environment.
type Metadata struct {
	Environment string `yaml:"environment" json:"environment"`
	Version     string `yaml:"version" json:"version"`
}

// IsProd reports whether the release targets the production environment.
func (m Metadata) IsProd() bool {
	return m.Environment == constants.EnvironmentProd
}

// Spec lists the release contents and its promotion evidence.
type Spec struct {
	Components     []Component `yaml:"components" json:"components"`
	SecurityScan   *ScanResult `yaml:"securityScan,omitempty" json:"securityScan,omitempty"`
	Approvals      []Approval  `yaml:"approvals,omitempty" json:"approvals,omitempty"`
	Tests          *TestReport `yaml:"tests,omitempty" json:"tests,omitempty"`
	RollbackTarget string      `yaml:"rollbackTarget,omitempty" json:"rollbackTarget,omitempty"`
}

// Component is one deployable unit within a release.
type Component struct {
	Name        string `yaml:"name" json:"name" console:"header:Component"`
	Version     string `yaml:"version" json:"version" console:"header:Version"`
	CommitSha   string `yaml:"commitSha,omitempty" json:"commitSha,omitempty" console:"header:Commit,maxlen:12,default:-"`
	ImageDigest string `yaml:"imageDigest,omitempty" json:"imageDigest,omitempty" console:"header:Digest,maxlen:26,default:-"`
}

// ScanResult records a security scan outcome.
type ScanResult struct {
	Passed      bool   `yaml:"passed" json:"passed"`
	Scanner     string `yaml:"scanner,omitempty" json:"scanner,omitempty"`
	CompletedAt string `yaml:"completedAt,omitempty" json:"completedAt,omitempty"`
}

// TestReport records a test run outcome.
type TestReport struct {
	Passed bool `yaml:"passed" json:"passed"`
	Total  int  `yaml:"total,omitempty" json:"total,omitempty"`
	Failed int  `yaml:"failed,omitempty" json:"failed,omitempty"`
}

// Approval is one recorded sign-off on a release.
type Approval struct {
	Approver   string `yaml:"approver,omitempty" json:"approver,omitempty"`
	Role       string `yaml:"role,omitempty" json:"role,omitempty"`
	ApprovedAt string `yaml:"approvedAt,omitempty" json:"approvedAt,omitempty"`
}
