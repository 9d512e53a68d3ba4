package manifest

import (
	"fmt"
	"regexp"

	"golang.org/x/mod/semver"

	"github.com/releasegate/relgate/pkg/logger"
)

var rulesLog = logger.New("manifest:rules")

var (
	semverPattern      = regexp.MustCompile(`^v\d+\.\d+\.\d+(-[a-z0-9]+)?$`)
	commitShaPattern   = regexp.MustCompile(`^[a-f0-9]{40}$`)
	imageDigestPattern = regexp.MustCompile(`^sha256:[a-f0-9]{64}$`)
)

// IsSemanticVersion reports whether a version has the form v1.2.3, with an
// optional lowercase alphanumeric pre-release suffix such as v1.2.3-beta1.
func IsSemanticVersion(version string) bool {
	return semverPattern.MatchString(version)
}

// IsCommitSha reports whether a value is a full 40-character lowercase hex
// commit SHA.
func IsCommitSha(sha string) bool {
	return commitShaPattern.MatchString(sha)
}

// IsImageDigest reports whether a value is a sha256 container image digest.
func IsImageDigest(digest string) bool {
	return imageDigestPattern.MatchString(digest)
}

// CheckPolicy applies the supplemental release rules to a structurally
// valid manifest and returns the findings as warnings in a fixed order.
// Warnings are advisory and never fail a run.
//
// Production releases are expected to carry passing security scan results,
// at least one approval, passing test results, and a rollback target.
// Component version, commit SHA, and image digest fields are checked for
// format only when they are set.
func CheckPolicy(m *Manifest) []string {
	var warnings []string

	if m.Metadata.IsProd() {
		if m.Spec.SecurityScan == nil {
			warnings = append(warnings, "Production release missing security scan results")
		} else if !m.Spec.SecurityScan.Passed {
			warnings = append(warnings, "Production release has failing security scan")
		}

		if len(m.Spec.Approvals) == 0 {
			warnings = append(warnings, "Production release missing approvals")
		}

		if m.Spec.Tests == nil {
			warnings = append(warnings, "Production release missing test results")
		} else if !m.Spec.Tests.Passed {
			warnings = append(warnings, "Production release has failing tests")
		}
	}

	for _, component := range m.Spec.Components {
		if component.Version != "" && !IsSemanticVersion(component.Version) {
			warnings = append(warnings, fmt.Sprintf("Component '%s' has invalid semantic version: %s", component.Name, component.Version))
		}
		if component.CommitSha != "" && !IsCommitSha(component.CommitSha) {
			warnings = append(warnings, fmt.Sprintf("Component '%s' has invalid commit SHA: %s", component.Name, component.CommitSha))
		}
		if component.ImageDigest != "" && !IsImageDigest(component.ImageDigest) {
			warnings = append(warnings, fmt.Sprintf("Component '%s' has invalid image digest: %s", component.Name, component.ImageDigest))
		}
	}

	if m.Metadata.IsProd() && m.Spec.RollbackTarget == "" {
		warnings = append(warnings, "Production release should specify rollbackTarget")
	}
	if warning := rollbackOrderWarning(m); warning != "" {
		warnings = append(warnings, warning)
	}

	rulesLog.Printf("policy check produced %d warning(s)", len(warnings))
	return warnings
}

// rollbackOrderWarning compares the rollback target against the release
// version when both are well-formed versions. A rollback target has to
// point at an earlier release than the one being shipped.
func rollbackOrderWarning(m *Manifest) string {
	target := m.Spec.RollbackTarget
	version := m.Metadata.Version
	if target == "" || !IsSemanticVersion(target) || !IsSemanticVersion(version) {
		return ""
	}
	if semver.Compare(target, version) >= 0 {
		return fmt.Sprintf("Rollback target %s does not precede release version %s", target, version)
	}
	return ""
}
