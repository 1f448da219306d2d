// SPDX-License-Identifier: MPL-2.0

package publish

import "github.com/goots/pom-deployer/pkg/types"

type (
	// Request is one add-pom invocation. The version is not part of it: the
	// descriptor is always published under the host project's version.
	Request struct {
		// PomName is the descriptor file to publish.
		PomName    types.FilesystemPath
		GroupID    types.GroupID
		ArtifactID types.ArtifactID

		// Skip turns the request into a no-op.
		Skip bool
		// ErrorOnMissing fails the request when PomName does not exist;
		// otherwise a missing descriptor is a logged no-op.
		ErrorOnMissing bool

		// AltDeploymentRepository is an id::layout::url override for
		// release versions, and for snapshot versions without
		// AltSnapshotDeploymentRepository.
		AltDeploymentRepository string
		// AltSnapshotDeploymentRepository is an id::layout::url override
		// used for snapshot versions only.
		AltSnapshotDeploymentRepository string
	}

	// Outcome is the decision of the input gate.
	Outcome int
)

const (
	// OutcomeProceed means install and deploy run.
	OutcomeProceed Outcome = iota
	// OutcomeSkip means the request was skipped.
	OutcomeSkip
	// OutcomeMissing means the descriptor was missing and the request became a no-op.
	OutcomeMissing
	// OutcomeFail means the descriptor was missing and the request must fail.
	OutcomeFail
)

// Validate checks the required fields and returns an InvalidRequestError
// listing every invalid one.
func (r Request) Validate() error {
	var errs []error
	if err := r.PomName.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := r.GroupID.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := r.ArtifactID.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return &InvalidRequestError{FieldErrors: errs}
	}
	return nil
}

// Gate decides what happens to a request given its skip flag, whether the
// descriptor exists and the errorOnMissing flag. Skip wins over everything.
func Gate(skip, fileExists, errorOnMissing bool) Outcome {
	switch {
	case skip:
		return OutcomeSkip
	case fileExists:
		return OutcomeProceed
	case errorOnMissing:
		return OutcomeFail
	default:
		return OutcomeMissing
	}
}

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeProceed:
		return "proceed"
	case OutcomeSkip:
		return "skip"
	case OutcomeMissing:
		return "missing"
	case OutcomeFail:
		return "fail"
	default:
		return "unknown"
	}
}
