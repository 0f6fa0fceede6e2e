// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package receipt defines the BuildReceipt the builder (an external
// collaborator, out of scope for this repository) delivers: a mapping
// from an artifact's SHA-256 to its optimization level, variant, and
// path. The cross-validator (joinghidra.CrossValidate) reads it to
// confirm that every SHA-256 this pipeline observes actually belongs
// to the build the job claims it does.
package receipt

import "fmt"

// Job identifies the build job that produced this receipt's builds.
type Job struct {
	JobID string `json:"job_id"`
	Name  string `json:"name"`
}

// Builder names the builder profile used to produce the artifacts.
type Builder struct {
	ProfileID string `json:"profile_id"`
}

// Artifact is a single built file's identity.
type Artifact struct {
	SHA256 string `json:"sha256"`
	Path   string `json:"path"`
}

// Build is one (optimization, variant) combination's outcome.
type Build struct {
	Optimization string    `json:"optimization"`
	Variant      string    `json:"variant"`
	Status       string    `json:"status"`
	Artifact     *Artifact `json:"artifact"`
}

// Receipt is the full build receipt document.
type Receipt struct {
	Job     Job     `json:"job"`
	Builder Builder `json:"builder"`
	Builds  []Build `json:"builds"`
}

// FindBySHA256 returns the build whose artifact has the given
// SHA-256, or ok=false if no build in the receipt matches (or matched
// but has no artifact, e.g. a failed build).
func (r *Receipt) FindBySHA256(sha256 string) (Build, bool) {
	for _, b := range r.Builds {
		if b.Artifact != nil && b.Artifact.SHA256 == sha256 {
			return b, true
		}
	}
	return Build{}, false
}

// FindByVariant returns the successful build matching optimization and
// variant, or ok=false.
func (r *Receipt) FindByVariant(optimization, variant string) (Build, bool) {
	for _, b := range r.Builds {
		if b.Optimization == optimization && b.Variant == variant && b.Artifact != nil {
			return b, true
		}
	}
	return Build{}, false
}

// String renders a build for error messages.
func (b Build) String() string {
	sha := "<none>"
	if b.Artifact != nil {
		sha = b.Artifact.SHA256
	}
	return fmt.Sprintf("%s/%s(%s)=%s", b.Optimization, b.Variant, b.Status, sha)
}
