// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package oracledwarf is the source-of-truth extractor: it parses
// DWARF debug information out of a compiled ELF binary, enumerates
// its functions, gates the binary and each function against the
// frozen policy profile, and emits a per-function multiset of
// (source_file, source_line) evidence rows.
package oracledwarf

import (
	"bytes"
	"crypto/sha256"
	"debug/dwarf"
	"debug/elf"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

// Binary is an opened ELF binary plus the identity and section
// information the gate (Verdict.GateBinary) and the rest of the
// oracle need.
type Binary struct {
	Path   string
	SHA256 string

	Class      elf.Class
	Machine    elf.Machine
	ByteOrder  binary.ByteOrder
	BuildID    string // hex, empty if absent
	Sections   map[string]bool
	SplitDWARF bool

	elf      *elf.File
	dwarf    *dwarf.Data // nil if DWARF failed to load or is absent
	dwarfErr error       // set only if .debug_info is present but failed to parse
	file     *os.File
}

// DWARFError returns the error encountered parsing .debug_info, if
// any. GateBinary uses this to distinguish a present-but-malformed
// section (DWARF_PARSE_ERROR) from a genuinely absent one
// (NO_DEBUG_INFO).
func (b *Binary) DWARFError() error {
	return b.dwarfErr
}

// OpenBinary opens path, validates it as ELF, and reads enough of its
// structure to support gating and function indexing. It does not
// itself REJECT anything; it returns an error only for tier-1
// input-structural failures (not an ELF file at all, truncated
// header). Missing debug info or unsupported architecture are
// recorded for the gate, not raised as errors.
func OpenBinary(path string) (*Binary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	sha, err := hashFile(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("hashing %s: %w", path, err)
	}

	ef, err := elf.NewFile(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: not a valid ELF file: %w", path, err)
	}

	b := &Binary{
		Path:      path,
		SHA256:    sha,
		Class:     ef.Class,
		Machine:   ef.Machine,
		ByteOrder: ef.ByteOrder,
		Sections:  make(map[string]bool),
		elf:       ef,
		file:      f,
	}
	for _, s := range ef.Sections {
		b.Sections[s.Name] = true
	}

	b.BuildID = readBuildID(ef)
	b.SplitDWARF = b.Sections[".gnu_debugaltlink"]

	if b.Sections[".debug_info"] {
		if dw, err := ef.DWARF(); err == nil {
			b.dwarf = dw
		} else {
			b.dwarfErr = err
		}
	}
	if !b.SplitDWARF && b.dwarf != nil {
		b.SplitDWARF = hasDWOCompileUnit(b.dwarf)
	}

	return b, nil
}

// Close releases the underlying file handle.
func (b *Binary) Close() error {
	return b.file.Close()
}

// Is64Bit reports whether this is a 64-bit Intel/AMD binary, the only
// architecture this pipeline supports (spec.md §1, §4.4).
func (b *Binary) Is64Bit() bool {
	return b.Class == elf.ELFCLASS64 && b.Machine == elf.EM_X86_64
}

func hashFile(f *os.File) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// readBuildID extracts the GNU build-id note, if present. ELF notes
// are a sequence of (namesz, descsz, type, name, desc) records; debug/elf
// doesn't expose a generic reader for non-core-file notes, so this
// walks the section's raw bytes directly.
func readBuildID(ef *elf.File) string {
	sec := ef.Section(".note.gnu.build-id")
	if sec == nil {
		return ""
	}
	data, err := sec.Data()
	if err != nil {
		return ""
	}
	for len(data) >= 12 {
		nameSz := ef.ByteOrder.Uint32(data[0:4])
		descSz := ef.ByteOrder.Uint32(data[4:8])
		typ := ef.ByteOrder.Uint32(data[8:12])
		off := 12
		nameEnd := off + align4(int(nameSz))
		descEnd := nameEnd + align4(int(descSz))
		if descEnd > len(data) || nameEnd > len(data) {
			break
		}
		name := data[off:off+int(nameSz)]
		desc := data[nameEnd : nameEnd+int(descSz)]
		if typ == 3 /* NT_GNU_BUILD_ID */ && bytes.HasPrefix(name, []byte("GNU\x00")) {
			return hex.EncodeToString(desc)
		}
		data = data[descEnd:]
	}
	return ""
}

func align4(n int) int {
	return (n + 3) &^ 3
}

func hasDWOCompileUnit(dw *dwarf.Data) bool {
	r := dw.Reader()
	for {
		ent, err := r.Next()
		if ent == nil || err != nil {
			break
		}
		if ent.Tag != dwarf.TagCompileUnit {
			r.SkipChildren()
			continue
		}
		if name, ok := ent.Val(dwarf.AttrName).(string); ok && strings.HasSuffix(name, ".dwo") {
			return true
		}
		// DW_AT_GNU_dwo_name (0x2130): present on skeleton CUs in
		// the split-DWARF (.dwo) convention predating DWARF5's
		// standardized DW_AT_dwo_name (0x76).
		if _, ok := ent.Val(dwarf.Attr(0x2130)).(string); ok {
			return true
		}
		if _, ok := ent.Val(dwarf.Attr(0x76)).(string); ok {
			return true
		}
		r.SkipChildren()
	}
	return false
}

// CompilationUnit is one DWARF CU, positioned for DIE-tree iteration.
type CompilationUnit struct {
	Offset   dwarf.Offset
	Index    int
	CompDir  string
	Name     string
	Language int64
	Entry    *dwarf.Entry
}

// CompilationUnits returns every CU in the binary's DWARF data, in
// file order. Returns nil if the binary has no usable DWARF data.
func (b *Binary) CompilationUnits() ([]CompilationUnit, error) {
	if b.dwarf == nil {
		return nil, nil
	}
	var out []CompilationUnit
	r := b.dwarf.Reader()
	idx := 0
	for {
		ent, err := r.Next()
		if err != nil {
			return nil, fmt.Errorf("reading DWARF DIE tree: %w", err)
		}
		if ent == nil {
			break
		}
		if ent.Tag != dwarf.TagCompileUnit {
			r.SkipChildren()
			continue
		}
		compDir, _ := ent.Val(dwarf.AttrCompDir).(string)
		name, _ := ent.Val(dwarf.AttrName).(string)
		lang, _ := ent.Val(dwarf.AttrLanguage).(int64)
		out = append(out, CompilationUnit{
			Offset:   ent.Offset,
			Index:    idx,
			CompDir:  compDir,
			Name:     name,
			Language: lang,
			Entry:    ent,
		})
		idx++
		r.SkipChildren()
	}
	return out, nil
}

// DWARF returns the parsed DWARF data, or nil if unavailable.
func (b *Binary) DWARF() *dwarf.Data {
	return b.dwarf
}
