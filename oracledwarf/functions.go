// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oracledwarf

import (
	"debug/dwarf"
	"fmt"
	"path"
	"sort"

	"github.com/ianlancetaylor/demangle"
)

// AddrRange is a half-open address range [Low, High).
type AddrRange struct {
	Low, High uint64
}

// DeclSite is a function's declaration-site source triple.
type DeclSite struct {
	File   string
	Line   int
	Column int
}

// Function is one DWARF subprogram (or inlined subprogram) entry.
type Function struct {
	ID string // "cu:{cu_offset:x}:die:{die_offset:x}"

	CUOffset  dwarf.Offset
	DIEOffset dwarf.Offset

	Name          *string
	LinkageName   *string
	DemangledName *string
	IsDeclaration bool
	Ranges        []AddrRange
	Decl          DeclSite
	CompDir       string
}

// FuncID renders the stable identity string for a (cuOffset, dieOffset)
// pair per spec.md §4.2.
func FuncID(cuOffset, dieOffset dwarf.Offset) string {
	return fmt.Sprintf("cu:%x:die:%x", cuOffset, dieOffset)
}

// IndexFunctions walks every CU's DIE tree and collects subprogram and
// inlined-subprogram entries. Output is ordered: CUs in file order,
// and within a CU, DIEs in offset order (the natural order of a
// depth-first DWARF walk).
func (b *Binary) IndexFunctions() ([]Function, error) {
	if b.dwarf == nil {
		return nil, nil
	}

	var out []Function
	r := b.dwarf.Reader()
	var curCU *dwarf.Entry
	var curCompDir string

	for {
		ent, err := r.Next()
		if err != nil {
			return nil, fmt.Errorf("reading DWARF DIE tree: %w", err)
		}
		if ent == nil {
			break
		}

		switch ent.Tag {
		case dwarf.TagCompileUnit:
			curCU = ent
			curCompDir, _ = ent.Val(dwarf.AttrCompDir).(string)

		case dwarf.TagSubprogram, dwarf.TagInlinedSubroutine:
			if curCU == nil {
				continue
			}
			fn, err := buildFunction(b.dwarf, curCU, curCompDir, ent)
			if err != nil {
				return nil, err
			}
			out = append(out, fn)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CUOffset != out[j].CUOffset {
			return out[i].CUOffset < out[j].CUOffset
		}
		return out[i].DIEOffset < out[j].DIEOffset
	})

	return out, nil
}

func buildFunction(dw *dwarf.Data, cu *dwarf.Entry, compDir string, ent *dwarf.Entry) (Function, error) {
	fn := Function{
		ID:        FuncID(cu.Offset, ent.Offset),
		CUOffset:  cu.Offset,
		DIEOffset: ent.Offset,
		CompDir:   compDir,
	}

	if name, ok := ent.Val(dwarf.AttrName).(string); ok {
		fn.Name = &name
	}
	if linkage, ok := ent.Val(dwarf.AttrLinkageName).(string); ok {
		fn.LinkageName = &linkage
		if dn, ok := demangleName(linkage); ok {
			fn.DemangledName = &dn
		}
	} else if linkage, ok := ent.Val(dwarf.Attr(0x2007) /* DW_AT_MIPS_linkage_name */).(string); ok {
		fn.LinkageName = &linkage
		if dn, ok := demangleName(linkage); ok {
			fn.DemangledName = &dn
		}
	}

	ranges, err := functionRanges(dw, ent)
	if err != nil {
		return Function{}, err
	}
	fn.Ranges = ranges
	fn.IsDeclaration = isDeclTrue(ent) && len(ranges) == 0

	if file, ok := ent.Val(dwarf.AttrDeclFile).(int64); ok {
		fn.Decl.File = resolveDeclFile(dw, cu, file)
	}
	if line, ok := ent.Val(dwarf.AttrDeclLine).(int64); ok {
		fn.Decl.Line = int(line)
	}
	if col, ok := ent.Val(dwarf.AttrDeclColumn).(int64); ok {
		fn.Decl.Column = int(col)
	}
	if fn.Decl.File != "" && !path.IsAbs(fn.Decl.File) && compDir != "" {
		fn.Decl.File = path.Join(compDir, fn.Decl.File)
	}

	return fn, nil
}

func isDeclTrue(ent *dwarf.Entry) bool {
	v, ok := ent.Val(dwarf.AttrDeclaration).(bool)
	return ok && v
}

// functionRanges computes a function's address ranges: a single range
// from DW_AT_low_pc/high_pc, or the full segment list from
// DW_AT_ranges, per spec.md §4.2.
func functionRanges(dw *dwarf.Data, ent *dwarf.Entry) ([]AddrRange, error) {
	if low, ok := ent.Val(dwarf.AttrLowpc).(uint64); ok {
		if high, ok := highPC(ent, low); ok {
			if high > low {
				return []AddrRange{{low, high}}, nil
			}
			return nil, nil
		}
	}

	ranges, err := dw.Ranges(ent)
	if err != nil {
		// The ranges attribute may reference a malformed or
		// missing .debug_ranges offset; treat as no ranges rather
		// than a fatal error so indexing can proceed to the next
		// function.
		return nil, nil
	}
	out := make([]AddrRange, 0, len(ranges))
	for _, rg := range ranges {
		if rg[1] > rg[0] {
			out = append(out, AddrRange{rg[0], rg[1]})
		}
	}
	return out, nil
}

// highPC resolves DW_AT_high_pc, which DWARF4+ producers may encode
// as an absolute address (uint64) or as a size offset from low
// (int64/uint64 with form != Addr, per DWARF4 2.17.2).
func highPC(ent *dwarf.Entry, low uint64) (uint64, bool) {
	f := ent.AttrField(dwarf.AttrHighpc)
	if f == nil {
		return 0, false
	}
	switch v := f.Val.(type) {
	case uint64:
		if f.Class == dwarf.ClassAddress {
			return v, true
		}
		return low + v, true
	case int64:
		return low + uint64(v), true
	}
	return 0, false
}

func resolveDeclFile(dw *dwarf.Data, cu *dwarf.Entry, fileIdx int64) string {
	// DW_AT_decl_file indexes the CU's line-program file table, same
	// convention and 1-based/0-based subtlety as line-row file
	// resolution (spec.md §4.3, §9 open question (a)).
	lr, err := dw.LineReader(cu)
	if err != nil || lr == nil {
		return ""
	}
	files := lr.Files()
	idx := int(fileIdx)
	if idx < 0 || idx >= len(files) || files[idx] == nil {
		return ""
	}
	return files[idx].Name
}

func demangleName(mangled string) (string, bool) {
	result, err := demangle.ToString(mangled, demangle.NoClones)
	if err != nil {
		return "", false
	}
	if result == mangled {
		return "", false
	}
	return result, true
}
