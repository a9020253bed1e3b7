// Package bom builds a bill of materials from a linked netlist.
//
// # Overview
//
// Building a BOM takes four steps:
//  1. Filter: drop components that are never purchased (test points,
//     mounting holes, parts marked Installed=NU) and sort the rest by
//     reference in natural order.
//  2. Group: partition the survivors into line items. Two components share a
//     line when value, footprint, library, part name and fitted state all
//     match (see Matcher).
//  3. Harmonize: merge the field values of each group's members into one
//     row, keeping conflicting values side by side.
//  4. Back-fill: optionally attach an external parts record (supplier, MPN,
//     ...) to each group by exact match on a few key columns.
//
// # Usage
//
//	nl, err := netfile.ParseFile("board.xml")
//	if err != nil {
//		return err
//	}
//
//	engine, err := bom.NewEngine(bom.DefaultConfig())
//	if err != nil {
//		return err
//	}
//
//	b := engine.Build(nl, nil)
//	for _, row := range b.Rows() {
//		fmt.Println(row[bom.ColReferences], row[bom.ColQuantity])
//	}
//
// # Grouping
//
// Grouping is a single greedy pass that compares each component with the
// first member of every open group. The equivalence checks are not
// transitive once value comparison by magnitude and the connector exception
// come into play, so the result depends on processing order. Components are
// always processed in natural reference order, which makes the output
// deterministic.
//
// # Diagnostics
//
// Nothing in this package fails on bad data. Unresolved library parts,
// conflicting field values, missing datasheets and ambiguous external
// records are collected in BOM.Diagnostics.
package bom
