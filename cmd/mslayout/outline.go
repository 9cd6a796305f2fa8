package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mslayout/internal/ast"
	"mslayout/internal/driver"
)

var outlineCmd = &cobra.Command{
	Use:   "outline [flags] file.bsv",
	Short: "List the modules, interfaces and typedefs a BSV file declares",
	Args:  cobra.ExactArgs(1),
	RunE:  runOutline,
}

func init() {
	outlineCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type outlineModule struct {
	MkName    string   `json:"mk"`
	Interface string   `json:"interface"`
	BVI       bool     `json:"bvi,omitempty"`
	Instances []string `json:"instances,omitempty"`
}

type outlineInterface struct {
	Name    string   `json:"name"`
	Methods []string `json:"methods,omitempty"`
}

type outlineTypedef struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
}

type outline struct {
	Modules    []outlineModule    `json:"modules"`
	Interfaces []outlineInterface `json:"interfaces"`
	Typedefs   []outlineTypedef   `json:"typedefs"`
}

func buildOutline(d *ast.Design) outline {
	o := outline{
		Modules:    []outlineModule{},
		Interfaces: []outlineInterface{},
		Typedefs:   []outlineTypedef{},
	}
	for _, m := range d.Modules.Slice() {
		om := outlineModule{MkName: m.MkName, Interface: m.Ifc.String(), BVI: m.BVI}
		for _, inst := range m.Instances {
			om.Instances = append(om.Instances, inst.Name+" <- "+inst.Ctor)
		}
		o.Modules = append(o.Modules, om)
	}
	for _, ifc := range d.Interfaces.Slice() {
		oi := outlineInterface{Name: ifc.Name.String()}
		for _, meth := range ifc.Methods {
			oi.Methods = append(oi.Methods, meth.Name)
		}
		o.Interfaces = append(o.Interfaces, oi)
	}
	for _, td := range d.Typedefs.Slice() {
		o.Typedefs = append(o.Typedefs, outlineTypedef{Kind: td.Kind.String(), Name: td.Name.String()})
	}
	return o
}

func runOutline(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	format, err := s.outputFormat(cmd)
	if err != nil {
		return err
	}
	result, err := driver.Parse(args[0], s.maxDiag)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	s.printDiagnostics(result.Bag, result.FileSet)

	o := buildOutline(result.Design)
	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(o)
	}
	useColor := s.useColor(stdoutFile(cmd))
	writeOutline(cmd.OutOrStdout(), o, useColor)
	return nil
}

func writeOutline(w io.Writer, o outline, useColor bool) {
	head := color.New(color.Bold)
	dim := color.New(color.Faint)
	if useColor {
		head.EnableColor()
		dim.EnableColor()
	} else {
		head.DisableColor()
		dim.DisableColor()
	}

	head.Fprintf(w, "modules (%d)\n", len(o.Modules))
	for _, m := range o.Modules {
		kind := ""
		if m.BVI {
			kind = dim.Sprint(" [BVI]")
		}
		fmt.Fprintf(w, "  %s :: %s%s\n", m.MkName, m.Interface, kind)
		for _, inst := range m.Instances {
			dim.Fprintf(w, "    %s\n", inst)
		}
	}
	head.Fprintf(w, "interfaces (%d)\n", len(o.Interfaces))
	for _, i := range o.Interfaces {
		fmt.Fprintf(w, "  %s", i.Name)
		if len(i.Methods) > 0 {
			dim.Fprintf(w, " %v", i.Methods)
		}
		fmt.Fprintln(w)
	}
	head.Fprintf(w, "typedefs (%d)\n", len(o.Typedefs))
	for _, t := range o.Typedefs {
		fmt.Fprintf(w, "  %-8s %s\n", t.Kind, t.Name)
	}
}
