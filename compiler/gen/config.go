package gen

import "github.com/Leylan24/drift/compiler/load"

// Config holds the settings for a resolution and generation run.
type Config struct {
	// Package is the import path of the generated package.
	// For example: "github.com/org/project/db".
	Package string

	// Target is the directory generated code is written to.
	Target string

	// Header is an optional comment placed at the top of each
	// generated file.
	Header string

	// Options carries the build options loaded from the options file.
	Options load.Options

	// Hooks are applied to the generator, outermost first.
	Hooks []Hook

	// Generator overrides the default code generator.
	Generator Generator
}

// Generator generates code for a resolved graph.
type Generator interface {
	Generate(*Graph) error
}

// GenerateFunc allows an ordinary function to be used as a Generator.
type GenerateFunc func(*Graph) error

// Generate implements the Generator interface.
func (f GenerateFunc) Generate(g *Graph) error { return f(g) }

// Hook wraps a Generator with additional behavior, such as logging or
// output filtering.
type Hook func(Generator) Generator

// pkgName returns the short name of the generated package.
func (c *Config) pkgName() string {
	pkg := c.Package
	for i := len(pkg) - 1; i >= 0; i-- {
		if pkg[i] == '/' {
			return pkg[i+1:]
		}
	}
	return pkg
}
