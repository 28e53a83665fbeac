package listing

import (
	"github.com/Masterminds/semver/v3"
	"go.uber.org/multierr"

	"github.com/wippyai/flowopt/ast"
	"github.com/wippyai/flowopt/errors"
	"github.com/wippyai/flowopt/listing/internal/parser"
	"github.com/wippyai/flowopt/listing/internal/token"
)

const (
	// FormatVersion is written by Format and assumed for listings without
	// a version header.
	FormatVersion = "1.0.0"
	// VersionConstraint is the range of listing versions Parse accepts.
	VersionConstraint = "^1.0"
)

// Program is a parsed listing.
type Program struct {
	Version *semver.Version
	Methods []*ast.Method
}

// Method returns the first method with the given name.
func (p *Program) Method(name string) (*ast.Method, bool) {
	for _, m := range p.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// Parse reads a listing.
//
// A version header outside VersionConstraint fails the whole listing.
// Otherwise every method that parses is returned, together with an error
// combining one *errors.Error per method that did not; use
// multierr.Errors to split it.
func Parse(src string) (*Program, error) {
	f, perr := parser.New(token.Tokenize(src)).Parse()

	version, err := checkVersion(f.Version)
	if err != nil {
		return nil, err
	}

	var errs error
	for _, e := range multierr.Errors(perr) {
		errs = multierr.Append(errs, errors.ParseFailed("listing", e))
	}
	return &Program{Version: version, Methods: f.Methods}, errs
}

func checkVersion(raw string) (*semver.Version, error) {
	if raw == "" {
		raw = FormatVersion
	}
	v, err := semver.NewVersion(raw)
	if err != nil {
		return nil, errors.New(errors.PhaseParse, errors.KindVersion).
			Value(raw).
			Cause(err).
			Detail("invalid version %q", raw).
			Build()
	}
	c, err := semver.NewConstraint(VersionConstraint)
	if err != nil {
		return nil, err
	}
	if !c.Check(v) {
		return nil, errors.UnsupportedVersion(v.String(), VersionConstraint)
	}
	return v, nil
}
