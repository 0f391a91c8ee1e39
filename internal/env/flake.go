// flake.go renders the flake.nix manifest from the environment catalog.
//
// The manifest is what the external manager actually consumes: it pins the
// upstream package sources and declares, per supported platform, one shell
// per catalog entry with its display name, package list, and startup hook.
// The committed flake.nix at the repository root is exactly RenderFlake's
// output; a test keeps the two from drifting apart.
package env

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"
)

//go:embed flake.tmpl
var flakeTemplateText string

var flakeTemplate = template.Must(template.New("flake").Parse(flakeTemplateText))

// flakeView is the template input: one shell block per catalog entry.
type flakeView struct {
	Shells []shellView
}

// shellView is a Descriptor reshaped for the template.
type shellView struct {
	// Attr is the devShell attribute name (the environment name).
	Attr string

	// Name is the mkShell derivation name.
	Name string

	// Packages and Hook are emitted one line each, already in order.
	Packages []string
	Hook     []string
}

// RenderFlake renders the manifest for every built-in environment.
//
// The output is deterministic: the catalog is a fixed slice and the
// template adds no runtime-dependent content, so rendering twice yields
// identical bytes.
func RenderFlake() ([]byte, error) {
	view := flakeView{}
	for _, d := range Descriptors() {
		view.Shells = append(view.Shells, shellView{
			Attr:     d.Name,
			Name:     d.DisplayName,
			Packages: d.Packages,
			Hook:     d.Hook,
		})
	}

	var buf bytes.Buffer
	if err := flakeTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("failed to render flake manifest: %w", err)
	}

	return buf.Bytes(), nil
}
