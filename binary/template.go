package binary

import (
	"strings"
	"text/template"
)

// Template contains the fields available when resolving release urls.
// e.g. "https://github.com/updatecli/updatecli/releases/download/{{.Version}}/updatecli_{{.OS}}_{{.ArchName}}{{.ArchiveExtension}}"
type Template struct {
	// OS is the operating system as spelled in release assets (e.g., "Linux", "Windows")
	OS string
	// ArchName is the architecture as spelled in release assets (e.g., "x86_64")
	ArchName string

	// Name of the binary
	Name string
	// Version is the requested version, verbatim
	Version string
	// ArchiveExtension is the release archive extension, including the leading dot.
	ArchiveExtension string
	// Extension is the file extension for the binary.
	// Usually it's empty on unix systems and ".exe" on windows.
	Extension string
}

// Resolve executes the provided format string as a template with the Template's fields.
// It returns the resolved string and any error that occurred during template parsing or execution.
func (t Template) Resolve(format string) (string, error) {
	tmpl, err := template.New("bin").Option("missingkey=error").Parse(format)
	if err != nil {
		return "", err
	}

	var bld strings.Builder
	if err := tmpl.Execute(&bld, t); err != nil {
		return "", err
	}

	return bld.String(), nil
}
