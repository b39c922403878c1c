// Package binary provisions prebuilt release binaries for the platform
// the action runs on.
//
// At the core, [Match] maps a runner (platform, arch) pair to a [Descriptor]
// with the release naming for that pair. The descriptor yields a [Template],
// which resolves the download url from a text/template format string; by
// default [DefaultURLFormat], which points at the GitHub release assets:
//
//	https://github.com/updatecli/updatecli/releases/download/{{.Version}}/{{.Name}}_{{.OS}}_{{.ArchName}}{{.ArchiveExtension}}
//
// The [Installer] downloads the archive, extracts it (.tar.gz or .zip, picked
// from the url suffix), stores the result in the tool cache, marks the binary
// executable on linux and darwin and finally prepends the cache directory to
// the runtime search path.
//
// example usage
//
//	rt := action.FromEnvironment()
//
//	dir, err := binary.NewInstaller().Install(ctx, rt, "v0.86.1")
//	if err != nil {
//		return fmt.Errorf("failed to provision updatecli: %w", err)
//	}
//
//	// updatecli now resolves through the runtime search path
//	harness.Run(ctx, rt, "updatecli", harness.WithArgs("version"))
package binary
