package toolchain

import "github.com/TomShaoquan/arduino-panda/internal/constants"

// Argument builders construct the exact flag sequences the toolchain
// accepts. Every invocation goes through one of these; nothing in panda
// concatenates command strings, so board and port identifiers never need
// shell escaping.

// CompileArgs builds the argument list for compiling a sketch.
func CompileArgs(fqbn, buildPath, sketch string) []string {
	return []string{
		"compile",
		"--build-path", buildPath,
		"--fqbn", fqbn,
		sketch,
	}
}

// DeployArgs builds the argument list for a compile that also flashes the
// result to a device (the toolchain's upload-after-compile flag).
func DeployArgs(fqbn, buildPath, port, sketch string) []string {
	return []string{
		"compile",
		"--build-path", buildPath,
		"--fqbn", fqbn,
		"-u",
		"-p", port,
		sketch,
	}
}

// UploadArgs builds the argument list for flashing a sketch or prebuilt
// artifact. importFile may be empty; when set it is passed as the explicit
// input artifact (-i).
func UploadArgs(fqbn, port, sketch, importFile string) []string {
	args := []string{
		"upload",
		"-p", port,
		"--fqbn", fqbn,
	}
	if importFile != "" {
		args = append(args, "-i", importFile)
	}
	return append(args, sketch)
}

// BoardListArgs builds the argument list for listing attached serial ports.
func BoardListArgs() []string {
	return []string{"board", "list", "--format", constants.JSONFormatFlag}
}

// CoreListArgs builds the argument list for listing installed platforms.
func CoreListArgs() []string {
	return []string{"core", "list", "--format", constants.JSONFormatFlag}
}

// BoardListAllArgs builds the argument list for listing every board a
// platform supports.
func BoardListAllArgs(platformID string) []string {
	return []string{"board", "listall", platformID, "--format", constants.JSONFormatFlag}
}

// VersionArgs builds the argument list for the version/preflight query.
func VersionArgs() []string {
	return []string{"version"}
}
