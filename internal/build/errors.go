package build

import "errors"

var (
	// ErrOutputDirExists reports an existing output directory without the
	// overwrite flag.
	ErrOutputDirExists = errors.New("output directory already exists (use --overwrite to replace it)")
	// ErrNestedOutputDir reports an output directory that is the input
	// directory, or nested either way.
	ErrNestedOutputDir = errors.New("output directory must not be the same as or nested within the input directory")
	// ErrIgnoreOutputNotTopLevel reports an ignore-output path that is not a
	// single top-level entry of the output directory.
	ErrIgnoreOutputNotTopLevel = errors.New("ignore-output path must be a top-level entry within the output directory")
)
