package vault

import "errors"

var (
	// ErrNotADirectory indicates the vault root is missing or not a directory.
	ErrNotADirectory = errors.New("vault root is not a directory")

	// ErrUnsupportedAliasField indicates a document declares the `aliases`
	// front-matter key, which has no supported rendering.
	ErrUnsupportedAliasField = errors.New("front matter 'aliases' is not supported; remove it to continue")

	// ErrInvalidDate indicates a missing or unparseable `date created` /
	// `date modified` front-matter value.
	ErrInvalidDate = errors.New("invalid front matter date")

	// ErrInvalidTags indicates a `tags` value that is neither a string nor a
	// list of strings.
	ErrInvalidTags = errors.New("invalid front matter tags")

	// ErrInvalidPermalink indicates a non-string `permalink` value.
	ErrInvalidPermalink = errors.New("invalid front matter permalink")

	// ErrNotPublished indicates an operation that requires a published
	// document (output path lookup, link targeting) hit an unpublished one.
	ErrNotPublished = errors.New("document is not published")

	// ErrNotTargeted indicates an asset's output path was queried before any
	// resolved link marked it reachable.
	ErrNotTargeted = errors.New("untargeted asset has no output path")

	// ErrMissingHTML indicates a published document was written before the
	// render stage stored its HTML.
	ErrMissingHTML = errors.New("published document is missing rendered html")

	// ErrHTMLAlreadySet indicates the render stage tried to store a
	// document's HTML twice.
	ErrHTMLAlreadySet = errors.New("rendered html is already set")

	// ErrOutputExists indicates a write would overwrite an existing file.
	ErrOutputExists = errors.New("output file already exists")

	// ErrNoMatch indicates an internal link that no vault file matches.
	ErrNoMatch = errors.New("no vault file matches link url")

	// ErrAmbiguousMatch indicates an internal link matching more than one
	// vault file.
	ErrAmbiguousMatch = errors.New("ambiguous link url")

	// ErrUnsupportedLinkSyntax indicates query or `;` parameters in an
	// internal link.
	ErrUnsupportedLinkSyntax = errors.New("query or params are not allowed in internal urls")

	// ErrEmptyLink indicates an internal link with nothing left after
	// decoding and trimming.
	ErrEmptyLink = errors.New("empty link url is not allowed")

	// ErrUnsafeRewrite indicates a permalink backfill whose diff against the
	// on-disk source is anything other than the single permalink line.
	ErrUnsafeRewrite = errors.New("front matter rewrite must only add the permalink line")
)
