package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Run mode errors
	ModeInvalidArgumentError
	ModeTooManyArgumentsError
	ModePromptError

	// Catalog errors
	CatalogReadError
	CatalogParseError
	CatalogRenderError
	CatalogInvalidError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBCursorClosedError
	DBCloseError

	// Load errors
	LoadNoCatalogError
	LoadStatementError

	// Source data errors
	SourcesPathError
	SourcesCheckError
	SourcesEmptyError
)
