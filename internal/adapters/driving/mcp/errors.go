// Package mcp provides an MCP (Model Context Protocol) server adapter for
// Tutor. It lets AI assistants search indexed course materials and ask the
// course tutor questions over stdio or HTTP.
package mcp

import "errors"

// Errors returned when required ports are missing.
var (
	// ErrMissingAssistantService is returned when the assistant service is not provided.
	ErrMissingAssistantService = errors.New("mcp: assistant service is required")

	// ErrMissingSearchTool is returned when the search tool is not provided.
	ErrMissingSearchTool = errors.New("mcp: search tool is required")
)
