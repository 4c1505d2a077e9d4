// Package tools provides the builtin editing tools: selection, canvas
// panning, and shape drawing. Each embeds tool.Base for the shared
// gesture machine and supplies only its own hooks.
package tools
