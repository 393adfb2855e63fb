// Package mcptool exposes transcript retrieval as a Model Context Protocol
// tool served over stdio.
package mcptool
