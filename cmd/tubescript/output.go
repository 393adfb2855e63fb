package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiReset = "\033[0m"
)

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func styled(colorize bool, style, text string) string {
	if !colorize || text == "" {
		return text
	}
	return style + text + ansiReset
}
