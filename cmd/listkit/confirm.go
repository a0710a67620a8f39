package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// confirmFrom returns a prompt that reads a y/N answer from in.
func confirmFrom(in io.Reader, out io.Writer) func(prompt string) bool {
	return func(prompt string) bool {
		_, _ = fmt.Fprintf(out, "%s (y/N): ", prompt)
		answer, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && answer == "" {
			return false
		}
		answer = strings.TrimSpace(strings.ToLower(answer))
		return answer == "y" || answer == "yes"
	}
}
