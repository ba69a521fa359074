// Package main is the entry point for the sss identity client.
package main

import (
	"sss/cli/cmd"
)

func main() {
	cmd.Execute()
}
