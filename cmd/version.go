package cmd

// Version is set at build time with -ldflags "-X sss/cli/cmd.Version=...".
var Version = "0.0.0-dev"
