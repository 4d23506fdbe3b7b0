package cli

// Version is the release version reported by the binary. Overridden at build
// time with -ldflags "-X github.com/colorpage/colorpage/pkg/cli.Version=1.2.3".
var Version = "0.3.1"
