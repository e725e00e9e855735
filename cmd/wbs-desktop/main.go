package main

import (
	"fmt"
	"os"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "--help", "-h", "help":
			showUsage()
			return
		case "version", "--version":
			fmt.Println("wbs-desktop", version)
			return
		case "serve":
			exit(runServe(os.Args[1:]))
			return
		}
	}

	// Desktop mode: the file to open, if any, is os.Args[1].
	exit(runDesktop(os.Args))
}

func exit(code int, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
	os.Exit(code)
}

func showUsage() {
	fmt.Println(`wbs-desktop - desktop shell for the WBS editor

USAGE:
    wbs-desktop [FILE.wbs]          Open the editor window
    wbs-desktop serve [FILE.wbs]    Serve the editor over a local websocket bridge
    wbs-desktop version             Print the version

FLAGS:
    -h, --help         Show this help message

CONFIGURATION:
    Config file: $WBSDESK_CONFIG or <user config dir>/wbs-desktop/config.yaml
    Environment: WBSDESK_* variables override config`)
}
