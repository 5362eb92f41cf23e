package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-authgate/edgegate/internal/bootstrap"
	"github.com/go-authgate/edgegate/internal/config"
	"github.com/go-authgate/edgegate/internal/version"
)

func main() {
	// Define flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	flag.Usage = printUsage
	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		version.PrintVersion()
		os.Exit(0)
	}

	// Check if command is provided
	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	// Handle subcommands
	switch args[0] {
	case "server":
		runServer()
	case "hash-password":
		if err := runHashPassword(args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
			fmt.Fprintf(os.Stderr, "hash-password: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Printf("Unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf("Usage: %s [OPTIONS] COMMAND\n\n", os.Args[0])
	fmt.Println("Authentication and HTTPS redirect gate")
	fmt.Println("\nCommands:")
	fmt.Println("  server           Start the gate")
	fmt.Println("  hash-password    Print ADMIN_SALT and ADMIN_PASSWORD_HASH for a password")
	fmt.Println("\nOptions:")
	fmt.Println("  -v, --version    Show version information")
	fmt.Println("  -h, --help       Show this help message")
}

func runServer() {
	cfg := config.Load()

	if err := bootstrap.Run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "edgegate: %v\n", err)
		os.Exit(1)
	}
}
