package main

import (
	"fmt"
	"os"

	"vdfquest/src/cmd"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "gather":
		err = cmd.GatherCommand(args)
	case "craft":
		err = cmd.CraftCommand(args)
	case "complete":
		err = cmd.CompleteCommand(args)
	case "verify":
		err = cmd.VerifyCommand(args)
	case "submit":
		err = cmd.SubmitCommand(args)
	case "benchmark":
		err = cmd.BenchmarkCommand(args)
	case "status":
		err = cmd.StatusCommand(args)
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf("vdfquest - a time-locked simulation built on a verifiable delay function\n\n")
	fmt.Printf("Usage:\n")
	fmt.Printf("  %s <command> [options]\n\n", os.Args[0])
	fmt.Printf("Commands:\n")
	fmt.Printf("  gather      Start a gather action with a fixed cooldown\n")
	fmt.Printf("  craft       Start a craft action using the recipe catalog\n")
	fmt.Printf("  complete    Run the prover for a started action and write its proof\n")
	fmt.Printf("  verify      Re-derive the seed from a proof and verify it\n")
	fmt.Printf("  submit      Build and print a chain submission payload for a proof\n")
	fmt.Printf("  benchmark   Benchmark modular squaring performance\n")
	fmt.Printf("  status      Print the player's state and active actions\n")
	fmt.Printf("  help        Show this help message\n\n")
	fmt.Printf("Examples:\n")
	fmt.Printf("  %s gather --duration 60\n", os.Args[0])
	fmt.Printf("  %s craft --recipe iron_sword\n", os.Args[0])
	fmt.Printf("  %s complete --action gather-1-1\n", os.Args[0])
	fmt.Printf("  %s verify --proof gather-1-1.proof.json\n", os.Args[0])
	fmt.Printf("  %s status\n", os.Args[0])
	fmt.Printf("\nFor detailed help on a command, use:\n")
	fmt.Printf("  %s <command> --help\n", os.Args[0])
}
