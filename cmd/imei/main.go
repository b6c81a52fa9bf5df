package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/erazemk/imeiwatch/internal/imei"
)

const usage = "Usage: imei <validate|check-digit> <number>..."

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "validate":
		os.Exit(cmdValidate(os.Args[2:]))
	case "check-digit":
		os.Exit(cmdCheckDigit(os.Args[2:]))
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n%s\n", os.Args[1], usage)
		os.Exit(1)
	}
}

// cmdValidate prints one line per argument and exits non-zero if any is invalid.
func cmdValidate(args []string) int {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	quiet := fs.Bool("q", false, "print nothing, only set the exit status")
	fs.Parse(args)

	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: imei validate [-q] <imei>...")
		return 1
	}

	status := 0
	for _, arg := range fs.Args() {
		number := imei.Normalize(arg)
		ok := imei.Validate(number)
		if !ok {
			status = 2
		}
		if *quiet {
			continue
		}
		if ok {
			fmt.Printf("%s\tvalid\n", number)
		} else {
			fmt.Printf("%s\tinvalid\n", number)
		}
	}
	return status
}

// cmdCheckDigit completes each 14-digit body into a full IMEI.
func cmdCheckDigit(args []string) int {
	fs := flag.NewFlagSet("check-digit", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: imei check-digit <14-digit body>...")
		return 1
	}

	for _, arg := range fs.Args() {
		body := imei.Normalize(arg)
		d, err := imei.CheckDigit(body)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", body, err)
			return 1
		}
		fmt.Printf("%s%c\n", body, d)
	}
	return 0
}
