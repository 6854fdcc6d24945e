package report

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/ushigai/LuckyDefense-tools/internal/engine"
	"github.com/ushigai/LuckyDefense-tools/internal/party"
)

type ExitError struct {
	Code int
	Err  error
}

func (e ExitError) Error() string {
	if e.Err == nil {
		return "exit"
	}
	return e.Err.Error()
}

func (e ExitError) Unwrap() error {
	return e.Err
}

func Exit(code int) error {
	return ExitError{Code: code}
}

func ExitWithError(code int, err error) error {
	return ExitError{Code: code, Err: err}
}

func asExitError(err error) (ExitError, bool) {
	if err == nil {
		return ExitError{}, false
	}
	ee, ok := err.(ExitError)
	return ee, ok
}

// RunCLI executes the comparison flow and returns the desired process exit code.
func RunCLI(ctx context.Context, args []string) int {
	if err := run(ctx, args); err != nil {
		if ee, ok := asExitError(err); ok {
			if ee.Err != nil && ee.Code != 0 {
				fmt.Fprintln(os.Stderr, ee.Err)
			}
			return ee.Code
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("share_report", flag.ContinueOnError)
	engineURL := fs.String("engine", "http://localhost:8000", "damage engine base URL")
	partyFile := fs.String("party", "", "path to base party JSON (options + party)")
	outDir := fs.String("out", "output/share_report", "output directory")
	name := fs.String("name", "comparison", "report name used in the output filename")
	if err := fs.Parse(args); err != nil {
		return Exit(2)
	}

	urls := fs.Args()
	if len(urls) == 0 {
		return ExitWithError(2, fmt.Errorf("usage: share_report [flags] <share-url> [<share-url>...]"))
	}
	if *partyFile == "" {
		return ExitWithError(2, fmt.Errorf("-party is required"))
	}

	base, err := loadBaseRequest(*partyFile)
	if err != nil {
		return err
	}

	fmt.Printf("Evaluating %d share configurations...\n", len(urls))
	rows, err := Build(ctx, engine.New(*engineURL), base, urls)
	if err != nil {
		return err
	}

	path, err := ExportComparisonXLSX(*outDir, *name, rows)
	if err != nil {
		return err
	}
	fmt.Printf("done. report: %s\n", path)
	return nil
}

func loadBaseRequest(path string) (party.CalcRequest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return party.CalcRequest{}, fmt.Errorf("read party file (%s): %w", path, err)
	}
	var req party.CalcRequest
	if err := json.Unmarshal(b, &req); err != nil {
		return party.CalcRequest{}, fmt.Errorf("parse party file (%s): %w", path, err)
	}
	if len(req.Party) == 0 {
		return party.CalcRequest{}, fmt.Errorf("party file (%s) has no members", path)
	}
	return req, nil
}
