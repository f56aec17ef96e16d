package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"weekplan/internal/cli"
	"weekplan/internal/model"
)

func isSlotKey(s string) bool {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "-") {
		return false
	}
	_, err := model.ParseSlotKey(s)
	return err == nil
}

// rewriteDirectSlotArgs turns `weekplan Mon-9` into `weekplan board get Mon-9`.
//
// Cobra treats the first non-flag token as a subcommand, so argv is rewritten before
// parsing. Persistent flags may come first (`weekplan --dir d Mon-9`), so the first
// positional token is searched for, not just argv[1].
func rewriteDirectSlotArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":       true,
		"--workspace": true,
		"--backend":   true,
		"--format":    true,
	}

	insert := func(i int) []string {
		out := make([]string, 0, len(argv)+2)
		out = append(out, argv[:i]...)
		out = append(out, "board", "get")
		return append(out, argv[i:]...)
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		switch {
		case a == "":
			continue
		case a == "--":
			// Subcommands must come before "--", the slot stays after it.
			if i+1 < len(argv) && isSlotKey(argv[i+1]) {
				return insert(i)
			}
			return argv
		case strings.HasPrefix(a, "-"):
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}

		if isSlotKey(a) {
			return insert(i)
		}
		return argv
	}
	return argv
}

func main() {
	os.Args = rewriteDirectSlotArgs(os.Args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := cli.NewRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
