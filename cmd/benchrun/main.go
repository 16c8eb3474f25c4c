package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"

	"github.com/pkg/errors"
)

type perftRun struct {
	label string
	fen   string
	depth int
}

var perftRuns = []perftRun{
	{"Initial", "", 3},
	{"Initial", "", 4},
	{"Initial", "", 5},
	{"Kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 3},
	{"Pos3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 5},
	{"Pos6", "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10", 3},
}

// run executes a command, prints its combined output and returns the exit code.
func run(name string, args ...string) (int, error) {
	cmd := exec.Command(name, args...)
	cmd.Env = os.Environ()
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	fmt.Print(out.String())
	if err == nil {
		return 0, nil
	}
	if ee, ok := err.(*exec.ExitError); ok {
		return ee.ExitCode(), nil
	}
	return 1, errors.Wrapf(err, "running %s", name)
}

// Runs the bench/ benchmarks, then the perft suite through cmd/perft.
// Usage: go run ./cmd/benchrun [-bench regexp] [-skip-perft]
func main() {
	log.SetFlags(0)
	log.SetPrefix("benchrun: ")

	filter := flag.String("bench", ".", "benchmark regexp passed to go test")
	benchtime := flag.String("benchtime", "1s", "go test -benchtime value")
	skipPerft := flag.Bool("skip-perft", false, "only run the benchmarks")
	flag.Parse()

	fmt.Println("Columns: BENCHMARK  N  ns/op  B/op  allocs/op")
	code, err := run("go", "test", "./bench", "-run", "^$", "-bench", *filter, "-benchmem", "-benchtime="+*benchtime)
	if err != nil {
		log.Fatal(err)
	}
	if code != 0 {
		os.Exit(code)
	}
	if *skipPerft {
		return
	}

	fmt.Println("\nPerft Performance:")
	fmt.Println("TEST \t\tDepth \t\tNodes \t\tTime \tNPS")
	for _, pr := range perftRuns {
		args := []string{"run", "./cmd/perft", "-depth", strconv.Itoa(pr.depth), "-label", pr.label}
		if pr.fen != "" {
			args = append(args, "-fen", pr.fen)
		}
		if _, err := run("go", args...); err != nil {
			log.Printf("%s depth %d: %v", pr.label, pr.depth, err)
		}
	}
}
