// Command aiken inspects and transforms contract blueprint
// documents: verifying validator identities, recomputing hashes, and
// applying compile-time parameters.
//
//	aiken blueprint verify
//	aiken blueprint hash <validator>
//	aiken blueprint apply <validator> [param.json ...]
//
// The blueprint path and worker count come from the environment:
// BLUEPRINT_PATH (default plutus.json) and WORKERS.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/v0d1ch/aiken/blueprint"
	"github.com/v0d1ch/aiken/env"
	"github.com/v0d1ch/aiken/log"
	"github.com/v0d1ch/aiken/protocol/uplc"
)

// config vars
var (
	path    = env.String("BLUEPRINT_PATH", "plutus.json")
	workers = env.Int("WORKERS", 4)
)

// We collect log output in this buffer,
// and display it only when there's an error.
var logbuf bytes.Buffer

type command struct {
	f func(*blueprint.Blueprint, []string)
}

var commands = map[string]*command{
	"verify": {verify},
	"hash":   {hash},
	"apply":  {apply},
}

func main() {
	log.SetOutput(&logbuf)
	env.Parse()

	if len(os.Args) < 3 || os.Args[1] != "blueprint" {
		help(os.Stderr)
		os.Exit(1)
	}
	cmd := commands[os.Args[2]]
	if cmd == nil {
		fmt.Fprintln(os.Stderr, "unknown command:", os.Args[2])
		help(os.Stderr)
		os.Exit(1)
	}

	bp, err := blueprint.LoadFile(*path)
	if err != nil {
		fatalln("error:", err)
	}
	log.Messagef(context.Background(), "loaded blueprint %s with %d validators", *path, len(bp.Validators))
	cmd.f(bp, os.Args[3:])
}

func verify(bp *blueprint.Blueprint, args []string) {
	if len(args) != 0 {
		fatalln("error: verify takes no args")
	}
	errs := blueprint.VerifyAll(context.Background(), bp, *workers)
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, "error:", e)
	}
	if len(errs) > 0 {
		os.Exit(2)
	}
	fmt.Printf("ok: %d validators\n", len(bp.Validators))
}

func hash(bp *blueprint.Blueprint, args []string) {
	if len(args) != 1 {
		fatalln("error: hash takes exactly one validator title")
	}
	v, err := bp.Validator(args[0])
	if err != nil {
		fatalln("error:", err)
	}
	h, err := v.UnappliedHash()
	if err != nil {
		fatalln("error:", err)
	}
	if h != v.Hash {
		fatalln(fmt.Sprintf("error: validator %s declares %s, computed %s", v.Title, v.Hash, h))
	}
	fmt.Println(h)
}

func apply(bp *blueprint.Blueprint, args []string) {
	if len(args) < 1 {
		fatalln("error: apply needs a validator title")
	}
	values := make([]uplc.Data, 0, len(args)-1)
	for _, arg := range args[1:] {
		b, err := readArg(arg)
		if err != nil {
			fatalln("error:", err)
		}
		v, err := uplc.ParseDataNotation(b)
		if err != nil {
			fatalln("error:", err)
		}
		values = append(values, v)
	}

	applied, err := bp.ApplyParams(args[0], values)
	if err != nil {
		fatalln("error:", err)
	}
	out, err := json.MarshalIndent(applied, "", "  ")
	if err != nil {
		fatalln("error:", err)
	}
	fmt.Printf("%s\n", out)
}

// readArg treats "-" as stdin, an existing file path as a file, and
// anything else as literal notation text.
func readArg(arg string) ([]byte, error) {
	if arg == "-" {
		return io.ReadAll(os.Stdin)
	}
	if _, err := os.Stat(arg); err == nil {
		return os.ReadFile(arg)
	}
	return []byte(arg), nil
}

func fatalln(v ...interface{}) {
	io.Copy(os.Stderr, &logbuf)
	fmt.Fprintln(os.Stderr, v...)
	os.Exit(2)
}

func help(w io.Writer) {
	fmt.Fprintln(w, "usage: aiken blueprint [command] [arguments]")
	fmt.Fprint(w, "\nThe commands are:\n\n")
	for name := range commands {
		fmt.Fprintln(w, "\t", name)
	}
	fmt.Fprintln(w)
}
