package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/c64tools/asmlens/config"
	"github.com/c64tools/asmlens/dwarf"
	"github.com/c64tools/asmlens/grammar"
	"github.com/c64tools/asmlens/languageServer"
	"github.com/c64tools/asmlens/parser"
	"github.com/c64tools/asmlens/toolchain"
	"github.com/c64tools/asmlens/util"
)

const defaultTCPAddress = ":2035"

func main() {
	if len(os.Args) >= 2 && os.Args[1] == "languageServer" {
		if len(os.Args) >= 3 && os.Args[2] == "debug" {
			util.LoggingEnabled = true
			util.ServeLogs(config.GetConfig().LogAddress)
		}
		languageServer.ListenAndServe()
		return
	} else if len(os.Args) == 1 {
		// run as language server but in tcp mode so it can be remotely debugged
		util.LoggingEnabled = true
		languageServer.ListenAndServeTCP(defaultTCPAddress)
	} else if len(os.Args) >= 3 && len(os.Args) <= 4 && os.Args[1] == "parse" {
		filePath := os.Args[2]
		b, e := os.ReadFile(filePath)
		if e != nil {
			log.Fatalf("Could not read file %s: %v", filePath, e)
		}
		dialect := config.GetConfig().DialectFor(filePath)
		if len(os.Args) == 4 {
			dialect = dialectArg(os.Args[3])
		}
		printAST(os.Stdout, parser.Parse(context.Background(), string(b), filePath, dialect), 0)
	} else if len(os.Args) >= 2 && len(os.Args) <= 3 && os.Args[1] == "repl" {
		dialect := config.GetConfig().Default()
		if len(os.Args) == 3 {
			dialect = dialectArg(os.Args[2])
		}
		os.Exit(runRepl(dialect))
	} else if len(os.Args) >= 3 && len(os.Args) <= 4 && os.Args[1] == "strOffsets" {
		printStringOffsets(os.Args[2:])
	} else if len(os.Args) >= 3 && os.Args[1] == "tmpw" {
		out, exitCode, e := toolchain.Run(os.Args[2:])
		if e != nil {
			log.Fatalf("Could not run %s: %v", os.Args[2], e)
		}
		if out != "" {
			fmt.Println(out)
		}
		os.Exit(exitCode)
	} else {
		log.Fatalln("Invalid arguments:", os.Args)
	}
}

func dialectArg(name string) grammar.Dialect {
	d, ok := grammar.ParseDialect(name)
	if !ok {
		log.Fatalf("Unknown dialect %s, expected one of %v", name, grammar.Dialects())
	}
	return d
}

func printStringOffsets(args []string) {
	table, e := dwarf.LoadStringOffsets(args[0])
	if errors.Is(e, dwarf.ErrUnsupportedFormat) {
		log.Fatalf("%s: %v", args[0], e)
	} else if e != nil {
		log.Fatalf("Could not read string offsets of %s: %v", args[0], e)
	}

	if len(args) == 2 {
		index, e := strconv.Atoi(args[1])
		if e != nil {
			log.Fatalf("Invalid index %s: %v", args[1], e)
		}
		offset, ok := table.Get(index)
		if !ok {
			log.Fatalf("Index %d out of range, the table holds %d offsets", index, table.Len())
		}
		fmt.Printf("0x%x\n", offset)
		return
	}

	fmt.Printf("version %d, %d-bit, %d offsets\n", table.Header.Version, table.Header.Format*8, table.Len())
	for i := 0; i < table.Len(); i++ {
		offset, _ := table.Get(i)
		fmt.Printf("%6d  0x%08x\n", i, offset)
	}
}
